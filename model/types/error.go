package types

import "fmt"

func NewFactoryNotFoundError(name string) error {
	return fmt.Errorf("body factory %v not found", name)
}

func NewInvalidInputError(in interface{}) error {
	return fmt.Errorf("invalid input %T", in)
}
