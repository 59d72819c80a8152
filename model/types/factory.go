package types

import (
	"context"
	"reflect"
)

// Signature	factory signature
type Signature struct {
	Name  string
	Input reflect.Type
}

// Factory builds bodies from a typed input struct. Input passed to New is
// either nil or a pointer to the type announced by Signature.Input.
type Factory interface {
	Name() string
	Signature() Signature
	New(ctx context.Context, input interface{}) (Body, error)
}
