package nop

import (
	"context"
	"reflect"

	"github.com/viant/slotor/model/types"
)

const name = "nop"

// Service builds bodies that terminate immediately. Starting one on a slot is
// the conventional way to retire the slot's current occupant.
type Service struct{}

type Input struct{}

// New creates a new nop factory
func New() *Service {
	return &Service{}
}

// Name returns the factory name
func (s *Service) Name() string {
	return name
}

// Signature returns the factory signature
func (s *Service) Signature() types.Signature {
	return types.Signature{
		Name:  name,
		Input: reflect.TypeOf(&Input{}),
	}
}

// New returns the no-op body regardless of input.
func (s *Service) New(ctx context.Context, in interface{}) (types.Body, error) {
	return types.Noop, nil
}
