package printer

import (
	"context"
	"fmt"
	"io"
	"os"
	"reflect"
	"time"

	"github.com/viant/slotor/model/types"
)

const name = "printer"

// DefaultInterval separates consecutive prints when Input.Every is unset.
const DefaultInterval = 5 * time.Second

// Service builds bodies that print a message at a fixed interval.
type Service struct{}

// Input configures a printer body.
type Input struct {
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
	Every   time.Duration `json:"every,omitempty" yaml:"every,omitempty"`
	Count   int           `json:"count,omitempty" yaml:"count,omitempty"` // 0 prints forever
	Writer  io.Writer     `json:"-" yaml:"-"`                             // defaults to stdout
}

// New creates a new printer factory
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

// New builds a body that prints input.Message every input.Every until its
// context is cancelled or input.Count prints were made.
func (s *Service) New(ctx context.Context, in interface{}) (types.Body, error) {
	input, ok := in.(*Input)
	if !ok {
		return nil, types.NewInvalidInputError(in)
	}
	message := input.Message
	every := input.Every
	if every <= 0 {
		every = DefaultInterval
	}
	count := input.Count
	writer := input.Writer
	if writer == nil {
		writer = os.Stdout
	}

	return func(ctx context.Context) error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()

		printed := 0
		for {
			fmt.Fprintln(writer, message)
			printed++
			if count > 0 && printed >= count {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}, nil
}
