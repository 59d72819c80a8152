// Package body provides the factory registry that turns declarative inputs
// into runnable task bodies.
//
// The registry is normally populated through the public APIs under the root
// slotor package, therefore most applications do not need to import this
// package directly.
package body

import (
	"context"
	"reflect"
	"sort"
	"sync"

	"github.com/viant/structology/conv"
	"github.com/viant/x"

	"github.com/viant/slotor/model/types"
)

// Registry holds named body factories together with their input types.
type Registry struct {
	mux       sync.RWMutex
	factories map[string]types.Factory
	types     *x.Registry
	converter *conv.Converter
}

// Types returns the input type registry.
func (r *Registry) Types() *x.Registry {
	return r.types
}

// Register adds a factory; its declared input type is registered alongside so
// tooling can resolve it by name.
func (r *Registry) Register(factory types.Factory) {
	r.mux.Lock()
	defer r.mux.Unlock()
	r.factories[factory.Name()] = factory
	if input := factory.Signature().Input; input != nil {
		if input.Kind() == reflect.Ptr {
			input = input.Elem()
		}
		r.types.Register(x.NewType(input))
	}
}

// RegisterType adds a user-defined data type to the registry.
func (r *Registry) RegisterType(dataType *x.Type) {
	if dataType == nil {
		return
	}
	r.types.Register(dataType)
}

// Lookup returns a factory by name, or nil when absent.
func (r *Registry) Lookup(name string) types.Factory {
	r.mux.RLock()
	defer r.mux.RUnlock()
	return r.factories[name]
}

// Factories returns the registered factory names, sorted.
func (r *Registry) Factories() []string {
	r.mux.RLock()
	defer r.mux.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Make builds a body with the named factory. The input is converted into the
// factory's declared input type first, so callers may pass the typed struct
// itself or a loosely typed value such as map[string]interface{} decoded from
// configuration.
func (r *Registry) Make(ctx context.Context, name string, input interface{}) (types.Body, error) {
	factory := r.Lookup(name)
	if factory == nil {
		return nil, types.NewFactoryNotFoundError(name)
	}
	signature := factory.Signature()
	if signature.Input == nil || input == nil {
		return factory.New(ctx, input)
	}
	if reflect.TypeOf(input) == signature.Input {
		return factory.New(ctx, input)
	}
	instance := newInstancePtr(signature.Input)
	if err := r.converter.Convert(input, instance); err != nil {
		return nil, err
	}
	return factory.New(ctx, instance)
}

// New creates a registry preloaded with the given factories.
func New(factories ...types.Factory) *Registry {
	options := conv.DefaultOptions()
	options.ClonePointerData = true
	options.IgnoreUnmapped = true
	options.AccessUnexported = true

	ret := &Registry{
		factories: make(map[string]types.Factory),
		types:     x.NewRegistry(),
		converter: conv.NewConverter(options),
	}
	for _, factory := range factories {
		if factory != nil {
			ret.Register(factory)
		}
	}
	return ret
}

// newInstancePtr creates a new instance pointer of the given type
func newInstancePtr(t reflect.Type) interface{} {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return reflect.New(t).Interface()
}
