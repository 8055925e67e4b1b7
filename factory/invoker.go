package factory

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/viant/xconv"
)

// Invoker constructs composite values with their designated factory
type Invoker struct {
	lookup Lookup
	logger *slog.Logger
}

// Construct resolves the single designated factory of target and invokes it with payload
func (i *Invoker) Construct(target reflect.Type, payload string) (interface{}, error) {
	descriptor, err := i.Resolve(target)
	if err != nil {
		return nil, err
	}
	return i.invoke(descriptor, payload)
}

// ConstructNamed invokes the named factory of target, used when a type has several factories
func (i *Invoker) ConstructNamed(target reflect.Type, name string, payload string) (interface{}, error) {
	if name == "" {
		return i.Construct(target, payload)
	}
	descriptor, err := findNamed(target, i.lookup.Lookup(target), name)
	if err != nil {
		return nil, err
	}
	return i.invoke(descriptor, payload)
}

// Resolve returns the single designated factory of target
func (i *Invoker) Resolve(target reflect.Type) (*Descriptor, error) {
	descriptors := i.lookup.Lookup(target)
	switch len(descriptors) {
	case 0:
		return nil, &xconv.NoConverterFoundError{Type: target}
	case 1:
		return descriptors[0], nil
	default:
		return nil, ambiguous(target, descriptors)
	}
}

func (i *Invoker) invoke(descriptor *Descriptor, payload string) (interface{}, error) {
	result, err := descriptor.Invoke(payload)
	if err != nil {
		i.logger.Debug("factory.construct", "type", descriptor.Type.String(), "name", descriptor.Name, "error", err)
		return nil, err
	}
	return result, nil
}

// Construct constructs T with its designated factory
func Construct[T any](i *Invoker, payload string) (T, error) {
	var zero T
	result, err := i.Construct(reflect.TypeFor[T](), payload)
	if err != nil {
		return zero, err
	}
	ret, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("factory result %T is not %v", result, reflect.TypeFor[T]())
	}
	return ret, nil
}

// NewInvoker creates an invoker
func NewInvoker(lookup Lookup, opts ...Option) *Invoker {
	options := newOptions(opts)
	return &Invoker{lookup: lookup, logger: options.logger}
}
