package factory

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/viant/xconv"
)

type (
	//Lookup returns designated factories of a composite type
	Lookup interface {
		Lookup(t reflect.Type) []*Descriptor
	}

	//Builder collects factory registrations
	Builder struct {
		options *Options
		byType  map[reflect.Type][]*Descriptor
	}

	//Registry represents an immutable factory registry, safe for concurrent use
	Registry struct {
		logger *slog.Logger
		byType map[reflect.Type][]*Descriptor
	}
)

// NewBuilder creates a registry builder
func NewBuilder(opts ...Option) *Builder {
	return &Builder{options: newOptions(opts), byType: map[reflect.Type][]*Descriptor{}}
}

// Register registers fn as a designated factory of T. fn does not need to be exported:
// registering is what makes it reachable. An empty name defaults to the function name.
func Register[T any](b *Builder, name string, fn func(payload string) (T, error)) *Builder {
	if name == "" {
		name = funcName(fn)
	}
	return b.RegisterFunc(reflect.TypeFor[T](), name, func(payload string) (interface{}, error) {
		value, err := fn(payload)
		if err != nil {
			return nil, err
		}
		return value, nil
	})
}

// RegisterFunc registers a type-erased factory for supplied type
func (b *Builder) RegisterFunc(t reflect.Type, name string, fn Func) *Builder {
	if name == "" {
		name = funcName(fn)
	}
	b.byType[t] = append(b.byType[t], &Descriptor{Type: t, Name: name, fn: fn})
	b.options.logger.Debug("factory.registered", "type", t.String(), "name", name, "candidates", len(b.byType[t]))
	return b
}

// Build returns a registry snapshot, later builder changes do not affect it
func (b *Builder) Build() *Registry {
	byType := make(map[reflect.Type][]*Descriptor, len(b.byType))
	for t, descriptors := range b.byType {
		byType[t] = append([]*Descriptor(nil), descriptors...)
	}
	return &Registry{logger: b.options.logger, byType: byType}
}

// Lookup returns all designated factories for supplied type
func (r *Registry) Lookup(t reflect.Type) []*Descriptor {
	if r == nil {
		return nil
	}
	return r.byType[t]
}

// LookupNamed returns the factory with supplied name
func (r *Registry) LookupNamed(t reflect.Type, name string) (*Descriptor, error) {
	return findNamed(t, r.Lookup(t), name)
}

func findNamed(t reflect.Type, descriptors []*Descriptor, name string) (*Descriptor, error) {
	for _, candidate := range descriptors {
		if candidate.Name == name {
			return candidate, nil
		}
	}
	return nil, &xconv.NoConverterFoundError{Type: t, Name: name}
}

// Has returns true if supplied type has at least one factory
func (r *Registry) Has(t reflect.Type) bool {
	return len(r.Lookup(t)) > 0
}

// Types returns registered types sorted by name
func (r *Registry) Types() []reflect.Type {
	if r == nil {
		return nil
	}
	result := make([]reflect.Type, 0, len(r.byType))
	for t := range r.byType {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].String() < result[j].String()
	})
	return result
}

// Validate reports every type with more than one designated factory
func (r *Registry) Validate() error {
	var errs []error
	for _, t := range r.Types() {
		descriptors := r.byType[t]
		if len(descriptors) < 2 {
			continue
		}
		err := ambiguous(t, descriptors)
		r.logger.Warn("factory.ambiguous", "type", t.String(), "candidates", len(descriptors))
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func ambiguous(t reflect.Type, descriptors []*Descriptor) error {
	names := make([]string, len(descriptors))
	for i, descriptor := range descriptors {
		names[i] = descriptor.Name
	}
	return &xconv.AmbiguousConverterError{Type: t, Candidates: names}
}

func funcName(fn interface{}) string {
	value := reflect.ValueOf(fn)
	if value.Kind() != reflect.Func || value.IsNil() {
		return fmt.Sprintf("%T", fn)
	}
	name := runtime.FuncForPC(value.Pointer()).Name()
	if index := strings.LastIndex(name, "/"); index != -1 {
		name = name[index+1:]
	}
	return name
}
