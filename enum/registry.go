package enum

import (
	"fmt"
	"reflect"
)

// Registry maps go types to enumeration resolvers, it is read-only once created
type Registry struct {
	byType map[reflect.Type]Resolver
}

// Lookup returns a resolver for supplied type
func (r *Registry) Lookup(t reflect.Type) (Resolver, bool) {
	if r == nil || t == nil {
		return nil, false
	}
	resolver, ok := r.byType[t]
	return resolver, ok
}

// Len returns number of registered enumeration types
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byType)
}

// NewRegistry creates a registry, each go type can be registered once
func NewRegistry(resolvers ...Resolver) (*Registry, error) {
	ret := &Registry{byType: make(map[reflect.Type]Resolver, len(resolvers))}
	for i, resolver := range resolvers {
		if resolver == nil {
			return nil, fmt.Errorf("enum resolver at %d was nil", i)
		}
		rType := resolver.ReflectType()
		if prev, ok := ret.byType[rType]; ok {
			return nil, fmt.Errorf("enum %s: type %v already registered as %s", resolver.Name(), rType, prev.Name())
		}
		ret.byType[rType] = resolver
	}
	return ret, nil
}
