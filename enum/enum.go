// Package enum resolves string tokens against named, finite sets of constants.
//
// Go has no enumeration types, so a set is declared once by pairing each
// constant with its symbolic name:
//
//	var languageType = enum.MustDefine("Language",
//		enum.Const("Java", Java),
//		enum.Const("Kotlin", Kotlin),
//	)
//
// Types whose String method yields the constant name (stringer output) can use Of.
package enum

import (
	"fmt"
	"reflect"

	"github.com/viant/xconv"
)

type (
	//Constant pairs a symbolic name with its value
	Constant[T comparable] struct {
		Name  string
		Value T
	}

	//Type represents an enumeration type
	Type[T comparable] struct {
		name   string
		names  []string
		byName map[string]T
	}

	//Resolver resolves tokens without static knowledge of the constant type
	Resolver interface {
		Name() string
		ReflectType() reflect.Type
		//ResolveValue returns the constant, false when token was absent or empty
		ResolveValue(token *string) (interface{}, bool, error)
	}
)

// Const creates a constant
func Const[T comparable](name string, value T) Constant[T] {
	return Constant[T]{Name: name, Value: value}
}

// Define creates an enumeration type, names have to be unique and non-empty
func Define[T comparable](name string, constants ...Constant[T]) (*Type[T], error) {
	if name == "" {
		name = reflect.TypeFor[T]().String()
	}
	ret := &Type[T]{name: name, names: make([]string, 0, len(constants)), byName: make(map[string]T, len(constants))}
	for _, constant := range constants {
		if constant.Name == "" {
			return nil, fmt.Errorf("enum %s: constant %v has empty name", name, constant.Value)
		}
		if _, ok := ret.byName[constant.Name]; ok {
			return nil, fmt.Errorf("enum %s: duplicate constant name %q", name, constant.Name)
		}
		ret.byName[constant.Name] = constant.Value
		ret.names = append(ret.names, constant.Name)
	}
	return ret, nil
}

// MustDefine creates an enumeration type or panics
func MustDefine[T comparable](name string, constants ...Constant[T]) *Type[T] {
	ret, err := Define(name, constants...)
	if err != nil {
		panic(err)
	}
	return ret
}

// Of creates an enumeration type named by value String method
func Of[T interface {
	comparable
	fmt.Stringer
}](name string, values ...T) (*Type[T], error) {
	constants := make([]Constant[T], len(values))
	for i, value := range values {
		constants[i] = Const(value.String(), value)
	}
	return Define(name, constants...)
}

// Name returns enumeration type name
func (t *Type[T]) Name() string {
	return t.name
}

// Names returns constant names in declaration order
func (t *Type[T]) Names() []string {
	return append([]string(nil), t.names...)
}

// ReflectType returns constant go type
func (t *Type[T]) ReflectType() reflect.Type {
	return reflect.TypeFor[T]()
}

// Resolve returns matching constant, nil for absent or empty token
func (t *Type[T]) Resolve(token *string) (*T, error) {
	if token == nil || *token == "" {
		return nil, nil
	}
	value, ok := t.byName[*token]
	if !ok {
		return nil, &xconv.InvalidEnumValueError{Type: t.name, Token: *token}
	}
	return &value, nil
}

// ResolveString resolves non-optional token
func (t *Type[T]) ResolveString(token string) (*T, error) {
	return t.Resolve(&token)
}

// ResolveValue implements Resolver
func (t *Type[T]) ResolveValue(token *string) (interface{}, bool, error) {
	value, err := t.Resolve(token)
	if err != nil || value == nil {
		return nil, false, err
	}
	return *value, true, nil
}
