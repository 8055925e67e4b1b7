package conv

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
	"time"

	"github.com/viant/xconv"
	"github.com/viant/xconv/enum"
	"github.com/viant/xconv/factory"
)

type (
	route string

	//hint carries field level directives
	hint struct {
		factory    string
		timeLayout string
	}
)

const (
	routeEnum      route = "enum"
	routeFactory   route = "factory"
	routePrimitive route = "primitive"
)

var timeType = reflect.TypeOf(time.Time{})

// Converter converts raw tokens to typed values, safe for concurrent use
type Converter struct {
	options    Options
	enums      *enum.Registry
	factories  *factory.Registry
	invoker    *factory.Invoker
	fieldCache sync.Map // map[fieldKey]*fieldInfo
}

// Convert converts token into dest, dest has to be a non nil pointer.
// An absent token leaves dest untouched, as does an empty token for enum destinations.
func (c *Converter) Convert(token *string, dest interface{}) error {
	if dest == nil {
		return errors.New("destination cannot be nil")
	}
	destValue := reflect.ValueOf(dest)
	if destValue.Kind() != reflect.Ptr {
		return errors.New("destination must be a pointer")
	}
	if destValue.IsNil() {
		return errors.New("destination pointer cannot be nil")
	}
	value, ok, err := c.convert(token, destValue.Type().Elem(), hint{})
	if err != nil || !ok {
		return err
	}
	destValue.Elem().Set(reflect.ValueOf(value))
	return nil
}

// ConvertTo converts token to a value of target type, it returns nil when no conversion was attempted
func (c *Converter) ConvertTo(token *string, target reflect.Type) (interface{}, error) {
	value, _, err := c.convert(token, target, hint{})
	return value, err
}

func (c *Converter) convert(token *string, target reflect.Type, aHint hint) (interface{}, bool, error) {
	if target == nil {
		return nil, false, errors.New("target type cannot be nil")
	}
	if resolver, isPtr, ok := c.enumResolver(target); ok {
		if aHint.factory != "" {
			return nil, false, fmt.Errorf("factory %q cannot be used with enum %s", aHint.factory, resolver.Name())
		}
		c.options.Logger.Debug("conv.route", "type", target.String(), "route", routeEnum)
		value, found, err := resolver.ResolveValue(token)
		if err != nil || !found {
			return nil, false, err
		}
		if isPtr {
			ptr := reflect.New(target.Elem())
			ptr.Elem().Set(reflect.ValueOf(value))
			return ptr.Interface(), true, nil
		}
		return value, true, nil
	}
	if token == nil {
		return nil, false, nil
	}
	factoryName := aHint.factory
	if composite, isPtr, ok := c.factoryTarget(target); ok || factoryName != "" {
		if !ok {
			composite = target
		}
		c.options.Logger.Debug("conv.route", "type", target.String(), "route", routeFactory, "factory", factoryName)
		value, err := c.invoker.ConstructNamed(composite, factoryName, *token)
		if err != nil {
			return nil, false, err
		}
		if isPtr {
			ptr := reflect.New(composite)
			ptr.Elem().Set(reflect.ValueOf(value))
			return ptr.Interface(), true, nil
		}
		return value, true, nil
	}
	c.options.Logger.Debug("conv.route", "type", target.String(), "route", routePrimitive)
	value, err := c.convertPrimitive(*token, target, aHint.timeLayout)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (c *Converter) enumResolver(target reflect.Type) (enum.Resolver, bool, bool) {
	if resolver, ok := c.enums.Lookup(target); ok {
		return resolver, false, true
	}
	if target.Kind() == reflect.Ptr {
		if resolver, ok := c.enums.Lookup(target.Elem()); ok {
			return resolver, true, true
		}
	}
	return nil, false, false
}

func (c *Converter) factoryTarget(target reflect.Type) (reflect.Type, bool, bool) {
	if c.factories.Has(target) {
		return target, false, true
	}
	if target.Kind() == reflect.Ptr && c.factories.Has(target.Elem()) {
		return target.Elem(), true, true
	}
	return nil, false, false
}

func (c *Converter) convertPrimitive(token string, target reflect.Type, timeLayout string) (interface{}, error) {
	if target.Kind() == reflect.Ptr {
		value, err := c.convertPrimitive(token, target.Elem(), timeLayout)
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(reflect.ValueOf(value))
		return ptr.Interface(), nil
	}
	result := reflect.New(target).Elem()
	var err error
	switch target.Kind() {
	case reflect.String:
		result.SetString(token)
	case reflect.Bool:
		var value bool
		if value, err = strconv.ParseBool(token); err == nil {
			result.SetBool(value)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var value int64
		if value, err = strconv.ParseInt(token, 10, target.Bits()); err == nil {
			result.SetInt(value)
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		var value uint64
		if value, err = strconv.ParseUint(token, 10, target.Bits()); err == nil {
			result.SetUint(value)
		}
	case reflect.Float32, reflect.Float64:
		var value float64
		if value, err = strconv.ParseFloat(token, target.Bits()); err == nil {
			result.SetFloat(value)
		}
	case reflect.Struct:
		if target != timeType {
			return nil, &xconv.NoConverterFoundError{Type: target}
		}
		var value time.Time
		if value, err = c.parseTime(token, timeLayout); err == nil {
			result.Set(reflect.ValueOf(value))
		}
	case reflect.Slice:
		if target.Elem().Kind() != reflect.Uint8 {
			return nil, &xconv.NoConverterFoundError{Type: target}
		}
		result.SetBytes([]byte(token))
	default:
		return nil, &xconv.NoConverterFoundError{Type: target}
	}
	if err != nil {
		return nil, malformed(target, token, err)
	}
	return result.Interface(), nil
}

func (c *Converter) parseTime(token string, layout string) (time.Time, error) {
	if layout == "" {
		layout = c.options.DateLayout
	}
	t, err := time.Parse(layout, token)
	if err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, lErr := time.Parse(layout, token); lErr == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time string '%s': %w", token, err)
}

func malformed(target reflect.Type, token string, err error) error {
	reason := xconv.ReasonSyntax
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		if errors.Is(numErr.Err, strconv.ErrRange) {
			reason = xconv.ReasonRange
		}
		err = numErr.Err
	}
	return &xconv.MalformedPayloadError{Type: target, Index: 0, Substring: token, Reason: reason, Err: err}
}

// NewConverter creates a converter, nil registries are treated as empty
func NewConverter(enums *enum.Registry, factories *factory.Registry, opts ...Option) *Converter {
	options := newOptions(opts)
	if factories == nil {
		factories = factory.NewBuilder().Build()
	}
	return &Converter{
		options:   options,
		enums:     enums,
		factories: factories,
		invoker:   factory.NewInvoker(factories, factory.WithLogger(options.Logger)),
	}
}
