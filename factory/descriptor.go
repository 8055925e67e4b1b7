package factory

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/viant/xconv"
)

type (
	//Func constructs an instance from a raw payload
	Func func(payload string) (interface{}, error)

	//Descriptor represents a designated factory of a composite type
	Descriptor struct {
		Type reflect.Type
		Name string
		fn   Func
	}
)

// Invoke calls the factory; the result is either a valid instance of Type or an error
func (d *Descriptor) Invoke(payload string) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = d.malformed(fmt.Errorf("factory %s panicked: %v", d.Name, r))
		}
	}()
	value, err := d.fn(payload)
	if err != nil {
		return nil, d.malformed(err)
	}
	if value == nil || !reflect.TypeOf(value).AssignableTo(d.Type) {
		return nil, d.malformed(fmt.Errorf("factory %s returned %T, expected %v", d.Name, value, d.Type))
	}
	if rValue := reflect.ValueOf(value); rValue.Kind() == reflect.Ptr && rValue.IsNil() {
		return nil, d.malformed(fmt.Errorf("factory %s returned nil %v", d.Name, d.Type))
	}
	return value, nil
}

func (d *Descriptor) malformed(err error) error {
	var malformed *xconv.MalformedPayloadError
	if errors.As(err, &malformed) {
		if malformed.Type != nil || err != error(malformed) {
			return err
		}
		// factories may return shared error values, never mutate them
		labeled := *malformed
		labeled.Type = d.Type
		return &labeled
	}
	return &xconv.MalformedPayloadError{Type: d.Type, Index: -1, Reason: xconv.ReasonFactory, Err: err}
}
