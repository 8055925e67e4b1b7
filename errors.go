package xconv

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	//ErrInvalidEnumValue reports a token that matches no enumeration constant
	ErrInvalidEnumValue = errors.New("invalid enum value")
	//ErrNoConverterFound reports a composite type without a designated factory
	ErrNoConverterFound = errors.New("no converter found")
	//ErrAmbiguousConverter reports a composite type with more than one designated factory
	ErrAmbiguousConverter = errors.New("ambiguous converter")
	//ErrMalformedPayload reports a payload sub-value that failed to parse
	ErrMalformedPayload = errors.New("malformed payload")
)

// Reason classifies a malformed payload
type Reason string

const (
	//ReasonSyntax sub-value is not a valid literal
	ReasonSyntax Reason = "syntax"
	//ReasonRange sub-value is a valid literal outside the target range
	ReasonRange Reason = "range"
	//ReasonFactory factory failed for a reason other than sub-value parsing
	ReasonFactory Reason = "factory"
)

type (
	//InvalidEnumValueError represents an unmatched enum token
	InvalidEnumValueError struct {
		Type  string
		Token string
	}

	//NoConverterFoundError represents a lookup miss
	NoConverterFoundError struct {
		Type reflect.Type
		Name string
	}

	//AmbiguousConverterError represents a lookup returning more than one factory
	AmbiguousConverterError struct {
		Type       reflect.Type
		Candidates []string
	}

	//MalformedPayloadError represents a payload parsing failure
	MalformedPayloadError struct {
		Type      reflect.Type
		Index     int //-1 when the failure is not tied to a sub-value
		Substring string
		Reason    Reason
		Err       error
	}
)

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("%v: %q is not a constant of %s", ErrInvalidEnumValue, e.Token, e.Type)
}

func (e *InvalidEnumValueError) Is(target error) bool {
	return target == ErrInvalidEnumValue
}

func (e *NoConverterFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%v: %s has no factory named %q", ErrNoConverterFound, typeName(e.Type), e.Name)
	}
	return fmt.Sprintf("%v: %s has no designated factory", ErrNoConverterFound, typeName(e.Type))
}

func (e *NoConverterFoundError) Is(target error) bool {
	return target == ErrNoConverterFound
}

func (e *AmbiguousConverterError) Error() string {
	return fmt.Sprintf("%v: %s has %d designated factories [%s]", ErrAmbiguousConverter, typeName(e.Type), len(e.Candidates), strings.Join(e.Candidates, ", "))
}

func (e *AmbiguousConverterError) Is(target error) bool {
	return target == ErrAmbiguousConverter
}

func (e *MalformedPayloadError) Error() string {
	builder := strings.Builder{}
	builder.WriteString(ErrMalformedPayload.Error())
	if e.Type != nil {
		builder.WriteString(" for ")
		builder.WriteString(typeName(e.Type))
	}
	if e.Index >= 0 {
		builder.WriteString(fmt.Sprintf(": %q at index %d", e.Substring, e.Index))
	}
	if e.Reason != "" {
		builder.WriteString(" (")
		builder.WriteString(string(e.Reason))
		builder.WriteString(")")
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

func (e *MalformedPayloadError) Unwrap() error {
	return e.Err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
