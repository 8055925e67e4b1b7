// Package payload implements the comma delimited sub-value convention used by factories.
package payload

import (
	"errors"
	"strconv"
	"strings"

	"github.com/viant/xconv"
)

// Delimiter separates payload sub-values; no escaping, quoting or trimming applies
const Delimiter = ","

// Split splits payload into sub-values, an empty payload has none
func Split(payload string) []string {
	if payload == "" {
		return []string{}
	}
	return strings.Split(payload, Delimiter)
}

// Parse parses every sub-value with supplied parse function
func Parse[T any](payload string, parse func(string) (T, error)) ([]T, error) {
	parts := Split(payload)
	result := make([]T, len(parts))
	for i, part := range parts {
		value, err := parse(part)
		if err != nil {
			return nil, malformed(i, part, err)
		}
		result[i] = value
	}
	return result, nil
}

// Ints parses base-10 signed integers
func Ints(payload string) ([]int, error) {
	return Parse(payload, func(s string) (int, error) {
		value, err := strconv.ParseInt(s, 10, strconv.IntSize)
		return int(value), err
	})
}

// Int64s parses base-10 signed 64-bit integers
func Int64s(payload string) ([]int64, error) {
	return Parse(payload, func(s string) (int64, error) {
		return strconv.ParseInt(s, 10, 64)
	})
}

// Int32s parses base-10 signed 32-bit integers
func Int32s(payload string) ([]int32, error) {
	return Parse(payload, func(s string) (int32, error) {
		value, err := strconv.ParseInt(s, 10, 32)
		return int32(value), err
	})
}

func malformed(index int, part string, err error) error {
	reason := xconv.ReasonSyntax
	if errors.Is(err, strconv.ErrRange) {
		reason = xconv.ReasonRange
	}
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &xconv.MalformedPayloadError{Index: index, Substring: part, Reason: reason, Err: err}
}
