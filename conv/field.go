package conv

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/xconv/tags"
	"github.com/viant/xunsafe"
)

type (
	fieldKey struct {
		owner reflect.Type
		name  string
	}

	fieldInfo struct {
		xField   *xunsafe.Field
		name     string
		hint     hint
		ignore   bool
		presence *presence
	}
)

// BindField converts token and sets it on the named field of holder, a non nil struct pointer.
// Unexported fields are supported; fields tagged with convert:"-" or format:"-" are skipped,
// format:"timeLayout=..." or format:"dateFormat=..." override the time layout.
// When the owner has a setMarker holder, the matching flag is set once a value was assigned.
func (c *Converter) BindField(holder interface{}, fieldName string, token *string) error {
	holderValue := reflect.ValueOf(holder)
	if holderValue.Kind() != reflect.Ptr || holderValue.IsNil() || holderValue.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("holder must be a non nil struct pointer, got %T", holder)
	}
	info, err := c.fieldInfo(holderValue.Type().Elem(), fieldName)
	if err != nil {
		return err
	}
	if info.ignore {
		return nil
	}
	value, ok, err := c.convert(token, info.xField.Type, info.hint)
	if err != nil {
		return fmt.Errorf("field %s: %w", info.name, err)
	}
	if !ok {
		return nil
	}
	ptr := xunsafe.AsPointer(holder)
	reflect.NewAt(info.xField.Type, info.xField.Pointer(ptr)).Elem().Set(reflect.ValueOf(value))
	if info.presence != nil {
		info.presence.mark(ptr)
	}
	return nil
}

// FieldName returns field display name: format tag name, or go name in configured case format
func (c *Converter) FieldName(field reflect.StructField) string {
	if tag, err := format.Parse(field.Tag); err == nil && tag != nil && tag.Name != "" {
		return tag.Name
	}
	return c.formatName(field.Name)
}

func (c *Converter) formatName(name string) string {
	if !c.options.CaseFormat.IsDefined() {
		return name
	}
	from := text.DetectCaseFormat(name)
	if !from.IsDefined() {
		return name
	}
	return from.Format(name, c.options.CaseFormat)
}

func (c *Converter) fieldInfo(owner reflect.Type, fieldName string) (*fieldInfo, error) {
	key := fieldKey{owner: owner, name: fieldName}
	if v, ok := c.fieldCache.Load(key); ok {
		return v.(*fieldInfo), nil
	}
	field, ok := owner.FieldByName(fieldName)
	if !ok || len(field.Index) != 1 {
		return nil, fmt.Errorf("failed to lookup field %v at %s", fieldName, owner.String())
	}
	convert, err := tags.Parse(field.Tag, c.options.TagName)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("invalid tag on %s.%s", owner.String(), fieldName), err)
	}
	info := &fieldInfo{
		xField:   xunsafe.NewField(field),
		name:     c.FieldName(field),
		hint:     hint{factory: convert.Factory},
		ignore:   convert.Ignore,
		presence: newPresence(owner, fieldName),
	}
	if tag, err := format.Parse(field.Tag); err == nil && tag != nil {
		info.ignore = info.ignore || tag.Ignore
		info.hint.timeLayout = tag.TimeLayout
		if info.hint.timeLayout == "" && tag.DateFormat != "" {
			info.hint.timeLayout = ftime.DateFormatToTimeLayout(tag.DateFormat)
		}
	}
	actual, _ := c.fieldCache.LoadOrStore(key, info)
	return actual.(*fieldInfo), nil
}
