package conv

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

const (
	//SetMarkerTag flags a struct (or struct pointer) field holding per-field presence booleans
	SetMarkerTag = "setMarker"

	presenceMarkerTag = "presenceMarker"
)

// presence marks a bound field as set in the owner's marker holder
type presence struct {
	holder *xunsafe.Field
	flag   *xunsafe.Field
}

// IsSetMarker returns true if tag flags a presence marker holder
func IsSetMarker(tag reflect.StructTag) bool {
	if _, ok := tag.Lookup(SetMarkerTag); ok {
		return true
	}
	_, ok := tag.Lookup(presenceMarkerTag)
	return ok
}

func newPresence(owner reflect.Type, fieldName string) *presence {
	for i := 0; i < owner.NumField(); i++ {
		field := owner.Field(i)
		if !IsSetMarker(field.Tag) {
			continue
		}
		holderType := field.Type
		if holderType.Kind() == reflect.Ptr {
			holderType = holderType.Elem()
		}
		if holderType.Kind() != reflect.Struct {
			return nil
		}
		flag, ok := holderType.FieldByName(fieldName)
		if !ok || len(flag.Index) != 1 || flag.Type.Kind() != reflect.Bool {
			return nil
		}
		return &presence{holder: xunsafe.NewField(field), flag: xunsafe.NewField(flag)}
	}
	return nil
}

func (p *presence) mark(ptr unsafe.Pointer) {
	if p.holder.Type.Kind() != reflect.Ptr {
		p.flag.SetBool(p.holder.Pointer(ptr), true)
		return
	}
	if p.holder.IsNil(ptr) {
		holderValue := reflect.NewAt(p.holder.Type, p.holder.Pointer(ptr)).Elem()
		holderValue.Set(reflect.New(p.holder.Type.Elem()))
	}
	p.flag.SetBool(p.holder.ValuePointer(ptr), true)
}
