// Package tags parses the convert struct tag that pins conversion routines to fields.
package tags

import (
	"fmt"
	"reflect"
	"strings"
)

// TagName is the default convert tag name
const TagName = "convert"

// Convert represents a parsed convert tag
type Convert struct {
	//Factory names the registered factory used for the field
	Factory string
	//Ignore excludes the field from binding
	Ignore bool
}

func (c *Convert) update(key, value string) error {
	switch strings.ToLower(key) {
	case "factory", "by":
		if value == "" {
			return fmt.Errorf("%s: empty factory name", TagName)
		}
		c.Factory = value
	case "-", "ignore":
		c.Ignore = true
	default:
		return fmt.Errorf("%s: unknown key %q", TagName, key)
	}
	return nil
}

// Parse parses the convert tag, names overrides the default tag name
func Parse(tag reflect.StructTag, names ...string) (*Convert, error) {
	name := TagName
	if len(names) > 0 && names[0] != "" {
		name = names[0]
	}
	ret := &Convert{}
	encoded, ok := tag.Lookup(name)
	if !ok || encoded == "" {
		return ret, nil
	}
	if encoded == "-" {
		ret.Ignore = true
		return ret, nil
	}
	if err := Values(encoded).MatchPairs(ret.update); err != nil {
		return nil, err
	}
	return ret, nil
}
