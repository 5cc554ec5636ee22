// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package response

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/juju/schema"
)

// enumC accepts a string matching one of a fixed set of names, ignoring
// case, and coerces it to the canonical spelling.
type enumC struct {
	name   string
	values []string
}

func enum(name string, values ...string) schema.Checker {
	return enumC{name: name, values: values}
}

// Coerce implements schema.Checker.
func (c enumC) Coerce(v interface{}, path []string) (interface{}, error) {
	if v != nil && reflect.TypeOf(v).Kind() == reflect.String {
		s := reflect.ValueOf(v).String()
		for _, value := range c.values {
			if strings.EqualFold(value, s) {
				return value, nil
			}
		}
		return nil, fmt.Errorf("%s%s: unknown value %q", pathPrefix(path), c.name, s)
	}
	return nil, fmt.Errorf("%sexpected %s, got %T(%#v)", pathPrefix(path), c.name, v, v)
}

// blankIntC accepts an integer, or an empty string meaning zero. The
// server sends an empty user id for guest scores.
type blankIntC struct{}

// Coerce implements schema.Checker.
func (c blankIntC) Coerce(v interface{}, path []string) (interface{}, error) {
	if v != nil && reflect.TypeOf(v).Kind() == reflect.String && reflect.ValueOf(v).String() == "" {
		return int64(0), nil
	}
	return schema.Int().Coerce(v, path)
}

func pathPrefix(path []string) string {
	if len(path) > 0 && path[0] == "." {
		path = path[1:]
	}
	if len(path) == 0 {
		return ""
	}
	return strings.Join(path, "") + ": "
}
