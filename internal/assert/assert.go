// Package assert panics on constructor misuse, it is never used for input
// that comes from the network or the operator.
package assert

import (
	"fmt"
	"reflect"
)

// NotNil panics when `value` is nil, including a nil pointer, map, slice,
// func or chan stored in an interface.
func NotNil(name string, value any) {
	if value == nil {
		panic(fmt.Sprintf("%s must not be nil", name))
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if v.IsNil() {
			panic(fmt.Sprintf("%s must not be a nil %s", name, v.Type()))
		}
	}
}

func NotEmpty(name, str string) {
	if str == "" {
		panic(fmt.Sprintf("%s must not be empty", name))
	}
}
