package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty; otherwise returns p.
// Used by constructors to fail fast on required strings (base URLs, template dirs).
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil (nil interface, pointer, slice, map, chan or func);
// otherwise returns v unchanged.
//
// Called from every New* constructor in service, adapters and handlers when validating required dependencies.
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Ptr returns a pointer whose value is v.
func Ptr[T any](v T) *T {
	return &v
}
