package forms

import (
	"reflect"
	"unicode/utf8"
)

// Required reports whether v is present. Untyped nil and typed nil pointers,
// maps, slices, channels, funcs and interfaces fail; every other value,
// including "" and empty collections that are not nil, passes.
func Required(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return !rv.IsNil()
	default:
		return true
	}
}

// MinLength returns a predicate that holds for strings of at least n runes.
func MinLength(n int) func(string) bool {
	return func(s string) bool {
		return utf8.RuneCountInString(s) >= n
	}
}

// MaxLength returns a predicate that holds for strings of at most n runes.
func MaxLength(n int) func(string) bool {
	return func(s string) bool {
		return utf8.RuneCountInString(s) <= n
	}
}
