package util

import "reflect"

// Extract returns m[key] when the key exists and its value is not empty,
// otherwise def. See IsEmpty for what counts as empty.
func Extract(m map[string]any, key string, def any) any {
	if !HasNonEmpty(m, key) {
		return def
	}
	return m[key]
}

// HasNonEmpty reports whether key exists in m with a non-empty value.
func HasNonEmpty(m map[string]any, key string) bool {
	v, ok := m[key]
	return ok && !IsEmpty(v)
}

// IsEmpty reports whether v is nil, false, a numeric zero, an empty string,
// or an empty slice, map or array. Pointers are empty only when nil.
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case bool:
		return !t
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return reflect.ValueOf(v).IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Lookup returns m[key] typed as T. ok is false when the key is absent or
// holds a value of another type; zero values are returned as present.
func Lookup[T any](m map[string]any, key string) (T, bool) {
	var zero T
	v, ok := m[key]
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
