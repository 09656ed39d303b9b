// Package maputils provides typed access to values of unmarshalled JSON
// objects.
package maputils

import "fmt"

// StrVal returns the value of the key as string.
// If the key does not exist an empty string is returned.
// If they key exist but has a different type an error is returned.
func StrVal(m map[string]any, key string) (string, error) {
	val, ok := m[key]
	if !ok {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("value of key %q has type %T, expected string", key, val)
	}

	return str, nil
}

// MapVal returns the value of the key as map[string]any.
// If the key does not exist or its value is null, nil is returned.
// If they key exist but has a different type an error is returned.
func MapVal(m map[string]any, key string) (map[string]any, error) {
	val, ok := m[key]
	if !ok || val == nil {
		return nil, nil
	}

	iMap, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value of key %q has type %T, expected map[string]any", key, val)
	}

	return iMap, nil
}

// SliceVal returns the value of the key as []any.
// If the key does not exist or its value is null, nil is returned. An empty
// JSON array is returned as non-nil empty slice.
// If they key exist but has a different type an error is returned.
func SliceVal(m map[string]any, key string) ([]any, error) {
	val, ok := m[key]
	if !ok || val == nil {
		return nil, nil
	}

	slice, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("value of key %q has type %T, expected []any", key, val)
	}

	return slice, nil
}

// NonEmptyStrVal returns the value of the key as string.
// An error is returned when the key does not exist, has a different type or
// is an empty string.
func NonEmptyStrVal(m map[string]any, key string) (string, error) {
	str, err := StrVal(m, key)
	if err != nil {
		return "", err
	}

	if str == "" {
		return "", fmt.Errorf("value of key %q is missing or empty", key)
	}

	return str, nil
}
