// Package optional distinguishes "field omitted" from "field explicitly set
// to null" in update payloads: an absent field keeps the stored value, an
// explicit null clears it.
package optional

import "encoding/json"

// Value carries a field that may be absent, null, or set.
type Value[T any] struct {
	// Present reports whether the field appeared in the payload at all.
	Present bool
	// Valid reports whether the field carried a non-null value.
	Valid bool
	Val   T
}

// Of returns a present, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{Present: true, Valid: true, Val: v}
}

// Null returns a present but explicitly-null value.
func Null[T any]() Value[T] {
	return Value[T]{Present: true}
}

// Ptr returns the value as a pointer, nil when null or absent.
func (v Value[T]) Ptr() *T {
	if !v.Present || !v.Valid {
		return nil
	}
	val := v.Val
	return &val
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Present = true
	if string(data) == "null" {
		v.Valid = false
		var zero T
		v.Val = zero
		return nil
	}
	if err := json.Unmarshal(data, &v.Val); err != nil {
		return err
	}
	v.Valid = true
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if !v.Present || !v.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.Val)
}
