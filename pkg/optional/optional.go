// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package optional models a JSON field that may be absent, null, or set.

Partial updates need all three states: an absent key leaves the stored value
alone, an explicit null clears it, and a value replaces it. A value of the
wrong JSON type is recorded as Invalid instead of failing the whole decode,
so the validator can report it against the field.

Usage:

	type Input struct {
	    Name optional.Value[string] `json:"name"`
	}
*/
package optional

import (
	"bytes"

	"github.com/goccy/go-json"
)

var null = []byte("null")

// Value is a tri-state JSON field.
type Value[T any] struct {
	// Set is true when the key appeared in the payload (null included).
	Set bool
	// Null is true when the key appeared with a JSON null.
	Null bool
	// Invalid is true when the key appeared with a value not decodable as T.
	Invalid bool
	// V holds the decoded value when Present reports true.
	V T
}

// Of returns a set, non-null value.
func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, V: v}
}

// Null returns an explicit null.
func Null[T any]() Value[T] {
	return Value[T]{Set: true, Null: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	*o = Value[T]{Set: true}

	if bytes.Equal(bytes.TrimSpace(data), null) {
		o.Null = true
		return nil
	}

	if err := json.Unmarshal(data, &o.V); err != nil {
		var zero T
		o.V = zero
		o.Invalid = true
	}
	return nil
}

// Present reports whether a usable value was supplied.
func (o Value[T]) Present() bool {
	return o.Set && !o.Null && !o.Invalid
}

// Ptr returns a pointer to the value, or nil when it is not present.
func (o Value[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.V
	return &v
}
