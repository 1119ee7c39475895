package dto

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Optional wraps a JSON field whose presence matters. Set reports whether the
// key appeared in the document at all; Null reports an explicit JSON null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Present reports whether the field was supplied with a usable value.
func (o Optional[T]) Present() bool {
	return o.Set && !o.Null
}

// Ptr returns a pointer to the value, or nil when the field is not present.
func (o Optional[T]) Ptr() *T {
	if !o.Present() {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON is only invoked by encoding/json when the key exists.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Null = true
		var zero T
		o.Value = zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON writes null for anything that is not present. Pair it with the
// omitzero tag option to drop unset keys entirely.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Present() {
		return jsonNull, nil
	}
	return json.Marshal(o.Value)
}
