// Package derive computes derived field values as pure projections over a
// source field.
package derive

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formengine/pkg/model"
)

var (
	// ErrNotDerived is returned when a field carries no derivation.
	ErrNotDerived = errors.New("derive: field is not derived")
	// ErrEmptyMapping is returned when a derivation maps nothing.
	ErrEmptyMapping = errors.New("derive: mapping is empty")
)

// Func projects a source value onto the derived value. The boolean is false
// when the derived field must be unset. A nil source means the source is
// unset.
type Func func(source any) (any, bool)

// FromMapping builds a Func from a value table. Only string sources equal to
// a table key map; padded or differently cased strings, non-string sources
// and unknown keys yield unset, matching what the source field's oneOf rule
// accepts.
func FromMapping(mapping map[string]string) Func {
	table := make(map[string]string, len(mapping))
	for key, value := range mapping {
		table[key] = value
	}
	return func(source any) (any, bool) {
		key, ok := source.(string)
		if !ok {
			return nil, false
		}
		value, ok := table[key]
		if !ok {
			return nil, false
		}
		return value, true
	}
}

// For returns the derivation function declared on field.
func For(field model.Field) (Func, error) {
	if !field.IsDerived() {
		return nil, fmt.Errorf("%w: %q", ErrNotDerived, field.Name)
	}
	if len(field.Derived.Mapping) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyMapping, field.Name)
	}
	return FromMapping(field.Derived.Mapping), nil
}
