package validation

import (
	"errors"
	"sort"
)

// ErrInvalidRule is returned when a descriptor declares a rule that cannot be
// compiled (bad pattern, non-numeric bound, oneOf without enum values).
var ErrInvalidRule = errors.New("validation: invalid rule")

// ErrorSet maps a field name to the human-readable violation reported for it.
// It is data, not a Go error: callers display it and let the user correct the
// input.
type ErrorSet map[string]string

// Empty reports whether no violations were recorded.
func (e ErrorSet) Empty() bool {
	return len(e) == 0
}

// Has reports whether field carries a violation.
func (e ErrorSet) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the names of failing fields in sorted order.
func (e ErrorSet) Fields() []string {
	if len(e) == 0 {
		return nil
	}
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns an independent copy.
func (e ErrorSet) Clone() ErrorSet {
	if e == nil {
		return nil
	}
	out := make(ErrorSet, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Equal reports whether both sets carry the same messages.
func (e ErrorSet) Equal(other ErrorSet) bool {
	if len(e) != len(other) {
		return false
	}
	for k, v := range e {
		if ov, ok := other[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// Payload converts the set into the map[string][]string shape renderers and
// error mappers consume.
func (e ErrorSet) Payload() map[string][]string {
	if len(e) == 0 {
		return nil
	}
	out := make(map[string][]string, len(e))
	for k, v := range e {
		out[k] = []string{v}
	}
	return out
}
