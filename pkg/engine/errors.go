package engine

import "errors"

var (
	// ErrInvalidFieldName signals a caller referencing a field the form does
	// not declare. It is an integration defect, not a user input problem.
	ErrInvalidFieldName = errors.New("engine: invalid field name")
	// ErrDerivedField is returned when a caller tries to set a derived field
	// directly.
	ErrDerivedField = errors.New("engine: field is derived")
	// ErrInvalidForm is returned by New when the descriptor list is unusable
	// (duplicate names, dangling derivation sources, derivation chains).
	ErrInvalidForm = errors.New("engine: invalid form")
)
