package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the form still fails validation
	// after the configured number of rounds.
	ErrTooManyAttempts = errors.New("tui: too many attempts")
	// ErrNoEngine is returned when Render is called without an engine.
	ErrNoEngine = errors.New("tui: engine is required")
)
