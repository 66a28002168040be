package engine

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/validation"
)

// Snapshot is the reactive pair renderers read after every change: the current
// values and the errors from the most recent validation.
type Snapshot struct {
	Values map[string]any
	Errors validation.ErrorSet
}

// Observer is notified after every state change.
type Observer func(Snapshot)

// Option configures an Engine.
type Option func(*Engine)

// WithObserver registers an observer invoked after SetField, Validate, Submit
// and Reset.
func WithObserver(observer Observer) Option {
	return func(e *Engine) {
		if observer != nil {
			e.observers = append(e.observers, observer)
		}
	}
}

// WithLogger routes debug logging to logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithValues prefills values on top of descriptor defaults. Each entry goes
// through the same path as SetField, so unknown names fail New.
func WithValues(values map[string]any) Option {
	return func(e *Engine) {
		for name, value := range values {
			e.prefill = append(e.prefill, prefillEntry{name: name, value: value})
		}
	}
}

type prefillEntry struct {
	name  string
	value any
}
