package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/render"
)

// DefaultMaxAttempts bounds the prompt/submit rounds before Render gives up.
const DefaultMaxAttempts = 3

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format render.Format) Option {
	return func(r *Renderer) {
		if format != "" {
			r.format = format
		}
	}
}

// WithMaxAttempts sets how many prompt/submit rounds run before Render returns
// ErrTooManyAttempts. Values below one are ignored.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithErrors seeds the session with errors reported elsewhere: a previous
// validate run, or an upstream service keyed by JSON pointer paths (see
// render.DecodeFeedback). Field messages become prompt help on the first
// round, messages on derived fields go to their source, and messages naming
// no field are printed up front.
func WithErrors(payload map[string][]string) Option {
	return func(r *Renderer) {
		r.seedErrors = payload
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithLogger routes debug logging to logger. The default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}
