package render

import (
	"context"

	"github.com/goliatone/go-formengine/pkg/engine"
)

// Renderer drives an engine to completion and returns the submitted values in
// the renderer's output format.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, eng *engine.Engine) ([]byte, error)
}
