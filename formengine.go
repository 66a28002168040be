// Package formengine is the convenience entry point for the form engine: it
// re-exports the orchestrator so callers can fill or validate a form with a
// single import.
package formengine

import (
	"context"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/orchestrator"
	"github.com/goliatone/go-formengine/pkg/render"
	"github.com/goliatone/go-formengine/pkg/renderers/tui"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// Result aliases engine.Result.
type Result = engine.Result

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewEngine resolves the form named by req and returns an engine over it.
func NewEngine(ctx context.Context, req Request, options ...orchestrator.Option) (*engine.Engine, error) {
	return orchestrator.New(options...).Engine(ctx, req)
}

// Validate submits req.Values against the form named by req once.
func Validate(ctx context.Context, req Request, options ...orchestrator.Option) (Result, error) {
	return orchestrator.New(options...).Validate(ctx, req)
}

// Fill runs the terminal prompt loop for the form named by req and returns
// the accepted values serialised in the renderer's output format.
func Fill(ctx context.Context, req Request, tuiOptions []tui.Option, options ...orchestrator.Option) ([]byte, error) {
	renderer, err := tui.New(tuiOptions...)
	if err != nil {
		return nil, err
	}
	return Render(ctx, req, renderer, options...)
}

// Render lets any renderer drive the form named by req.
func Render(ctx context.Context, req Request, renderer render.Renderer, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, req, renderer)
}
