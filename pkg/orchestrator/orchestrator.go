package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/descriptor"
	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/openapi"
	"github.com/goliatone/go-formengine/pkg/render"
)

// DefaultFormID is used when a request names no source at all.
const DefaultFormID = "personal"

// ErrNoRenderer is returned by Generate when no renderer is supplied.
var ErrNoRenderer = errors.New("orchestrator: renderer is required")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithDescriptorStore replaces the embedded descriptor store used to resolve
// FormID requests.
func WithDescriptorStore(store *descriptor.Store) Option {
	return func(o *Orchestrator) {
		if store != nil {
			o.store = store
		}
	}
}

// WithDecorators registers decorators that run against every resolved form
// model before an engine is built.
func WithDecorators(decorators ...model.Decorator) Option {
	return func(o *Orchestrator) {
		if len(decorators) == 0 {
			return
		}
		o.decorators = append(o.decorators, decorators...)
	}
}

// WithEngineOptions appends options passed to every engine the orchestrator
// builds.
func WithEngineOptions(options ...engine.Option) Option {
	return func(o *Orchestrator) {
		o.engineOptions = append(o.engineOptions, options...)
	}
}

// WithLogger routes debug logging to logger. Engines built by the
// orchestrator inherit it.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates descriptor resolution, engine construction and
// rendering. It defaults to the embedded descriptors and a no-op logger.
type Orchestrator struct {
	store         *descriptor.Store
	decorators    []model.Decorator
	engineOptions []engine.Option
	logger        *zap.Logger
	initialiseErr error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.store == nil {
		store, err := descriptor.Embedded()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: load embedded descriptors: %w", err)
		}
		o.store = store
	}
	return o
}

// Request describes where a form comes from and the values it starts with.
// Exactly one source is used, checked in this order: OpenAPI, DescriptorFile,
// FormID. An empty request resolves DefaultFormID.
type Request struct {
	// FormID selects a form from the orchestrator's descriptor store, or from
	// DescriptorFile when that is set.
	FormID string

	// DescriptorFile points at a JSON or YAML descriptor document on disk.
	DescriptorFile string

	// OpenAPI holds a raw OpenAPI 3 document; Component names the schema under
	// components.schemas to convert.
	OpenAPI   []byte
	Component string

	// Values prefill the engine after descriptor defaults.
	Values map[string]any
}

// Form resolves and decorates the form model named by req.
func (o *Orchestrator) Form(ctx context.Context, req Request) (model.FormModel, error) {
	if ctx == nil {
		return model.FormModel{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.FormModel{}, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return model.FormModel{}, err
	}
	if err := model.Apply(&form, o.decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: decorate form: %w", err)
	}
	o.logger.Debug("form resolved", zap.String("form", form.ID), zap.Int("fields", len(form.Fields)))
	return form, nil
}

// Engine resolves the form named by req and builds an engine over it.
func (o *Orchestrator) Engine(ctx context.Context, req Request) (*engine.Engine, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}

	options := make([]engine.Option, 0, len(o.engineOptions)+2)
	options = append(options, engine.WithLogger(o.logger))
	options = append(options, o.engineOptions...)
	if len(req.Values) > 0 {
		options = append(options, engine.WithValues(req.Values))
	}

	eng, err := engine.New(form, options...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: build engine: %w", err)
	}
	return eng, nil
}

// Validate builds an engine prefilled with req.Values and submits it once.
func (o *Orchestrator) Validate(ctx context.Context, req Request) (engine.Result, error) {
	eng, err := o.Engine(ctx, req)
	if err != nil {
		return engine.Result{}, err
	}
	return eng.Submit(), nil
}

// Generate builds an engine for req and lets renderer drive it to a
// submission.
func (o *Orchestrator) Generate(ctx context.Context, req Request, renderer render.Renderer) ([]byte, error) {
	if renderer == nil {
		return nil, ErrNoRenderer
	}
	eng, err := o.Engine(ctx, req)
	if err != nil {
		return nil, err
	}

	output, err := renderer.Render(ctx, eng)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render %s: %w", renderer.Name(), err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (model.FormModel, error) {
	switch {
	case len(req.OpenAPI) > 0:
		form, err := openapi.FormFromComponent(ctx, req.OpenAPI, req.Component)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: openapi component: %w", err)
		}
		return form, nil
	case req.DescriptorFile != "":
		store, err := descriptor.LoadFile(req.DescriptorFile)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: load descriptor file: %w", err)
		}
		return pickForm(store, req.FormID)
	default:
		id := req.FormID
		if id == "" {
			id = DefaultFormID
		}
		form, err := o.store.Build(id)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("orchestrator: %w", err)
		}
		return form, nil
	}
}

// pickForm selects id from store, or the only form when id is empty.
func pickForm(store *descriptor.Store, id string) (model.FormModel, error) {
	if id == "" {
		ids := store.IDs()
		if len(ids) != 1 {
			return model.FormModel{}, fmt.Errorf("orchestrator: descriptor file defines %d forms, select one by id", len(ids))
		}
		id = ids[0]
	}
	form, err := store.Build(id)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("orchestrator: %w", err)
	}
	return form, nil
}
