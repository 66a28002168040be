// Package engine owns the state of a single form instance: field values,
// derived fields and the errors produced by the last validation.
//
// An Engine is single-threaded by contract. A UI layer calls SetField and
// Submit one at a time in response to discrete user actions; no locking is
// performed.
package engine

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/derive"
	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/validation"
)

// Result is the outcome of Submit: either the validated values or the
// complete set of violations.
type Result struct {
	Values map[string]any
	Errors validation.ErrorSet
}

// OK reports whether the submission passed validation.
func (r Result) OK() bool {
	return r.Errors.Empty()
}

type derivedField struct {
	name string
	fn   derive.Func
}

// Engine maintains field values, enforces derivations and validates on demand.
type Engine struct {
	form       model.FormModel
	fields     map[string]model.Field
	dependents map[string][]derivedField
	validator  *validation.Validator

	values map[string]any
	errors validation.ErrorSet

	observers []Observer
	logger    *zap.Logger
	prefill   []prefillEntry
}

// New builds an engine for form. Descriptor defaults are applied, then any
// WithValues prefill, then every derived field is computed.
func New(form model.FormModel, opts ...Option) (*Engine, error) {
	e := &Engine{
		form:       form,
		fields:     make(map[string]model.Field, len(form.Fields)),
		dependents: make(map[string][]derivedField),
		values:     make(map[string]any),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}

	if err := e.index(); err != nil {
		return nil, err
	}

	validator, err := validation.NewValidator(form)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidForm, err)
	}
	e.validator = validator

	e.applyDefaults()

	sort.Slice(e.prefill, func(i, j int) bool { return e.prefill[i].name < e.prefill[j].name })
	for _, entry := range e.prefill {
		if err := e.set(entry.name, entry.value); err != nil {
			return nil, err
		}
	}
	e.prefill = nil

	return e, nil
}

func (e *Engine) index() error {
	for _, field := range e.form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("%w: field without a name", ErrInvalidForm)
		}
		if _, exists := e.fields[name]; exists {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidForm, name)
		}
		e.fields[name] = field
	}

	for _, field := range e.form.Fields {
		if !field.IsDerived() {
			continue
		}
		source, ok := e.fields[field.Derived.Source]
		if !ok {
			return fmt.Errorf("%w: %q derives from undeclared field %q", ErrInvalidForm, field.Name, field.Derived.Source)
		}
		if source.IsDerived() {
			return fmt.Errorf("%w: %q derives from derived field %q", ErrInvalidForm, field.Name, source.Name)
		}
		fn, err := derive.For(field)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidForm, err)
		}
		e.dependents[source.Name] = append(e.dependents[source.Name], derivedField{name: field.Name, fn: fn})
	}
	return nil
}

func (e *Engine) applyDefaults() {
	e.values = make(map[string]any, len(e.form.Fields))
	for _, field := range e.form.Fields {
		if field.IsDerived() || field.Default == nil {
			continue
		}
		e.assign(field, field.Default)
	}
	for source := range e.dependents {
		e.recompute(source)
	}
}

// Form returns the descriptor list the engine was built from.
func (e *Engine) Form() model.FormModel {
	return e.form
}

// Dependents lists the derived fields recomputed when name changes.
func (e *Engine) Dependents(name string) []model.Field {
	deps := e.dependents[name]
	if len(deps) == 0 {
		return nil
	}
	out := make([]model.Field, 0, len(deps))
	for _, dep := range deps {
		out = append(out, e.fields[dep.name])
	}
	return out
}

// SetField updates a field value. Derived fields sourced from name are
// recomputed before SetField returns, so observers never see the two
// disagree. Raw input is coerced to the declared type where lossless (for
// example "42" becomes int64(42) on integer fields).
func (e *Engine) SetField(name string, value any) error {
	if err := e.set(name, value); err != nil {
		return err
	}
	e.notify()
	return nil
}

func (e *Engine) set(name string, value any) error {
	field, ok := e.fields[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidFieldName, name)
	}
	if field.IsDerived() {
		return fmt.Errorf("%w: %q is computed from %q", ErrDerivedField, name, field.Derived.Source)
	}

	e.assign(field, value)
	e.recompute(name)
	e.logger.Debug("field updated", zap.String("field", name), zap.Any("value", e.values[name]))
	return nil
}

func (e *Engine) assign(field model.Field, value any) {
	coerced := validation.Coerce(field, value)
	if coerced == nil {
		delete(e.values, field.Name)
		return
	}
	e.values[field.Name] = coerced
}

func (e *Engine) recompute(source string) {
	current := e.values[source]
	for _, dep := range e.dependents[source] {
		value, ok := dep.fn(current)
		if !ok {
			delete(e.values, dep.name)
			continue
		}
		e.values[dep.name] = value
	}
}

// Value returns the current value of name. Unset fields report false.
func (e *Engine) Value(name string) (any, bool) {
	value, ok := e.values[name]
	return deepCopy(value), ok
}

// Values returns a snapshot of all set fields.
func (e *Engine) Values() map[string]any {
	return cloneValues(e.values)
}

// Errors returns the violations recorded by the last Validate or Submit.
func (e *Engine) Errors() validation.ErrorSet {
	return e.errors.Clone()
}

// Snapshot returns the current values and errors together.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{Values: e.Values(), Errors: e.Errors()}
}

// Validate runs the full schema against the current values. It returns the
// value snapshot when every rule passes, or nil values and the complete error
// set. Field values are never modified.
func (e *Engine) Validate() (map[string]any, validation.ErrorSet) {
	values := e.Values()
	errs := e.validator.Validate(values)
	e.errors = errs
	e.notify()
	if !errs.Empty() {
		return nil, errs.Clone()
	}
	return values, nil
}

// Submit validates and packages the outcome. A failed submission leaves every
// value in place.
func (e *Engine) Submit() Result {
	values, errs := e.Validate()
	if !errs.Empty() {
		e.logger.Debug("submission rejected", zap.Strings("fields", errs.Fields()))
		return Result{Errors: errs}
	}
	e.logger.Debug("submission accepted", zap.Int("fields", len(values)))
	return Result{Values: values}
}

// Reset restores descriptor defaults and clears recorded errors.
func (e *Engine) Reset() {
	e.applyDefaults()
	e.errors = nil
	e.notify()
}

func (e *Engine) notify() {
	if len(e.observers) == 0 {
		return
	}
	for _, observer := range e.observers {
		observer(e.Snapshot())
	}
}
