package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/render"
	"github.com/goliatone/go-formengine/pkg/validation"
)

const (
	hintSanitize = "sanitize"
	hintInput    = "input"

	sanitizeStrict = "strict"
	inputPassword  = "password"
	inputTextArea  = "textarea"
)

var _ render.Renderer = (*Renderer)(nil)

// Renderer walks a form in the terminal: it prompts for every user-editable
// field, feeds answers to the engine and submits. Fields that fail validation
// are prompted again until the submission passes or the attempt budget runs
// out.
type Renderer struct {
	driver      PromptDriver
	format      render.Format
	maxAttempts int
	seedErrors  map[string][]string
	theme       Theme
	logger      *zap.Logger
	sanitizer   *bluemonday.Policy
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// three attempts).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		format:      render.FormatJSON,
		maxAttempts: DefaultMaxAttempts,
		logger:      zap.NewNop(),
		sanitizer:   bluemonday.StrictPolicy(),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, err := render.ParseFormat(string(r.format)); err != nil {
		return nil, err
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	return r.format.ContentType()
}

// Render runs the prompt loop against eng and returns the accepted values in
// the configured output format.
func (r *Renderer) Render(ctx context.Context, eng *engine.Engine) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if eng == nil {
		return nil, ErrNoEngine
	}

	form := eng.Form()
	checker, err := validation.NewValidator(form)
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	if form.Title != "" {
		if err := r.info(ctx, form.Title); err != nil {
			return nil, err
		}
	}

	seeded := render.ResolveFeedback(form, r.seedErrors)
	for _, msg := range seeded.Form {
		if err := r.fail(ctx, msg); err != nil {
			return nil, err
		}
	}
	if !seeded.Empty() {
		r.logger.Debug("errors seeded",
			zap.String("form", form.ID),
			zap.Strings("fields", seeded.Fields.Fields()),
			zap.Int("form_messages", len(seeded.Form)),
		)
	}
	hints := retryHints(form, seeded.Fields)

	pending := editableFields(form)
	for attempt := 1; ; attempt++ {
		for _, field := range pending {
			if err := r.promptField(ctx, eng, checker, field, hints[field.Name]); err != nil {
				return nil, err
			}
		}

		result := eng.Submit()
		if result.OK() {
			r.logger.Debug("form submitted", zap.String("form", form.ID), zap.Int("attempt", attempt))
			return render.Serialize(result.Values, r.format)
		}

		r.logger.Debug("form rejected",
			zap.String("form", form.ID),
			zap.Int("attempt", attempt),
			zap.Strings("fields", result.Errors.Fields()),
		)
		if err := r.report(ctx, form, result.Errors); err != nil {
			return nil, err
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %d of %d", ErrTooManyAttempts, attempt, r.maxAttempts)
		}

		pending = retryFields(form, result.Errors)
		hints = retryHints(form, result.Errors)
	}
}

func (r *Renderer) promptField(ctx context.Context, eng *engine.Engine, checker *validation.Validator, field model.Field, hint string) error {
	current, hasCurrent := eng.Value(field.Name)
	help := hint
	if help == "" {
		help = displayHelp(field)
	}

	var value any
	switch {
	case field.Type == model.FieldTypeBoolean:
		answer, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: r.label(field),
			Default: defaultBoolValue(current),
			Help:    help,
		})
		if err != nil {
			return err
		}
		value = answer
	case len(field.Enum) > 0:
		options := stringifyEnum(field.Enum)
		defaultIdx := -1
		if hasCurrent {
			defaultIdx = indexOf(options, fmt.Sprint(current))
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.label(field),
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         help,
		})
		if err != nil {
			return err
		}
		if idx >= 0 && idx < len(field.Enum) {
			value = field.Enum[idx]
		}
	default:
		answer, err := r.promptText(ctx, checker, field, defaultStringValue(current, hasCurrent), help)
		if err != nil {
			return err
		}
		value = r.clean(field, answer)
	}

	if err := eng.SetField(field.Name, value); err != nil {
		return fmt.Errorf("tui: set %s: %w", field.Name, err)
	}
	r.logger.Debug("field answered", zap.String("field", field.Name))

	for _, dep := range eng.Dependents(field.Name) {
		derived, ok := eng.Value(dep.Name)
		text := "(unset)"
		if ok {
			text = fmt.Sprint(derived)
		}
		if err := r.info(ctx, fmt.Sprintf("%s: %s", displayLabel(dep), text)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptText(ctx context.Context, checker *validation.Validator, field model.Field, def, help string) (string, error) {
	cfg := InputConfig{
		Message: r.label(field),
		Default: def,
		Help:    help,
		Validator: func(raw string) error {
			if msg := checker.CheckField(field.Name, validation.Coerce(field, r.clean(field, raw))); msg != "" {
				return errors.New(msg)
			}
			return nil
		},
	}

	switch field.UIHints[hintInput] {
	case inputPassword:
		cfg.Default = ""
		return r.driver.Password(ctx, cfg)
	case inputTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help})
	default:
		return r.driver.Input(ctx, cfg)
	}
}

// clean trims free text and strips markup from fields hinted with
// sanitize: strict.
func (r *Renderer) clean(field model.Field, raw string) string {
	text := strings.TrimSpace(raw)
	if field.UIHints[hintSanitize] == sanitizeStrict {
		text = strings.TrimSpace(r.sanitizer.Sanitize(text))
	}
	return text
}

func (r *Renderer) report(ctx context.Context, form model.FormModel, errs validation.ErrorSet) error {
	for _, field := range form.Fields {
		msg, ok := errs[field.Name]
		if !ok {
			continue
		}
		if err := r.fail(ctx, fmt.Sprintf("%s: %s", displayLabel(field), msg)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) label(field model.Field) string {
	return r.theme.PromptPrefix + displayLabel(field)
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func editableFields(form model.FormModel) []model.Field {
	out := make([]model.Field, 0, len(form.Fields))
	for _, field := range form.Fields {
		if !field.IsDerived() {
			out = append(out, field)
		}
	}
	return out
}

// retryFields selects the editable fields to prompt again, in descriptor
// order. A failing derived field sends the user back to its source.
func retryFields(form model.FormModel, errs validation.ErrorSet) []model.Field {
	retry := make(map[string]struct{}, len(errs))
	for _, field := range form.Fields {
		if !errs.Has(field.Name) {
			continue
		}
		if field.IsDerived() {
			retry[field.Derived.Source] = struct{}{}
			continue
		}
		retry[field.Name] = struct{}{}
	}

	var out []model.Field
	for _, field := range editableFields(form) {
		if _, ok := retry[field.Name]; ok {
			out = append(out, field)
		}
	}
	return out
}

func retryHints(form model.FormModel, errs validation.ErrorSet) map[string]string {
	hints := make(map[string]string, len(errs))
	for _, field := range form.Fields {
		msg, ok := errs[field.Name]
		if !ok {
			continue
		}
		target := field.Name
		if field.IsDerived() {
			target = field.Derived.Source
			msg = fmt.Sprintf("%s: %s", displayLabel(field), msg)
		}
		if existing := hints[target]; existing != "" {
			msg = existing + "; " + msg
		}
		hints[target] = msg
	}
	return hints
}

func displayLabel(field model.Field) string {
	if field.Label != "" {
		return field.Label
	}
	return field.Name
}

func displayHelp(field model.Field) string {
	if h := field.Metadata["cli.help"]; h != "" {
		return h
	}
	return field.Description
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func defaultStringValue(current any, ok bool) string {
	if !ok || current == nil {
		return ""
	}
	return fmt.Sprint(current)
}

func defaultBoolValue(current any) bool {
	b, _ := current.(bool)
	return b
}
