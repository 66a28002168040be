package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-formengine/pkg/descriptor"
	"github.com/goliatone/go-formengine/pkg/engine"
	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/orchestrator"
	"github.com/goliatone/go-formengine/pkg/validation"
)

func validPersonalValues() map[string]any {
	return map[string]any{
		"firstName":          "Ada",
		"lastName":           "Lovelace",
		"email":              "ada@example.com",
		"phone":              "42",
		"address":            "1 Analytical Street",
		"gender":             "female",
		"isEmployed":         "no",
		"termsAndConditions": true,
	}
}

func TestValidate_DefaultsToBundledForm(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithLogger(zap.NewNop()))

	result, err := gen.Validate(context.Background(), orchestrator.Request{Values: validPersonalValues()})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.OK() {
		t.Fatalf("expected ok, got %v", result.Errors)
	}

	want := map[string]any{
		"firstName":          "Ada",
		"lastName":           "Lovelace",
		"email":              "ada@example.com",
		"phone":              int64(42),
		"address":            "1 Analytical Street",
		"gender":             "female",
		"isEmployed":         "no",
		"employmentStatus":   "unemployed",
		"termsAndConditions": true,
	}
	if diff := cmp.Diff(want, result.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_DecoratorsApplyToEveryForm(t *testing.T) {
	gen := orchestrator.New(orchestrator.WithDecorators(model.WithoutDefaults()))

	result, err := gen.Validate(context.Background(), orchestrator.Request{FormID: "personal"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if got := len(result.Errors); got != 9 {
		t.Fatalf("expected 9 errors on an empty form, got %d: %v", got, result.Errors)
	}
}

func TestValidate_OpenAPISourceMatchesDescriptor(t *testing.T) {
	raw, err := os.ReadFile(filepath.Join("..", "openapi", "testdata", "personal.openapi.yaml"))
	if err != nil {
		t.Fatalf("read openapi fixture: %v", err)
	}
	gen := orchestrator.New(orchestrator.WithDecorators(model.WithoutDefaults()))

	inputs := []map[string]any{
		validPersonalValues(),
		{"email": "not-an-email", "phone": "-5", "termsAndConditions": false},
	}
	for _, values := range inputs {
		fromDescriptor, err := gen.Validate(context.Background(), orchestrator.Request{Values: values})
		if err != nil {
			t.Fatalf("descriptor validate: %v", err)
		}
		fromOpenAPI, err := gen.Validate(context.Background(), orchestrator.Request{
			OpenAPI:   raw,
			Component: "PersonalDetails",
			Values:    values,
		})
		if err != nil {
			t.Fatalf("openapi validate: %v", err)
		}
		if diff := cmp.Diff(fromDescriptor.Errors, fromOpenAPI.Errors); diff != "" {
			t.Fatalf("error sets differ (-descriptor +openapi):\n%s", diff)
		}
	}
}

func TestEngine_DescriptorFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contact.yaml")
	doc := []byte(`forms:
  contact:
    fields:
      - name: email
        required: true
        validations:
          - kind: email
`)
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		t.Fatalf("write descriptor: %v", err)
	}

	gen := orchestrator.New()
	eng, err := gen.Engine(context.Background(), orchestrator.Request{
		DescriptorFile: path,
		Values:         map[string]any{"email": "nope"},
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	if eng.Form().ID != "contact" {
		t.Fatalf("expected contact form, got %q", eng.Form().ID)
	}

	result := eng.Submit()
	want := validation.ErrorSet{"email": validation.MessageEmail}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

type submitRenderer struct {
	values map[string]any
}

func (r *submitRenderer) Name() string        { return "submit" }
func (r *submitRenderer) ContentType() string { return "text/plain" }

func (r *submitRenderer) Render(_ context.Context, eng *engine.Engine) ([]byte, error) {
	for name, value := range r.values {
		if err := eng.SetField(name, value); err != nil {
			return nil, err
		}
	}
	result := eng.Submit()
	if !result.OK() {
		return nil, errors.New("rejected")
	}
	return []byte("ok"), nil
}

func TestGenerate(t *testing.T) {
	gen := orchestrator.New()

	out, err := gen.Generate(context.Background(), orchestrator.Request{}, &submitRenderer{values: validPersonalValues()})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(out) != "ok" {
		t.Fatalf("unexpected output %q", out)
	}

	_, err = gen.Generate(context.Background(), orchestrator.Request{}, &submitRenderer{})
	if err == nil {
		t.Fatalf("expected renderer error to surface")
	}

	if _, err := gen.Generate(context.Background(), orchestrator.Request{}, nil); !errors.Is(err, orchestrator.ErrNoRenderer) {
		t.Fatalf("expected ErrNoRenderer, got %v", err)
	}
}

func TestErrors(t *testing.T) {
	gen := orchestrator.New()

	if _, err := gen.Form(context.Background(), orchestrator.Request{FormID: "missing"}); !errors.Is(err, descriptor.ErrFormNotFound) {
		t.Fatalf("expected ErrFormNotFound, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Form(ctx, orchestrator.Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	_, err := gen.Engine(context.Background(), orchestrator.Request{Values: map[string]any{"nickname": "x"}})
	if !errors.Is(err, engine.ErrInvalidFieldName) {
		t.Fatalf("expected ErrInvalidFieldName, got %v", err)
	}
}
