package validation_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/validation"
)

func contactForm() model.FormModel {
	return model.FormModel{
		ID: "contact",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true},
			{
				Name:        "email",
				Type:        model.FieldTypeString,
				Required:    true,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleEmail}},
			},
			{
				Name:     "phone",
				Type:     model.FieldTypeInteger,
				Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRulePositive},
					{Kind: model.ValidationRuleInteger},
				},
			},
			{
				Name:        "gender",
				Type:        model.FieldTypeString,
				Required:    true,
				Enum:        []any{"female", "male", "other"},
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleOneOf}},
			},
			{
				Name:        "terms",
				Type:        model.FieldTypeBoolean,
				Required:    true,
				Validations: []model.ValidationRule{{Kind: model.ValidationRuleAccepted}},
			},
		},
	}
}

func newValidator(t *testing.T) *validation.Validator {
	t.Helper()
	v, err := validation.NewValidator(contactForm())
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidateReportsEveryField(t *testing.T) {
	v := newValidator(t)

	got := v.Validate(map[string]any{})
	want := validation.ErrorSet{
		"name":   validation.MessageRequired,
		"email":  validation.MessageRequired,
		"phone":  validation.MessageRequired,
		"gender": validation.MessageRequired,
		"terms":  validation.MessageRequired,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error set mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePassesAndLeavesValuesUntouched(t *testing.T) {
	v := newValidator(t)
	values := map[string]any{
		"name":   "Ada",
		"email":  "a@b.com",
		"phone":  int64(42),
		"gender": "female",
		"terms":  true,
	}
	before := map[string]any{}
	for k, val := range values {
		before[k] = val
	}

	if errs := v.Validate(values); !errs.Empty() {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if diff := cmp.Diff(before, values); diff != "" {
		t.Fatalf("values mutated (-want +got):\n%s", diff)
	}
}

func TestCheckField(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name  string
		field string
		value any
		want  string
	}{
		{name: "email invalid", field: "email", value: "not-an-email", want: validation.MessageEmail},
		{name: "email empty", field: "email", value: "", want: validation.MessageRequired},
		{name: "email whitespace", field: "email", value: "   ", want: validation.MessageRequired},
		{name: "email ok", field: "email", value: "a@b.com"},
		{name: "phone negative", field: "phone", value: "-5", want: validation.MessagePositive},
		{name: "phone fraction", field: "phone", value: "3.2", want: validation.MessageInteger},
		{name: "phone fraction float", field: "phone", value: 3.2, want: validation.MessageInteger},
		{name: "phone zero", field: "phone", value: int64(0), want: validation.MessagePositive},
		{name: "phone empty", field: "phone", value: "", want: validation.MessageRequired},
		{name: "phone text", field: "phone", value: "abc", want: validation.MessageNumber},
		{name: "phone ok", field: "phone", value: int64(42)},
		{name: "phone ok string", field: "phone", value: "42"},
		{name: "gender unknown", field: "gender", value: "robot", want: "Must be one of: female, male, other"},
		{name: "gender ok", field: "gender", value: "other"},
		{name: "terms false", field: "terms", value: false, want: validation.MessageAccepted},
		{name: "terms unset", field: "terms", value: nil, want: validation.MessageRequired},
		{name: "terms empty string", field: "terms", value: "", want: validation.MessageRequired},
		{name: "terms junk", field: "terms", value: "yes", want: validation.MessageBoolean},
		{name: "terms true", field: "terms", value: true},
		{name: "unknown field", field: "nickname", value: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.CheckField(tc.field, tc.value); got != tc.want {
				t.Fatalf("CheckField(%s, %#v) = %q, want %q", tc.field, tc.value, got, tc.want)
			}
		})
	}
}

func TestCustomMessagesAndTeacherRules(t *testing.T) {
	form := model.FormModel{
		Fields: []model.Field{
			{
				Name:     "code",
				Type:     model.FieldTypeString,
				Required: true,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleRequired, Message: "Code please"},
					{Kind: model.ValidationRuleMinLength, Params: map[string]string{"value": "3"}},
					{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "^[A-Z]+$"}},
				},
			},
			{
				Name: "age",
				Type: model.FieldTypeNumber,
				Validations: []model.ValidationRule{
					{Kind: model.ValidationRuleMax, Params: map[string]string{"value": "120"}},
				},
			},
		},
	}
	v, err := validation.NewValidator(form)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	got := v.Validate(map[string]any{"age": 130.5})
	want := validation.ErrorSet{
		"code": "Code please",
		"age":  "Must be at most 120",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("error set mismatch (-want +got):\n%s", diff)
	}

	if msg := v.CheckField("code", "AB"); msg != "Must be at least 3 characters" {
		t.Fatalf("unexpected min length message %q", msg)
	}
	if msg := v.CheckField("code", "abc"); msg != validation.MessagePattern {
		t.Fatalf("unexpected pattern message %q", msg)
	}
	if msg := v.CheckField("age", nil); msg != "" {
		t.Fatalf("optional field should pass when empty, got %q", msg)
	}
}

func TestNewValidatorRejectsBadRules(t *testing.T) {
	cases := map[string]model.Field{
		"pattern": {Name: "a", Validations: []model.ValidationRule{{Kind: model.ValidationRulePattern, Params: map[string]string{"pattern": "("}}}},
		"min":     {Name: "b", Validations: []model.ValidationRule{{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "x"}}}},
		"oneOf":   {Name: "c", Validations: []model.ValidationRule{{Kind: model.ValidationRuleOneOf}}},
		"unknown": {Name: "d", Validations: []model.ValidationRule{{Kind: "telepathy"}}},
	}
	for name, field := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := validation.NewValidator(model.FormModel{Fields: []model.Field{field}})
			if !errors.Is(err, validation.ErrInvalidRule) {
				t.Fatalf("expected ErrInvalidRule, got %v", err)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	integer := model.Field{Type: model.FieldTypeInteger}
	number := model.Field{Type: model.FieldTypeNumber}
	boolean := model.Field{Type: model.FieldTypeBoolean}
	text := model.Field{Type: model.FieldTypeString}

	cases := []struct {
		name  string
		field model.Field
		in    any
		want  any
	}{
		{name: "integer string", field: integer, in: "42", want: int64(42)},
		{name: "integer padded", field: integer, in: " 7 ", want: int64(7)},
		{name: "integer negative", field: integer, in: "-5", want: int64(-5)},
		{name: "integer fraction kept", field: integer, in: "3.2", want: "3.2"},
		{name: "integer empty kept", field: integer, in: "", want: ""},
		{name: "integer from int", field: integer, in: 9, want: int64(9)},
		{name: "integer from whole float", field: integer, in: 9.0, want: int64(9)},
		{name: "integer float beyond int64 kept", field: integer, in: 1e20, want: 1e20},
		{name: "integer float at 2^63 kept", field: integer, in: float64(math.MaxInt64), want: float64(math.MaxInt64)},
		{name: "integer json number beyond int64 kept", field: integer, in: json.Number("1e20"), want: json.Number("1e20")},
		{name: "integer over-long string kept", field: integer, in: "99999999999999999999", want: "99999999999999999999"},
		{name: "integer from uint", field: integer, in: uint(42), want: int64(42)},
		{name: "integer from uint64", field: integer, in: uint64(42), want: int64(42)},
		{name: "integer from uintptr", field: integer, in: uintptr(7), want: int64(7)},
		{name: "integer uint64 beyond int64 kept", field: integer, in: uint64(math.MaxUint64), want: uint64(math.MaxUint64)},
		{name: "number from uint", field: number, in: uint(3), want: 3.0},
		{name: "number string", field: number, in: "1.5", want: 1.5},
		{name: "boolean string", field: boolean, in: "true", want: true},
		{name: "boolean junk kept", field: boolean, in: "maybe", want: "maybe"},
		{name: "string untouched", field: text, in: "42", want: "42"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, validation.Coerce(tc.field, tc.in)); diff != "" {
				t.Fatalf("coerce mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckFieldLargeIntegers(t *testing.T) {
	v := newValidator(t)

	cases := []struct {
		name  string
		value any
		want  string
	}{
		{name: "float beyond int64", value: 1e20, want: validation.MessageOutOfRange},
		{name: "json number beyond int64", value: json.Number("1e20"), want: validation.MessageOutOfRange},
		{name: "over-long string", value: "99999999999999999999", want: validation.MessageOutOfRange},
		{name: "uint64 beyond int64", value: uint64(math.MaxUint64), want: validation.MessageOutOfRange},
		{name: "largest int64", value: int64(math.MaxInt64)},
		{name: "uint", value: uint(42)},
		{name: "fraction stays a whole number error", value: "3.5", want: validation.MessageInteger},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := v.CheckField("phone", tc.value); got != tc.want {
				t.Fatalf("CheckField(phone, %#v) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestErrorSetHelpers(t *testing.T) {
	errs := validation.ErrorSet{"b": "two", "a": "one"}

	if diff := cmp.Diff([]string{"a", "b"}, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	clone := errs.Clone()
	clone["c"] = "three"
	if errs.Has("c") || !errs.Equal(validation.ErrorSet{"a": "one", "b": "two"}) {
		t.Fatalf("clone should not alias the original")
	}
	want := map[string][]string{"a": {"one"}, "b": {"two"}}
	if diff := cmp.Diff(want, errs.Payload()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !validation.ErrorSet(nil).Empty() || validation.ErrorSet(nil).Payload() != nil {
		t.Fatalf("nil set should be empty")
	}
}
