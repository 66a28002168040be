package derive_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-formengine/pkg/derive"
	"github.com/goliatone/go-formengine/pkg/model"
)

func TestFromMapping(t *testing.T) {
	fn := derive.FromMapping(map[string]string{
		"yes": "employed",
		"no":  "unemployed",
	})

	cases := []struct {
		name   string
		source any
		want   any
		set    bool
	}{
		{name: "yes", source: "yes", want: "employed", set: true},
		{name: "no", source: "no", want: "unemployed", set: true},
		{name: "padded yes", source: " yes ", set: false},
		{name: "padded no", source: "no ", set: false},
		{name: "different case", source: "Yes", set: false},
		{name: "empty", source: "", set: false},
		{name: "unset", source: nil, set: false},
		{name: "unknown", source: "maybe", set: false},
		{name: "non string", source: true, set: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := fn(tc.source)
			if ok != tc.set {
				t.Fatalf("set = %v, want %v", ok, tc.set)
			}
			if got != tc.want {
				t.Fatalf("value = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestForRejectsPlainFields(t *testing.T) {
	if _, err := derive.For(model.Field{Name: "email"}); !errors.Is(err, derive.ErrNotDerived) {
		t.Fatalf("expected ErrNotDerived, got %v", err)
	}

	field := model.Field{Name: "status", Derived: &model.Derivation{Source: "flag"}}
	if _, err := derive.For(field); !errors.Is(err, derive.ErrEmptyMapping) {
		t.Fatalf("expected ErrEmptyMapping, got %v", err)
	}
}
