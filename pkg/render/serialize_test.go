package render_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formengine/pkg/render"
)

func TestSerialize(t *testing.T) {
	values := map[string]any{
		"firstName":          "Ada",
		"phone":              int64(42),
		"termsAndConditions": true,
	}

	tests := []struct {
		name   string
		format render.Format
		want   string
	}{
		{
			name:   "json",
			format: render.FormatJSON,
			want:   `{"firstName":"Ada","phone":42,"termsAndConditions":true}`,
		},
		{
			name:   "form",
			format: render.FormatFormURLEncoded,
			want:   "firstName=Ada&phone=42&termsAndConditions=true",
		},
		{
			name:   "pretty",
			format: render.FormatPrettyText,
			want:   "firstName=Ada\nphone=42\ntermsAndConditions=true\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := render.Serialize(values, tt.format)
			if err != nil {
				t.Fatalf("serialize: %v", err)
			}
			if diff := cmp.Diff(tt.want, string(out)); diff != "" {
				t.Fatalf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSerialize_NilValuesAsJSONObject(t *testing.T) {
	out, err := render.Serialize(nil, render.FormatJSON)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	if string(out) != "{}" {
		t.Fatalf("expected {}, got %q", out)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw         string
		want        render.Format
		contentType string
	}{
		{raw: "", want: render.FormatJSON, contentType: "application/json"},
		{raw: "JSON", want: render.FormatJSON, contentType: "application/json"},
		{raw: "form", want: render.FormatFormURLEncoded, contentType: "application/x-www-form-urlencoded"},
		{raw: " pretty ", want: render.FormatPrettyText, contentType: "text/plain"},
	}
	for _, tt := range tests {
		got, err := render.ParseFormat(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parse %q: want %q, got %q", tt.raw, tt.want, got)
		}
		if got.ContentType() != tt.contentType {
			t.Fatalf("content type %q: want %q, got %q", tt.raw, tt.contentType, got.ContentType())
		}
	}

	if _, err := render.ParseFormat("xml"); !errors.Is(err, render.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}
	if _, err := render.Serialize(map[string]any{}, render.Format("xml")); !errors.Is(err, render.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat from Serialize, got %v", err)
	}
}
