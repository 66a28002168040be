package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ErrUnknownFormat is returned for output formats other than json, form and
// pretty.
var ErrUnknownFormat = errors.New("render: unknown output format")

// Format controls how submitted values are serialised.
type Format string

const (
	// FormatJSON emits application/json payloads.
	FormatJSON Format = "json"
	// FormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	FormatFormURLEncoded Format = "form"
	// FormatPrettyText emits one key=value line per field.
	FormatPrettyText Format = "pretty"
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatFormURLEncoded:
		return FormatFormURLEncoded, nil
	case FormatPrettyText:
		return FormatPrettyText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
	}
}

// ContentType reports the MIME type for format.
func (f Format) ContentType() string {
	switch f {
	case FormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case FormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Serialize encodes values in format. Keys are emitted in sorted order so the
// output is stable across runs.
func Serialize(values map[string]any, format Format) ([]byte, error) {
	switch format {
	case FormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case FormatPrettyText:
		return []byte(prettyPrint(values)), nil
	case FormatJSON, "":
		if values == nil {
			values = map[string]any{}
		}
		return json.Marshal(values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func flattenForm(values map[string]any) string {
	flattened := url.Values{}
	for _, key := range sortedKeys(values) {
		flattened.Set(key, fmt.Sprint(values[key]))
	}
	return flattened.Encode()
}

func prettyPrint(values map[string]any) string {
	var b strings.Builder
	for _, key := range sortedKeys(values) {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}

func sortedKeys(values map[string]any) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
