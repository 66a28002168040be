package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formengine/pkg/model"
)

const (
	orderExtensionKey   = "x-formgen-order"
	derivedExtensionKey = "x-formgen-derived"
	hintsExtensionKey   = "x-formgen-ui-hints"
)

// ErrComponentNotFound is returned when the document has no schema under the
// requested component name.
var ErrComponentNotFound = errors.New("openapi: component schema not found")

// FormFromComponent loads raw (JSON or YAML) and converts the named component
// schema into a form model whose id is the component name.
func FormFromComponent(ctx context.Context, raw []byte, component string) (model.FormModel, error) {
	if err := ctx.Err(); err != nil {
		return model.FormModel{}, err
	}
	if len(raw) == 0 {
		return model.FormModel{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return model.FormModel{}, fmt.Errorf("openapi: load document: %w", err)
	}
	if doc.Components == nil || doc.Components.Schemas == nil {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	ref := doc.Components.Schemas[component]
	if ref == nil || ref.Value == nil {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrComponentNotFound, component)
	}
	return convertComponent(component, ref.Value)
}

func convertComponent(id string, schema *openapi3.Schema) (model.FormModel, error) {
	if t := firstSchemaType(schema.Type); t != "" && t != "object" {
		return model.FormModel{}, fmt.Errorf("openapi: component %q must be an object, got %q", id, t)
	}
	if len(schema.Properties) == 0 {
		return model.FormModel{}, fmt.Errorf("openapi: component %q declares no properties", id)
	}

	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	form := model.FormModel{
		ID:          id,
		Title:       schema.Title,
		Description: schema.Description,
	}
	for _, name := range propertyOrder(schema) {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			return model.FormModel{}, fmt.Errorf("openapi: component %q property %q is unresolved", id, name)
		}
		_, isRequired := required[name]
		field, err := convertField(name, ref.Value, isRequired)
		if err != nil {
			return model.FormModel{}, fmt.Errorf("openapi: component %q: %w", id, err)
		}
		form.Fields = append(form.Fields, field)
	}
	return form, nil
}

// propertyOrder honours x-formgen-order and appends unlisted properties
// alphabetically.
func propertyOrder(schema *openapi3.Schema) []string {
	seen := make(map[string]struct{}, len(schema.Properties))
	var order []string
	if listed, ok := schema.Extensions[orderExtensionKey].([]any); ok {
		for _, entry := range listed {
			name, ok := entry.(string)
			if !ok {
				continue
			}
			if _, exists := schema.Properties[name]; !exists {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			order = append(order, name)
		}
	}

	var rest []string
	for name := range schema.Properties {
		if _, ok := seen[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}

func convertField(name string, src *openapi3.Schema, required bool) (model.Field, error) {
	field := model.Field{
		Name:        name,
		Required:    required,
		Label:       src.Title,
		Description: src.Description,
		Default:     src.Default,
	}
	if field.Label == "" {
		field.Label = model.DefaultLabeler(name)
	}

	switch t := firstSchemaType(src.Type); t {
	case "", "string":
		field.Type = model.FieldTypeString
	case "integer":
		field.Type = model.FieldTypeInteger
		field.Validations = append(field.Validations, model.ValidationRule{Kind: model.ValidationRuleInteger})
	case "number":
		field.Type = model.FieldTypeNumber
	case "boolean":
		field.Type = model.FieldTypeBoolean
	default:
		return model.Field{}, fmt.Errorf("property %q has unsupported type %q", name, t)
	}

	if field.Type == model.FieldTypeBoolean {
		if len(src.Enum) == 1 && src.Enum[0] == true {
			field.Validations = append(field.Validations, model.ValidationRule{Kind: model.ValidationRuleAccepted})
		}
	} else if len(src.Enum) > 0 {
		field.Enum = append([]any(nil), src.Enum...)
		field.Validations = append(field.Validations, model.ValidationRule{Kind: model.ValidationRuleOneOf})
	}

	if strings.EqualFold(src.Format, "email") {
		field.Validations = append(field.Validations, model.ValidationRule{Kind: model.ValidationRuleEmail})
	}
	field.Validations = append(field.Validations, boundRules(src)...)

	derived, err := parseDerived(src.Extensions[derivedExtensionKey])
	if err != nil {
		return model.Field{}, fmt.Errorf("property %q: %w", name, err)
	}
	field.Derived = derived
	field.UIHints = stringMap(src.Extensions[hintsExtensionKey])
	return field, nil
}

func boundRules(src *openapi3.Schema) []model.ValidationRule {
	var rules []model.ValidationRule
	if src.Min != nil {
		if *src.Min == 0 && src.ExclusiveMin {
			rules = append(rules, model.ValidationRule{Kind: model.ValidationRulePositive})
		} else {
			rules = append(rules, valueRule(model.ValidationRuleMin, formatFloat(*src.Min)))
		}
	}
	if src.Max != nil {
		rules = append(rules, valueRule(model.ValidationRuleMax, formatFloat(*src.Max)))
	}
	if src.MinLength != 0 {
		rules = append(rules, valueRule(model.ValidationRuleMinLength, strconv.FormatUint(src.MinLength, 10)))
	}
	if src.MaxLength != nil {
		rules = append(rules, valueRule(model.ValidationRuleMaxLength, strconv.FormatUint(*src.MaxLength, 10)))
	}
	if src.Pattern != "" {
		rules = append(rules, model.ValidationRule{
			Kind:   model.ValidationRulePattern,
			Params: map[string]string{"pattern": src.Pattern},
		})
	}
	return rules
}

func valueRule(kind, value string) model.ValidationRule {
	return model.ValidationRule{Kind: kind, Params: map[string]string{"value": value}}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseDerived(raw any) (*model.Derivation, error) {
	if raw == nil {
		return nil, nil
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an object", derivedExtensionKey)
	}
	source, _ := payload["source"].(string)
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("%s requires a source", derivedExtensionKey)
	}
	mapping := stringMap(payload["mapping"])
	if len(mapping) == 0 {
		return nil, fmt.Errorf("%s requires a mapping", derivedExtensionKey)
	}
	return &model.Derivation{Source: strings.TrimSpace(source), Mapping: mapping}, nil
}

func stringMap(raw any) map[string]string {
	payload, ok := raw.(map[string]any)
	if !ok || len(payload) == 0 {
		return nil
	}
	out := make(map[string]string, len(payload))
	for k, v := range payload {
		out[k] = fmt.Sprint(v)
	}
	return out
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}
