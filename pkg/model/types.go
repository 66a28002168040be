package model

import "strings"

// FieldType is the simplified enum for form-friendly field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleEmail     = "email"
	ValidationRulePositive  = "positive"
	ValidationRuleInteger   = "integer"
	ValidationRuleOneOf     = "oneOf"
	ValidationRuleAccepted  = "accepted"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules keep the expression in Params["pattern"]. Message, when
// set, replaces the default human-readable violation text.
type ValidationRule struct {
	Kind    string            `json:"kind" yaml:"kind"`
	Params  map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
	Message string            `json:"message,omitempty" yaml:"message,omitempty"`
}

// Derivation marks a field as a pure projection over another field. Mapping
// translates source values into target values; anything not listed leaves the
// target unset.
type Derivation struct {
	Source  string            `json:"source" yaml:"source"`
	Mapping map[string]string `json:"mapping" yaml:"mapping"`
}

// Field describes one input of a form: its name, kind and rules.
type Field struct {
	Name        string            `json:"name" yaml:"name"`
	Type        FieldType         `json:"type" yaml:"type"`
	Required    bool              `json:"required" yaml:"required"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any               `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []any             `json:"enum,omitempty" yaml:"enum,omitempty"`
	Validations []ValidationRule  `json:"validations,omitempty" yaml:"validations,omitempty"`
	Derived     *Derivation       `json:"derived,omitempty" yaml:"derived,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	UIHints     map[string]string `json:"uiHints,omitempty" yaml:"uiHints,omitempty"`
}

// IsDerived reports whether the field is computed from another field.
func (f Field) IsDerived() bool {
	return f.Derived != nil && strings.TrimSpace(f.Derived.Source) != ""
}

// HasRule reports whether the field declares a rule of the given kind.
func (f Field) HasRule(kind string) bool {
	for _, rule := range f.Validations {
		if rule.Kind == kind {
			return true
		}
	}
	return false
}

// FormModel is the declarative field-descriptor list consumed by the engine
// and by any renderer sitting on top of it.
type FormModel struct {
	ID          string            `json:"id" yaml:"id"`
	Title       string            `json:"title,omitempty" yaml:"title,omitempty"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	Fields      []Field           `json:"fields" yaml:"fields"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Field returns the descriptor registered under name.
func (f FormModel) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames lists field names in declaration order.
func (f FormModel) FieldNames() []string {
	out := make([]string, 0, len(f.Fields))
	for _, field := range f.Fields {
		out = append(out, field.Name)
	}
	return out
}
