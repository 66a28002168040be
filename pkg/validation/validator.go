package validation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	playground "github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formengine/pkg/model"
)

// Validator evaluates a compiled ValidationSchema against form values. Every
// field is checked on each run; the first failing rule per field supplies its
// message.
type Validator struct {
	fields []model.Field
	rules  map[string]fieldRules
	email  *playground.Validate
}

// NewValidator compiles the rules declared on form.
func NewValidator(form model.FormModel) (*Validator, error) {
	v := &Validator{
		fields: append([]model.Field(nil), form.Fields...),
		rules:  make(map[string]fieldRules, len(form.Fields)),
		email:  playground.New(),
	}
	for _, field := range form.Fields {
		rules, err := compileRules(field)
		if err != nil {
			return nil, err
		}
		v.rules[field.Name] = rules
	}
	return v, nil
}

// Validate checks values against every field and returns the complete set of
// violations, or nil when everything passes. values is never modified.
func (v *Validator) Validate(values map[string]any) ErrorSet {
	var errs ErrorSet
	for _, field := range v.fields {
		msg := v.CheckField(field.Name, values[field.Name])
		if msg == "" {
			continue
		}
		if errs == nil {
			errs = make(ErrorSet)
		}
		errs[field.Name] = msg
	}
	return errs
}

// CheckField validates a single value and returns its violation message, or
// "" when it passes. Unknown fields always pass.
func (v *Validator) CheckField(name string, value any) string {
	rules, ok := v.rules[name]
	if !ok {
		return ""
	}
	field := v.fieldByName(name)

	if isBlank(value) {
		if rules.required {
			return rules.message(model.ValidationRuleRequired, MessageRequired)
		}
		return ""
	}

	switch field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return v.checkNumber(rules, value)
	case model.FieldTypeBoolean:
		return checkBoolean(rules, value)
	default:
		return v.checkString(rules, fmt.Sprint(value))
	}
}

func (v *Validator) fieldByName(name string) model.Field {
	for _, field := range v.fields {
		if field.Name == name {
			return field
		}
	}
	return model.Field{}
}

func (v *Validator) checkString(rules fieldRules, value string) string {
	if rules.email && v.email.Var(value, "email") != nil {
		return rules.message(model.ValidationRuleEmail, MessageEmail)
	}
	if len(rules.oneOf) > 0 && !contains(rules.oneOf, value) {
		return rules.message(model.ValidationRuleOneOf, messageOneOf(rules.oneOf))
	}
	length := utf8.RuneCountInString(value)
	if rules.minLen != nil && length < *rules.minLen {
		return rules.message(model.ValidationRuleMinLength, messageMinLength(*rules.minLen))
	}
	if rules.maxLen != nil && length > *rules.maxLen {
		return rules.message(model.ValidationRuleMaxLength, messageMaxLength(*rules.maxLen))
	}
	if rules.pattern != nil && !rules.pattern.MatchString(value) {
		return rules.message(model.ValidationRulePattern, MessagePattern)
	}
	return ""
}

func (v *Validator) checkNumber(rules fieldRules, value any) string {
	n, ok := toFloat(value)
	if !ok {
		return rules.message(model.ValidationRuleInteger, MessageNumber)
	}
	if rules.integer {
		if _, ok := strictInt(value); !ok {
			if outOfIntRange(n) {
				return rules.message(model.ValidationRuleInteger, MessageOutOfRange)
			}
			return rules.message(model.ValidationRuleInteger, MessageInteger)
		}
	}
	if rules.positive && n <= 0 {
		return rules.message(model.ValidationRulePositive, MessagePositive)
	}
	if len(rules.oneOf) > 0 && !contains(rules.oneOf, strconv.FormatFloat(n, 'f', -1, 64)) {
		return rules.message(model.ValidationRuleOneOf, messageOneOf(rules.oneOf))
	}
	if rules.min != nil && n < *rules.min {
		return rules.message(model.ValidationRuleMin, messageMin(*rules.min))
	}
	if rules.max != nil && n > *rules.max {
		return rules.message(model.ValidationRuleMax, messageMax(*rules.max))
	}
	return ""
}

// strictInt accepts integral numbers and strings that parse as base-10
// integers; "3.0" is rejected because it was not entered as an integer.
func strictInt(value any) (int64, bool) {
	if s, ok := value.(string); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}
	return toInt(value)
}

func checkBoolean(rules fieldRules, value any) string {
	b, ok := value.(bool)
	if !ok {
		return rules.message(model.ValidationRuleAccepted, MessageBoolean)
	}
	if rules.accepted && !b {
		return rules.message(model.ValidationRuleAccepted, MessageAccepted)
	}
	return ""
}

func contains(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
