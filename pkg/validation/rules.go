package validation

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/goliatone/go-formengine/pkg/model"
)

type fieldRules struct {
	required bool
	email    bool
	positive bool
	integer  bool
	accepted bool
	oneOf    []string
	min      *float64
	max      *float64
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
	messages map[string]string
}

func compileRules(field model.Field) (fieldRules, error) {
	rules := fieldRules{
		required: field.Required,
		integer:  field.Type == model.FieldTypeInteger,
		messages: make(map[string]string),
	}

	for _, rule := range field.Validations {
		if rule.Message != "" {
			rules.messages[rule.Kind] = rule.Message
		}
		switch rule.Kind {
		case model.ValidationRuleRequired:
			rules.required = true
		case model.ValidationRuleEmail:
			rules.email = true
		case model.ValidationRulePositive:
			rules.positive = true
		case model.ValidationRuleInteger:
			rules.integer = true
		case model.ValidationRuleAccepted:
			rules.accepted = true
		case model.ValidationRuleOneOf:
			if len(field.Enum) == 0 {
				return fieldRules{}, fmt.Errorf("%w: %s: oneOf requires enum values", ErrInvalidRule, field.Name)
			}
			rules.oneOf = stringifyEnum(field.Enum)
		case model.ValidationRuleMin, model.ValidationRuleMax:
			val, err := strconv.ParseFloat(rule.Params["value"], 64)
			if err != nil {
				return fieldRules{}, fmt.Errorf("%w: %s: %s value %q", ErrInvalidRule, field.Name, rule.Kind, rule.Params["value"])
			}
			if rule.Kind == model.ValidationRuleMin {
				rules.min = &val
			} else {
				rules.max = &val
			}
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
			val, err := strconv.Atoi(rule.Params["value"])
			if err != nil || val < 0 {
				return fieldRules{}, fmt.Errorf("%w: %s: %s value %q", ErrInvalidRule, field.Name, rule.Kind, rule.Params["value"])
			}
			if rule.Kind == model.ValidationRuleMinLength {
				rules.minLen = &val
			} else {
				rules.maxLen = &val
			}
		case model.ValidationRulePattern:
			re, err := regexp.Compile(rule.Params["pattern"])
			if err != nil {
				return fieldRules{}, fmt.Errorf("%w: %s: pattern: %v", ErrInvalidRule, field.Name, err)
			}
			rules.pattern = re
		default:
			return fieldRules{}, fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidRule, field.Name, rule.Kind)
		}
	}

	// An enum without an explicit oneOf rule still restricts the value set.
	if rules.oneOf == nil && len(field.Enum) > 0 && field.Type != model.FieldTypeBoolean {
		rules.oneOf = stringifyEnum(field.Enum)
	}
	return rules, nil
}

func (r fieldRules) message(kind, fallback string) string {
	if msg, ok := r.messages[kind]; ok {
		return msg
	}
	return fallback
}

func stringifyEnum(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}
