package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formengine/pkg/model"
	"github.com/goliatone/go-formengine/pkg/validation"
)

// ErrInvalidFeedback reports an error document that is not a map of messages.
var ErrInvalidFeedback = errors.New("render: invalid error document")

var pointerUnescape = strings.NewReplacer("~1", "/", "~0", "~")

// Feedback is a set of errors reported outside the current session, resolved
// against a form. Fields holds one message per declared field; Form keeps
// messages whose key names no field.
type Feedback struct {
	Fields validation.ErrorSet
	Form   []string
}

// Empty reports whether there is nothing to show.
func (f Feedback) Empty() bool {
	return f.Fields.Empty() && len(f.Form) == 0
}

// DecodeFeedback parses a JSON or YAML error document into a payload keyed as
// written. Both the object printed by a rejected validate run
// ({"errors": {"email": "..."}}) and a bare object are accepted; each message
// is a string or a list of strings.
func DecodeFeedback(data []byte) (map[string][]string, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeedback, err)
	}
	if inner, ok := doc["errors"].(map[string]any); ok && len(doc) == 1 {
		doc = inner
	}

	payload := make(map[string][]string, len(doc))
	for key, raw := range doc {
		switch v := raw.(type) {
		case string:
			payload[key] = []string{v}
		case []any:
			for _, item := range v {
				msg, ok := item.(string)
				if !ok {
					return nil, fmt.Errorf("%w: %q lists a %T", ErrInvalidFeedback, key, item)
				}
				payload[key] = append(payload[key], msg)
			}
		case nil:
		default:
			return nil, fmt.Errorf("%w: %q holds a %T", ErrInvalidFeedback, key, raw)
		}
	}
	return payload, nil
}

// ResolveFeedback maps payload keys onto form field names. A key resolves to
// the first segment naming a declared field, so ErrorSet keys, JSON pointers
// ("/body/email") and dotted paths ("data.phone[0]") all land on the field.
// Several messages for one field are joined with "; ". Blank and repeated
// messages are dropped.
func ResolveFeedback(form model.FormModel, payload map[string][]string) Feedback {
	var fb Feedback
	if len(payload) == 0 {
		return fb
	}

	declared := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		declared[field.Name] = struct{}{}
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	collected := make(map[string][]string)
	for _, key := range keys {
		name := fieldForKey(key, declared)
		for _, msg := range payload[key] {
			msg = strings.TrimSpace(msg)
			if msg == "" {
				continue
			}
			if name == "" {
				fb.Form = appendUnique(fb.Form, msg)
				continue
			}
			collected[name] = appendUnique(collected[name], msg)
		}
	}

	for name, msgs := range collected {
		if fb.Fields == nil {
			fb.Fields = make(validation.ErrorSet, len(collected))
		}
		fb.Fields[name] = strings.Join(msgs, "; ")
	}
	return fb
}

func fieldForKey(key string, declared map[string]struct{}) string {
	segments := strings.FieldsFunc(key, func(r rune) bool {
		switch r {
		case '/', '.', '[', ']', '#', '$':
			return true
		}
		return false
	})
	for _, segment := range segments {
		segment = pointerUnescape.Replace(strings.TrimSpace(segment))
		if _, ok := declared[segment]; ok {
			return segment
		}
	}
	return ""
}

func appendUnique(list []string, msg string) []string {
	for _, existing := range list {
		if existing == msg {
			return list
		}
	}
	return append(list, msg)
}
