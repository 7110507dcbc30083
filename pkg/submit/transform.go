// Package submit prepares session values for hand-off to a submit handler:
// named post-processors (email extraction, trimming, HTML stripping), hidden
// fields, and payload encoding.
package submit

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-intake/pkg/emails"
	"github.com/goliatone/go-intake/pkg/model"
)

// Transformer mutates a copy of the collected values before hand-off.
type Transformer func(model.Values) (model.Values, error)

// Transform names usable from form definitions.
const (
	TransformEmails   = "emails"
	TransformTrim     = "trim"
	TransformSanitize = "sanitize"
)

// ErrUnknownTransform is returned when a definition names an unsupported
// transform.
var ErrUnknownTransform = errors.New("submit: unknown transform")

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Chain applies transformers in order. Nil entries are skipped.
func Chain(transformers ...Transformer) Transformer {
	return func(values model.Values) (model.Values, error) {
		current := values
		for _, fn := range transformers {
			if fn == nil {
				continue
			}
			next, err := fn(current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil
	}
}

// ExtractEmails replaces the free-text value of field with the list of valid
// addresses it contains. Non-string values are left untouched.
func ExtractEmails(field string) Transformer {
	return func(values model.Values) (model.Values, error) {
		if raw, ok := values[field].(string); ok {
			values[field] = emails.Extract(raw)
		}
		return values, nil
	}
}

// TrimStrings trims surrounding whitespace from the named string fields, or
// from every string field when none are named.
func TrimStrings(fields ...string) Transformer {
	return func(values model.Values) (model.Values, error) {
		for _, key := range selectKeys(values, fields) {
			if str, ok := values[key].(string); ok {
				values[key] = strings.TrimSpace(str)
			}
		}
		return values, nil
	}
}

// SanitizeText strips markup from the named string fields, or from every
// string field when none are named.
func SanitizeText(fields ...string) Transformer {
	return func(values model.Values) (model.Values, error) {
		policy := strictPolicy()
		for _, key := range selectKeys(values, fields) {
			if str, ok := values[key].(string); ok {
				values[key] = strings.TrimSpace(policy.Sanitize(str))
			}
		}
		return values, nil
	}
}

// ForForm builds the transformer chain declared by the Transform lists of
// form's fields, in field order.
func ForForm(form model.FormModel) (Transformer, error) {
	var chain []Transformer
	for _, field := range form.Fields {
		for _, name := range field.Transform {
			fn, err := named(field.Name, name)
			if err != nil {
				return nil, err
			}
			chain = append(chain, fn)
		}
	}
	if len(chain) == 0 {
		return nil, nil
	}
	return Chain(chain...), nil
}

func named(field, name string) (Transformer, error) {
	switch strings.TrimSpace(name) {
	case TransformEmails:
		return ExtractEmails(field), nil
	case TransformTrim:
		return TrimStrings(field), nil
	case TransformSanitize:
		return SanitizeText(field), nil
	default:
		return nil, fmt.Errorf("%w %q on field %q", ErrUnknownTransform, name, field)
	}
}

func selectKeys(values model.Values, fields []string) []string {
	if len(fields) > 0 {
		return fields
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	return keys
}

// StripMarkup returns text with all HTML removed, using the same policy as
// SanitizeText, and entities decoded for plain-text display.
func StripMarkup(text string) string {
	return html.UnescapeString(strings.TrimSpace(strictPolicy().Sanitize(text)))
}

func strictPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
