// Package progress turns a snapshot of form values and validation errors into
// a completion percentage, and reports changes of that percentage to a
// listener without repeating itself.
//
// A field is complete when it has no validation error, holds a truthy value,
// and satisfies its extra predicate when one is configured. Empty required
// fields therefore never count, even before the user has typed anything.
package progress

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-intake/pkg/emails"
	"github.com/goliatone/go-intake/pkg/model"
)

// Predicate is an extra completion check evaluated against a field's value.
// values holds the full snapshot for predicates that look at siblings.
type Predicate func(value any, values model.Values) bool

// Built-in predicate names usable from form definitions.
const (
	PredicateHasEmail = "hasEmail"
	PredicateNonBlank = "nonBlank"
)

// DefaultPredicates returns the predicates form definitions may reference by
// name. The returned map is a fresh copy callers may extend.
func DefaultPredicates() map[string]Predicate {
	return map[string]Predicate{
		PredicateHasEmail: HasEmail,
		PredicateNonBlank: func(value any, _ model.Values) bool {
			str, ok := value.(string)
			return ok && strings.TrimSpace(str) != ""
		},
	}
}

// HasEmail holds when the value is free text containing at least one valid
// email address, or a list containing one.
func HasEmail(value any, _ model.Values) bool {
	switch v := value.(type) {
	case string:
		return emails.HasAny(v)
	case []string:
		for _, item := range v {
			if emails.Valid(item) {
				return true
			}
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && emails.Valid(s) {
				return true
			}
		}
	}
	return false
}

// Evaluator decides per-field completion over a fixed list of declared fields.
type Evaluator struct {
	// Fields is the declared field list; its length is the progress
	// denominator.
	Fields []string
	// Predicates holds extra completion checks keyed by field name.
	Predicates map[string]Predicate
}

// FromForm builds an Evaluator for form, resolving each field's Completion
// name against registry. Unknown names are an error.
func FromForm(form model.FormModel, registry map[string]Predicate) (Evaluator, error) {
	eval := Evaluator{
		Fields:     form.FieldNames(),
		Predicates: make(map[string]Predicate),
	}
	for _, field := range form.Fields {
		name := strings.TrimSpace(field.Completion)
		if name == "" {
			continue
		}
		pred, ok := registry[name]
		if !ok || pred == nil {
			return Evaluator{}, fmt.Errorf("progress: field %q references unknown predicate %q", field.Name, name)
		}
		eval.Predicates[field.Name] = pred
	}
	return eval, nil
}

// Complete reports whether field counts toward progress.
func (e Evaluator) Complete(values model.Values, errs model.Errors, field string) bool {
	if msg := errs[field]; msg != "" {
		return false
	}
	value := values[field]
	if !Truthy(value) {
		return false
	}
	if pred := e.Predicates[field]; pred != nil && !pred(value, values) {
		return false
	}
	return true
}

// Count returns the number of complete declared fields.
func (e Evaluator) Count(values model.Values, errs model.Errors) int {
	count := 0
	for _, field := range e.Fields {
		if e.Complete(values, errs, field) {
			count++
		}
	}
	return count
}

// Percent returns floor(100 * complete / total). A form without fields
// reports 0.
func (e Evaluator) Percent(values model.Values, errs model.Errors) int {
	total := len(e.Fields)
	if total == 0 {
		return 0
	}
	return 100 * e.Count(values, errs) / total
}

// Truthy reports whether value is considered filled in: a non-blank string, a
// non-zero number, true, or a non-empty list.
func Truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(v) != ""
	case bool:
		return v
	case int:
		return v != 0
	case int8:
		return v != 0
	case int16:
		return v != 0
	case int32:
		return v != 0
	case int64:
		return v != 0
	case uint:
		return v != 0
	case uint8:
		return v != 0
	case uint16:
		return v != 0
	case uint32:
		return v != 0
	case uint64:
		return v != 0
	case float32:
		return v != 0
	case float64:
		return v != 0
	case []string:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}
