package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-intake/pkg/emails"
	"github.com/goliatone/go-intake/pkg/model"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]+$`)

// Rules is the Schema compiled from a form definition's declared constraints.
type Rules struct {
	fields map[string]fieldRules
}

type fieldRules struct {
	field    model.Field
	required bool
	min      *float64
	max      *float64
	minLen   *int
	maxLen   *int
	pattern  *regexp.Regexp
	enum     map[string]struct{}
}

var _ Schema = (*Rules)(nil)

// Compile builds Rules for every field in form. Malformed rule parameters
// (unparsable numbers, invalid regular expressions) are reported as errors so
// broken definitions fail at load time rather than while a user types.
func Compile(form model.FormModel) (*Rules, error) {
	rules := &Rules{fields: make(map[string]fieldRules, len(form.Fields))}
	for _, field := range form.Fields {
		compiled, err := compileField(field)
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", field.Name, err)
		}
		rules.fields[field.Name] = compiled
	}
	return rules, nil
}

func compileField(field model.Field) (fieldRules, error) {
	rules := fieldRules{field: field, required: field.Required}
	for _, v := range field.Validations {
		switch v.Kind {
		case model.ValidationRuleMin, model.ValidationRuleMax:
			val, err := strconv.ParseFloat(strings.TrimSpace(v.Params["value"]), 64)
			if err != nil {
				return fieldRules{}, fmt.Errorf("%s: %w", v.Kind, err)
			}
			if v.Kind == model.ValidationRuleMin {
				rules.min = &val
			} else {
				rules.max = &val
			}
		case model.ValidationRuleMinLength, model.ValidationRuleMaxLength:
			val, err := strconv.Atoi(strings.TrimSpace(v.Params["value"]))
			if err != nil {
				return fieldRules{}, fmt.Errorf("%s: %w", v.Kind, err)
			}
			if v.Kind == model.ValidationRuleMinLength {
				rules.minLen = &val
			} else {
				rules.maxLen = &val
			}
		case model.ValidationRulePattern:
			expr := v.Params["pattern"]
			if expr == "" {
				return fieldRules{}, errors.New("pattern: expression is empty")
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return fieldRules{}, fmt.Errorf("pattern: %w", err)
			}
			rules.pattern = re
		default:
			return fieldRules{}, fmt.Errorf("unknown validation rule %q", v.Kind)
		}
	}
	if len(field.Enum) > 0 {
		rules.enum = make(map[string]struct{}, len(field.Enum))
		for _, option := range field.Enum {
			rules.enum[option] = struct{}{}
		}
	}
	return rules, nil
}

// Validate implements Schema. Fields the definition does not declare are
// always accepted.
func (r *Rules) Validate(field string, value any, _ model.Values) string {
	if r == nil {
		return ""
	}
	rules, ok := r.fields[field]
	if !ok {
		return ""
	}
	return rules.validate(value)
}

func (r fieldRules) validate(value any) string {
	if isBlank(value) {
		if r.required {
			return r.field.Message("required", MessageRequired)
		}
		return ""
	}

	switch r.field.Type {
	case model.FieldTypeInteger, model.FieldTypeNumber:
		return r.validateNumber(value)
	case model.FieldTypeBoolean:
		// A required boolean only needs to be defined; false is an answer.
		if _, ok := value.(bool); !ok {
			return r.field.Message("type", "Must be true or false")
		}
		return ""
	case model.FieldTypeArray:
		return r.validateList(value)
	default:
		return r.validateString(value)
	}
}

func (r fieldRules) validateString(value any) string {
	str, ok := value.(string)
	if !ok {
		str = fmt.Sprint(value)
	}
	trimmed := strings.TrimSpace(str)

	switch r.field.Format {
	case model.FormatEmail:
		if !emails.Valid(trimmed) {
			return r.field.Message("format", MessageInvalidEmail)
		}
	case model.FormatEmails:
		if !emails.HasAny(str) {
			return r.field.Message("format", MessageNoEmails)
		}
	case model.FormatPhone:
		if !validPhone(trimmed) {
			return r.field.Message("format", MessageInvalidPhone)
		}
	}

	length := utf8.RuneCountInString(trimmed)
	if r.minLen != nil && length < *r.minLen {
		return r.field.Message(model.ValidationRuleMinLength, fmt.Sprintf("Must be at least %d characters", *r.minLen))
	}
	if r.maxLen != nil && length > *r.maxLen {
		return r.field.Message(model.ValidationRuleMaxLength, fmt.Sprintf("Must be at most %d characters", *r.maxLen))
	}
	if r.pattern != nil && !r.pattern.MatchString(trimmed) {
		return r.field.Message(model.ValidationRulePattern, MessagePattern)
	}
	if r.enum != nil {
		if _, ok := r.enum[trimmed]; !ok {
			return r.field.Message("enum", MessageNotInEnum)
		}
	}
	return ""
}

func (r fieldRules) validateNumber(value any) string {
	num, ok := ToFloat(value)
	if !ok {
		return r.field.Message("type", MessageNotNumber)
	}
	if r.field.Type == model.FieldTypeInteger && num != math.Trunc(num) {
		return r.field.Message("type", MessageNotInteger)
	}
	if r.min != nil && num < *r.min {
		return r.field.Message(model.ValidationRuleMin, fmt.Sprintf("Must be at least %s", formatNumber(*r.min)))
	}
	if r.max != nil && num > *r.max {
		return r.field.Message(model.ValidationRuleMax, fmt.Sprintf("Must be at most %s", formatNumber(*r.max)))
	}
	return ""
}

func (r fieldRules) validateList(value any) string {
	items, ok := StringList(value)
	if !ok {
		return r.field.Message("type", "Must be a list")
	}
	if r.minLen != nil && len(items) < *r.minLen {
		return r.field.Message(model.ValidationRuleMinLength, fmt.Sprintf("Select at least %d", *r.minLen))
	}
	if r.maxLen != nil && len(items) > *r.maxLen {
		return r.field.Message(model.ValidationRuleMaxLength, fmt.Sprintf("Select at most %d", *r.maxLen))
	}
	if r.enum != nil {
		for _, item := range items {
			if _, ok := r.enum[item]; !ok {
				return r.field.Message("enum", MessageNotInEnum)
			}
		}
	}
	return ""
}

func isBlank(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []any:
		return len(v) == 0
	default:
		return false
	}
}

func validPhone(value string) bool {
	if !phonePattern.MatchString(value) {
		return false
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 7 && digits <= 15
}

// ToFloat converts the numeric kinds a Values map may hold, including numeric
// strings, into a float64.
func ToFloat(value any) (float64, bool) {
	switch n := value.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// StringList normalises list values to []string. The boolean is false when
// value is not a list.
func StringList(value any) ([]string, bool) {
	switch v := value.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	default:
		return nil, false
	}
}
