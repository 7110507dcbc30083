package model

import "strings"

// FieldType is the simplified enum for intake field kinds.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeInteger FieldType = "integer"
	FieldTypeNumber  FieldType = "number"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeArray   FieldType = "array"
)

// Known reports whether t is one of the supported field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeNumber, FieldTypeBoolean, FieldTypeArray:
		return true
	default:
		return false
	}
}

const (
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

const (
	// FormatEmail marks a single email address field.
	FormatEmail = "email"
	// FormatEmails marks a free-text field holding a delimited list of
	// addresses.
	FormatEmails = "emails"
	// FormatPhone marks an optional phone number, checked only when non-empty.
	FormatPhone = "phone"
	// FormatTextArea is a display hint for multi-line input.
	FormatTextArea = "textarea"
)

// ValidationRule represents a single validation constraint applied to a field.
// Numeric bounds and length limits encode their threshold in Params["value"]
// while pattern rules preserve the original expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Field models an individual input inside an intake form.
type Field struct {
	Name        string           `json:"name" yaml:"name"`
	Type        FieldType        `json:"type" yaml:"type"`
	Format      string           `json:"format,omitempty" yaml:"format,omitempty"`
	Required    bool             `json:"required" yaml:"required"`
	Label       string           `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string           `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Default     any              `json:"default,omitempty" yaml:"default,omitempty"`
	Enum        []string         `json:"enum,omitempty" yaml:"enum,omitempty"`
	Options     string           `json:"options,omitempty" yaml:"options,omitempty"`
	Validations []ValidationRule `json:"validations,omitempty" yaml:"validations,omitempty"`
	// Completion names an extra predicate that must hold before the field
	// counts toward progress (for example "hasEmail").
	Completion string `json:"completion,omitempty" yaml:"completion,omitempty"`
	// Transform names the submit post-processors applied to this field.
	Transform []string `json:"transform,omitempty" yaml:"transform,omitempty"`
	// Messages overrides default error messages keyed by rule kind, plus
	// "required", "format" and "enum".
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
	// Widget pins the input control used to collect the value. Empty means
	// the widget registry picks one from the type, format and enum.
	Widget string `json:"widget,omitempty" yaml:"widget,omitempty"`
}

// DisplayLabel returns the configured label or one derived from the name.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return DefaultLabeler(f.Name)
}

// Message returns the override for kind, or fallback when none is set.
func (f Field) Message(kind, fallback string) string {
	if msg := strings.TrimSpace(f.Messages[kind]); msg != "" {
		return msg
	}
	return fallback
}

// Section groups fields for display. Sections never affect progress.
type Section struct {
	ID     string   `json:"id" yaml:"id"`
	Title  string   `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []string `json:"fields" yaml:"fields"`
}

// FormModel is the top-level form definition.
type FormModel struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title,omitempty" yaml:"title,omitempty"`
	Description    string    `json:"description,omitempty" yaml:"description,omitempty"`
	SubmitLabel    string    `json:"submitLabel,omitempty" yaml:"submitLabel,omitempty"`
	SuccessMessage string    `json:"successMessage,omitempty" yaml:"successMessage,omitempty"`
	Sections       []Section `json:"sections,omitempty" yaml:"sections,omitempty"`
	Fields         []Field   `json:"fields" yaml:"fields"`
}

// Field looks up a declared field by name.
func (m FormModel) Field(name string) (Field, bool) {
	for _, field := range m.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared field names in order.
func (m FormModel) FieldNames() []string {
	names := make([]string, 0, len(m.Fields))
	for _, field := range m.Fields {
		names = append(names, field.Name)
	}
	return names
}

// OrderedFields returns fields in display order: section by section, then
// any field no section places, in declaration order.
func (m FormModel) OrderedFields() []Field {
	if len(m.Sections) == 0 {
		return append([]Field(nil), m.Fields...)
	}
	out := make([]Field, 0, len(m.Fields))
	placed := make(map[string]struct{}, len(m.Fields))
	for _, section := range m.Sections {
		for _, name := range section.Fields {
			if _, seen := placed[name]; seen {
				continue
			}
			if field, ok := m.Field(name); ok {
				out = append(out, field)
				placed[name] = struct{}{}
			}
		}
	}
	for _, field := range m.Fields {
		if _, ok := placed[field.Name]; !ok {
			out = append(out, field)
		}
	}
	return out
}

// Values maps field names to their current value. Supported value kinds are
// string, the numeric kinds, bool, and string lists ([]string or []any).
type Values map[string]any

// Clone returns a shallow copy with list values copied.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for key, value := range v {
		switch typed := value.(type) {
		case []string:
			out[key] = append([]string(nil), typed...)
		case []any:
			out[key] = append([]any(nil), typed...)
		default:
			out[key] = typed
		}
	}
	return out
}

// Errors maps field names to a human-readable message. Absent keys mean the
// field is valid.
type Errors map[string]string

// Clone returns a copy of the error map.
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for key, msg := range e {
		out[key] = msg
	}
	return out
}

// ZeroValue returns the empty value used to seed a field of type t.
func ZeroValue(t FieldType) any {
	switch t {
	case FieldTypeBoolean:
		return false
	case FieldTypeInteger, FieldTypeNumber:
		return nil
	case FieldTypeArray:
		return []string{}
	default:
		return ""
	}
}

// InitialValues returns one entry per declared field, using the field default
// when present and the type's zero value otherwise.
func (m FormModel) InitialValues() Values {
	values := make(Values, len(m.Fields))
	for _, field := range m.Fields {
		if field.Default != nil {
			values[field.Name] = field.Default
			continue
		}
		values[field.Name] = ZeroValue(field.Type)
	}
	return values
}
