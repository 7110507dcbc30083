package validation

import (
	"github.com/goliatone/go-intake/pkg/model"
)

// Default messages, matching the copy used across the intake forms.
const (
	MessageRequired     = "Field is required"
	MessageInvalidEmail = "Invalid email"
	MessageNoEmails     = "Enter at least one valid email"
	MessageInvalidPhone = "Invalid phone number"
	MessageNotNumber    = "Must be a number"
	MessageNotInteger   = "Must be a whole number"
	MessageNotInEnum    = "Select one of the available options"
	MessagePattern      = "Invalid format"
)

// Schema validates a single field. It returns an empty string when the value
// is acceptable.
type Schema interface {
	Validate(field string, value any, values model.Values) string
}

// SchemaFunc adapts a function into a Schema.
type SchemaFunc func(field string, value any, values model.Values) string

// Validate calls the underlying function.
func (fn SchemaFunc) Validate(field string, value any, values model.Values) string {
	return fn(field, value, values)
}

// ValidateAll runs schema over every named field and keeps the non-empty
// messages. A nil schema accepts everything.
func ValidateAll(schema Schema, fields []string, values model.Values) model.Errors {
	errs := make(model.Errors)
	if schema == nil {
		return errs
	}
	for _, name := range fields {
		if msg := schema.Validate(name, values[name], values); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}

// Chain runs schemas in order and returns the first message produced.
func Chain(schemas ...Schema) Schema {
	return SchemaFunc(func(field string, value any, values model.Values) string {
		for _, schema := range schemas {
			if schema == nil {
				continue
			}
			if msg := schema.Validate(field, value, values); msg != "" {
				return msg
			}
		}
		return ""
	})
}
