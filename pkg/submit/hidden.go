package submit

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
)

// HiddenField is a value attached to a submission that the user never edits,
// such as the form id or an auth token. Use the helpers (FormID, AuthToken)
// to add common fields without repeating boilerplate.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// FormID constructs the hidden field identifying the submitted form.
func FormID(id string) HiddenField {
	return Hidden("_form", id)
}

// AuthToken constructs a hidden field carrying an authentication token. The
// receiving handler decides how to forward it (for example as a bearer
// header).
func AuthToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// WithHidden returns a transformer that adds fields to the values. Empty names
// and empty values are ignored; later fields win on name collisions, and
// hidden fields never overwrite a value the form already holds.
func WithHidden(fields ...HiddenField) Transformer {
	return func(values model.Values) (model.Values, error) {
		existing := make(map[string]struct{}, len(values))
		for key := range values {
			existing[key] = struct{}{}
		}
		for _, field := range fields {
			name := strings.TrimSpace(field.Name)
			if name == "" || field.Value == "" {
				continue
			}
			if _, ok := existing[name]; ok {
				continue
			}
			values[name] = field.Value
		}
		return values, nil
	}
}
