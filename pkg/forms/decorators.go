package forms

import (
	"fmt"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/options"
)

// ResolveOptions fills the enum of fields that reference a named option
// source. Fields that already declare an enum keep it.
func ResolveOptions() model.Decorator {
	return model.DecoratorFunc(func(form *model.FormModel) error {
		for i := range form.Fields {
			field := &form.Fields[i]
			if field.Options == "" || len(field.Enum) > 0 {
				continue
			}
			values, ok := options.Lookup(field.Options)
			if !ok {
				return fmt.Errorf("field %q: unknown option source %q", field.Name, field.Options)
			}
			field.Enum = values
		}
		return nil
	})
}
