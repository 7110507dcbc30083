package forms

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/options"
	"github.com/goliatone/go-intake/pkg/progress"
	"github.com/goliatone/go-intake/pkg/submit"
	"github.com/goliatone/go-intake/pkg/validation"
)

var errNoFields = errors.New("declares no fields")

// Check verifies that a definition can back a session: unique field names,
// known types, option sources that exist, sections that reference declared
// fields at most once, and rules, predicates and transforms that resolve.
// Completion names resolve against progress.DefaultPredicates.
func Check(form model.FormModel) error {
	return CheckWithPredicates(form, nil)
}

// CheckWithPredicates is Check with extra completion predicates, matching
// what the session receives through session.WithPredicates.
func CheckWithPredicates(form model.FormModel, predicates map[string]progress.Predicate) error {
	if len(form.Fields) == 0 {
		return fmt.Errorf("form %q %w", form.ID, errNoFields)
	}

	declared := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		if field.Name == "" {
			return fmt.Errorf("form %q: field without a name", form.ID)
		}
		if _, exists := declared[field.Name]; exists {
			return fmt.Errorf("form %q: duplicate field %q", form.ID, field.Name)
		}
		if !field.Type.Known() {
			return fmt.Errorf("form %q: field %q has unknown type %q", form.ID, field.Name, field.Type)
		}
		if field.Options != "" && !options.Known(field.Options) {
			return fmt.Errorf("form %q: field %q: unknown option source %q", form.ID, field.Name, field.Options)
		}
		declared[field.Name] = struct{}{}
	}

	placed := make(map[string]string)
	for _, section := range form.Sections {
		for _, name := range section.Fields {
			if _, ok := declared[name]; !ok {
				return fmt.Errorf("form %q: section %q references unknown field %q", form.ID, section.ID, name)
			}
			if prior, ok := placed[name]; ok {
				return fmt.Errorf("form %q: field %q appears in sections %q and %q", form.ID, name, prior, section.ID)
			}
			placed[name] = section.ID
		}
	}

	if _, err := validation.Compile(form); err != nil {
		return fmt.Errorf("form %q: %w", form.ID, err)
	}
	registry := progress.DefaultPredicates()
	for name, pred := range predicates {
		registry[name] = pred
	}
	if _, err := progress.FromForm(form, registry); err != nil {
		return fmt.Errorf("form %q: %w", form.ID, err)
	}
	if _, err := submit.ForForm(form); err != nil {
		return fmt.Errorf("form %q: %w", form.ID, err)
	}
	return nil
}
