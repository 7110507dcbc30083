package forms

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/progress"
)

// Store holds form definitions keyed by id.
type Store struct {
	forms map[string]entry
}

type entry struct {
	form   model.FormModel
	source string
}

type documentFile struct {
	Forms []model.FormModel `json:"forms" yaml:"forms"`
}

// LoadFS walks fsys and parses every JSON/YAML file as a list of form
// definitions. Each definition is normalised, decorated, and checked before
// it is stored. A nil fsys yields an empty store.
func LoadFS(fsys fs.FS, decorators ...model.Decorator) (*Store, error) {
	return LoadFSWithPredicates(fsys, nil, decorators...)
}

// LoadFSWithPredicates is LoadFS for definitions whose completion names refer
// to predicates registered beyond progress.DefaultPredicates.
func LoadFSWithPredicates(fsys fs.FS, predicates map[string]progress.Predicate, decorators ...model.Decorator) (*Store, error) {
	store := &Store{forms: make(map[string]entry)}
	if fsys == nil {
		return store, nil
	}
	if len(decorators) == 0 {
		decorators = []model.Decorator{ResolveOptions()}
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || !isDefinitionFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("forms: read %s: %w", path, err)
		}

		doc, err := parseDocument(data, path)
		if err != nil {
			return err
		}

		for idx, form := range doc.Forms {
			form = normaliseForm(form)
			if form.ID == "" {
				return fmt.Errorf("forms: file %s defines a form without an id at index %d", path, idx)
			}
			if prior, exists := store.forms[form.ID]; exists {
				return fmt.Errorf("forms: duplicate form %q (files %s and %s)", form.ID, prior.source, path)
			}
			for _, decorator := range decorators {
				if decorator == nil {
					continue
				}
				if err := decorator.Decorate(&form); err != nil {
					return fmt.Errorf("forms: decorate %q (file %s): %w", form.ID, path, err)
				}
			}
			if err := Check(form); err != nil {
				return fmt.Errorf("forms: file %s: %w", path, err)
			}
			store.forms[form.ID] = entry{form: form, source: path}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return store, nil
}

// Form returns the definition registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	e, ok := s.forms[strings.TrimSpace(id)]
	return e.form, ok
}

// IDs returns the registered form ids, sorted.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("forms: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("forms: parse %s: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(form model.FormModel) model.FormModel {
	form.ID = strings.TrimSpace(form.ID)
	fields := make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
		field.Default = normaliseDefault(field.Default)
		fields[i] = field
	}
	form.Fields = fields
	return form
}

// normaliseDefault converts decoded list defaults into []string so they
// compare and validate like user-entered lists.
func normaliseDefault(value any) any {
	list, ok := value.([]any)
	if !ok {
		return value
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		out = append(out, fmt.Sprint(item))
	}
	return out
}

func isDefinitionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
