// Package widgets picks the input control used to collect each field.
package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-intake/pkg/model"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetInput    = "input"
	WidgetTextArea = "textarea"
	WidgetNumber   = "number"
	WidgetToggle   = "toggle"
	WidgetSelect   = "select"
	WidgetChips    = "chips"
	WidgetList     = "list"
)

// Matcher decides whether a widget should handle the supplied field.
type Matcher func(field model.Field) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects widgets for fields based on an explicit Field.Widget or
// registered matchers. Higher priority wins; ties fall back to registration
// order. An empty registry never resolves a widget.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewRegistry constructs a registry with the built-in matchers registered.
// Every field resolves to at least WidgetInput.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a widget matcher with the provided name and priority.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the widget name for a field. An explicit Field.Widget is
// honoured before matcher evaluation.
func (r *Registry) Resolve(field model.Field) (string, bool) {
	if explicit := strings.TrimSpace(field.Widget); explicit != "" {
		return explicit, true
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(field) {
			return entry.name, true
		}
	}
	return "", false
}

// Decorate implements model.Decorator, recording the resolved widget on
// every field that does not pin one.
func (r *Registry) Decorate(form *model.FormModel) error {
	if r == nil || form == nil {
		return nil
	}
	for i := range form.Fields {
		if form.Fields[i].Widget != "" {
			continue
		}
		if widget, ok := r.Resolve(form.Fields[i]); ok {
			form.Fields[i].Widget = widget
		}
	}
	return nil
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetToggle, 90, func(field model.Field) bool {
		return field.Type == model.FieldTypeBoolean
	})

	r.Register(WidgetChips, 80, func(field model.Field) bool {
		return field.Type == model.FieldTypeArray && len(field.Enum) > 0
	})

	r.Register(WidgetList, 75, func(field model.Field) bool {
		return field.Type == model.FieldTypeArray
	})

	r.Register(WidgetSelect, 70, func(field model.Field) bool {
		return len(field.Enum) > 0
	})

	r.Register(WidgetNumber, 60, func(field model.Field) bool {
		return field.Type == model.FieldTypeInteger || field.Type == model.FieldTypeNumber
	})

	r.Register(WidgetTextArea, 50, func(field model.Field) bool {
		return strings.EqualFold(strings.TrimSpace(field.Format), model.FormatTextArea)
	})

	r.Register(WidgetInput, 0, func(model.Field) bool { return true })
}
