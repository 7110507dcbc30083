package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/options"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/widgets"
)

const (
	defaultPageSize = 10
	skipOption      = "(skip)"
)

// Option configures a Runner.
type Option func(*Runner)

// WithPageSize sets how many options select prompts show at once.
func WithPageSize(size int) Option {
	return func(r *Runner) {
		if size > 0 {
			r.pageSize = size
		}
	}
}

// WithWidgets replaces the registry that picks a prompt for each field.
func WithWidgets(registry *widgets.Registry) Option {
	return func(r *Runner) {
		if registry != nil {
			r.widgets = registry
		}
	}
}

// WithConfirmSubmit asks for confirmation before submitting.
func WithConfirmSubmit(confirm bool) Option {
	return func(r *Runner) {
		r.confirm = confirm
	}
}

// Runner drives a session through a PromptDriver.
type Runner struct {
	driver   PromptDriver
	widgets  *widgets.Registry
	pageSize int
	confirm  bool
}

// Outcome is what a completed run produced.
type Outcome struct {
	Session *session.Session
	Result  session.Result
}

// New builds a Runner around driver.
func New(driver PromptDriver, opts ...Option) (*Runner, error) {
	if driver == nil {
		return nil, ErrNoDriver
	}
	r := &Runner{driver: driver, widgets: widgets.NewRegistry(), pageSize: defaultPageSize}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Run creates a session for form, asks for every field in display order, and
// submits. Progress changes are announced through the driver as they happen.
// Options are passed to session.New after the runner's own progress listener.
func (r *Runner) Run(ctx context.Context, form model.FormModel, opts ...session.Option) (Outcome, error) {
	listener := func(percent int) {
		_ = r.driver.Info(ctx, fmt.Sprintf("Progress: %d%%", percent))
	}
	s, err := session.New(form, append([]session.Option{session.WithProgressListener(listener)}, opts...)...)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Session: s}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.driver.Info(ctx, title); err != nil {
			return out, err
		}
	}

	pending := form.OrderedFields()
	for len(pending) > 0 {
		for _, field := range pending {
			if err := r.askUntilValid(ctx, s, field); err != nil {
				return out, err
			}
		}

		if r.confirm {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel(form), Default: true})
			if err != nil {
				return out, err
			}
			if !ok {
				return out, ErrAborted
			}
		}

		res, err := s.Submit(ctx)
		out.Result = res
		if err != nil {
			return out, err
		}
		if res.Submitted {
			return out, nil
		}
		pending = blockedFields(form, res.Errors)
	}
	return out, nil
}

func (r *Runner) askUntilValid(ctx context.Context, s *session.Session, field model.Field) error {
	for {
		current, _ := s.Value(field.Name)
		value, err := r.ask(ctx, field, current)
		if err != nil {
			return err
		}
		if err := s.Set(field.Name, value); err != nil {
			return err
		}
		if err := s.Touch(field.Name); err != nil {
			return err
		}
		msg := s.Error(field.Name)
		if msg == "" {
			return nil
		}
		if err := r.driver.Info(ctx, fmt.Sprintf("! %s: %s", promptLabel(field), msg)); err != nil {
			return err
		}
	}
}

func (r *Runner) ask(ctx context.Context, field model.Field, current any) (any, error) {
	label := promptLabel(field)
	help := field.Description
	widget, _ := r.widgets.Resolve(field)

	switch widget {
	case widgets.WidgetToggle:
		def, _ := current.(bool)
		return r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: help})

	case widgets.WidgetNumber:
		raw, err := r.driver.Input(ctx, InputConfig{Message: label, Default: stringify(current), Help: help})
		if err != nil {
			return nil, err
		}
		return parseNumber(raw, field.Type == model.FieldTypeInteger), nil

	case widgets.WidgetChips:
		idx, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  optionLabels(field.Enum),
			Defaults: indicesOf(field.Enum, listOf(current)),
			Help:     help,
			PageSize: r.pageSize,
		})
		if err != nil {
			return nil, err
		}
		return valuesAt(field.Enum, idx), nil

	case widgets.WidgetList:
		raw, err := r.driver.Input(ctx, InputConfig{
			Message: label,
			Default: strings.Join(listOf(current), ", "),
			Help:    joinHelp(help, "Separate entries with commas."),
		})
		if err != nil {
			return nil, err
		}
		return splitList(raw), nil

	case widgets.WidgetSelect:
		return r.askEnum(ctx, field, label, help, current)

	case widgets.WidgetTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: stringify(current), Help: help})

	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: stringify(current), Help: help})
	}
}

// askEnum offers a skip entry first for optional fields so they can be left
// blank.
func (r *Runner) askEnum(ctx context.Context, field model.Field, label, help string, current any) (any, error) {
	values := field.Enum
	if !field.Required {
		values = append([]string{""}, field.Enum...)
	}
	labels := optionLabels(values)
	defaultIdx := -1
	if s, ok := current.(string); ok {
		defaultIdx = indexOf(values, s)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      labels,
		DefaultIndex: defaultIdx,
		Help:         help,
		PageSize:     r.pageSize,
	})
	if err != nil {
		return nil, err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

func blockedFields(form model.FormModel, errs model.Errors) []model.Field {
	var out []model.Field
	for _, field := range form.OrderedFields() {
		if _, ok := errs[field.Name]; ok {
			out = append(out, field)
		}
	}
	return out
}

// promptLabel marks required fields with a trailing asterisk.
func promptLabel(field model.Field) string {
	if field.Required {
		return field.DisplayLabel() + " *"
	}
	return field.DisplayLabel()
}

func submitLabel(form model.FormModel) string {
	if label := strings.TrimSpace(form.SubmitLabel); label != "" {
		return label + "?"
	}
	return "Submit?"
}

// parseNumber returns an int or float64 when raw parses, nil when blank, and
// the trimmed text otherwise so validation can report it.
func parseNumber(raw string, integer bool) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	if integer {
		if n, err := strconv.Atoi(trimmed); err == nil {
			return n
		}
		return trimmed
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	return trimmed
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func optionLabels(values []string) []string {
	out := make([]string, len(values))
	for i, value := range values {
		if value == "" {
			out[i] = skipOption
			continue
		}
		out[i] = options.Label(value)
	}
	return out
}

func listOf(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return nil
	}
}

func stringify(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func joinHelp(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if p := strings.TrimSpace(part); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func indexOf(values []string, value string) int {
	for i, v := range values {
		if v == value {
			return i
		}
	}
	return -1
}

func indicesOf(values, selected []string) []int {
	var out []int
	for _, s := range selected {
		if idx := indexOf(values, s); idx >= 0 {
			out = append(out, idx)
		}
	}
	return out
}

func valuesAt(values []string, indices []int) []string {
	out := []string{}
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			out = append(out, values[idx])
		}
	}
	return out
}
