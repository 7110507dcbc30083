package render

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
	"github.com/goliatone/go-intake/pkg/submit"
)

const (
	formTemplate   = "form.tpl"
	resultTemplate = "result.tpl"

	defaultSuccess = "Thank you! Your submission has been received."
	defaultBlocked = "Please fix the fields below before submitting."
)

// Renderer converts a session snapshot into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot session.Snapshot) ([]byte, error)
}

// Option configures a Text renderer.
type Option func(*Text)

// WithTemplates replaces the bundled templates. The fs must provide
// form.tpl and result.tpl.
func WithTemplates(files fs.FS) Option {
	return func(t *Text) {
		if files != nil {
			t.files = files
		}
	}
}

// WithBarWidth sets the progress bar width in characters.
func WithBarWidth(width int) Option {
	return func(t *Text) {
		if width > 0 {
			t.width = width
		}
	}
}

// Text renders plain-text views for terminals and logs.
type Text struct {
	files  fs.FS
	width  int
	engine *engine
}

var _ Renderer = (*Text)(nil)

// NewText builds a text renderer backed by the bundled templates unless
// WithTemplates overrides them.
func NewText(options ...Option) (*Text, error) {
	t := &Text{
		files: TemplatesFS(),
		width: defaultBarWidth,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(t)
	}
	eng, err := newEngine(t.files)
	if err != nil {
		return nil, err
	}
	t.engine = eng
	return t, nil
}

func (t *Text) Name() string { return "text" }

func (t *Text) ContentType() string { return "text/plain; charset=utf-8" }

// Render draws the form title, a progress bar, and every field grouped by
// section. Only touched fields show their error.
func (t *Text) Render(ctx context.Context, snapshot session.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return t.engine.execute(formTemplate, t.formContext(snapshot))
}

// RenderResult draws the status page shown after a submit attempt. A nil
// submitErr with a submitted result renders the success message; blocking
// errors or a handler failure render the oops page.
func (t *Text) RenderResult(ctx context.Context, form model.FormModel, result session.Result, submitErr error) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := pongo2.Context{
		"title":     title(form),
		"submitted": submitErr == nil && result.Submitted,
	}
	switch {
	case submitErr != nil:
		data["message"] = "Something went wrong: " + rootCause(submitErr).Error()
		data["errors"] = []map[string]any{}
	case result.Submitted:
		msg := strings.TrimSpace(form.SuccessMessage)
		if msg == "" {
			msg = defaultSuccess
		}
		data["message"] = msg
	default:
		data["message"] = defaultBlocked
		data["errors"] = errorItems(form, result.Errors)
	}
	return t.engine.execute(resultTemplate, data)
}

func (t *Text) formContext(snap session.Snapshot) pongo2.Context {
	visible := snap.Visible
	groups := groupFields(snap.Form)
	sections := make([]map[string]any, 0, len(groups))
	for _, group := range groups {
		fields := make([]map[string]any, 0, len(group.fields))
		for _, field := range group.fields {
			fields = append(fields, map[string]any{
				"name":        field.Name,
				"label":       field.DisplayLabel(),
				"required":    field.Required,
				"complete":    snap.Complete[field.Name],
				"value":       displayValue(field, snap.Values[field.Name]),
				"description": submit.StripMarkup(field.Description),
				"error":       visible[field.Name],
			})
		}
		sections = append(sections, map[string]any{
			"title":  group.title,
			"fields": fields,
		})
	}

	return pongo2.Context{
		"title":       title(snap.Form),
		"description": submit.StripMarkup(snap.Form.Description),
		"progress":    snap.Progress,
		"width":       t.width,
		"sections":    sections,
		"submitted":   snap.State == session.StateSubmitted,
	}
}

type fieldGroup struct {
	title  string
	fields []model.Field
}

// groupFields follows the declared sections and collects fields no section
// places into a trailing untitled group.
func groupFields(form model.FormModel) []fieldGroup {
	placed := make(map[string]struct{})
	groups := make([]fieldGroup, 0, len(form.Sections)+1)
	for _, section := range form.Sections {
		group := fieldGroup{title: section.Title}
		for _, name := range section.Fields {
			if field, ok := form.Field(name); ok {
				group.fields = append(group.fields, field)
				placed[name] = struct{}{}
			}
		}
		groups = append(groups, group)
	}

	var rest []model.Field
	for _, field := range form.Fields {
		if _, ok := placed[field.Name]; !ok {
			rest = append(rest, field)
		}
	}
	if len(rest) > 0 {
		groups = append(groups, fieldGroup{fields: rest})
	}
	return groups
}

func errorItems(form model.FormModel, errs model.Errors) []map[string]any {
	items := make([]map[string]any, 0, len(errs))
	for _, field := range form.Fields {
		msg, ok := errs[field.Name]
		if !ok {
			continue
		}
		items = append(items, map[string]any{
			"label":   field.DisplayLabel(),
			"message": msg,
		})
	}
	return items
}

func displayValue(field model.Field, value any) string {
	switch v := value.(type) {
	case nil:
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case bool:
		if v {
			return "yes"
		}
		return "no"
	case []string:
		if len(v) > 0 {
			return strings.Join(v, ", ")
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
	if field.Placeholder != "" {
		return "(" + field.Placeholder + ")"
	}
	return "-"
}

func title(form model.FormModel) string {
	if t := strings.TrimSpace(form.Title); t != "" {
		return t
	}
	return model.DefaultLabeler(form.ID)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
