// Package session owns the state of one form from first render to
// submission: field values, validation errors, and the set of touched fields.
//
// Every edit runs one synchronous pass: re-validate all declared fields,
// recompute completion, and notify the progress listener when the percentage
// changed. A Session is not safe for concurrent use; it belongs to the UI
// surface that created it.
package session

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/progress"
	"github.com/goliatone/go-intake/pkg/submit"
	"github.com/goliatone/go-intake/pkg/validation"
)

// Session tracks one user's pass through a form.
type Session struct {
	id          string
	form        model.FormModel
	fields      []string
	declared    map[string]struct{}
	schema      validation.Schema
	evaluator   progress.Evaluator
	notifier    *progress.Notifier
	transformer submit.Transformer
	handler     SubmitHandler
	logger      *zap.Logger
	diagnostics func(Event)

	initial model.Values
	values  model.Values
	errors  model.Errors
	touched map[string]struct{}
	state   State
}

// Result describes the outcome of a Submit call.
type Result struct {
	// Submitted is true when the values were handed off.
	Submitted bool
	// Errors holds the blocking validation errors when Submitted is false.
	Errors model.Errors
	// Values is the post-processed payload given to the handler.
	Values model.Values
}

// New creates a session for form. The schema defaults to the rules compiled
// from the definition, completion predicates resolve against
// progress.DefaultPredicates, and declared field transforms run before any
// transformer passed with WithTransformer.
func New(form model.FormModel, options ...Option) (*Session, error) {
	cfg := config{
		predicates: progress.DefaultPredicates(),
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	declared := make(map[string]struct{}, len(form.Fields))
	for _, field := range form.Fields {
		name := field.Name
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("session: form %q declares a field without a name", form.ID)
		}
		if strings.TrimSpace(name) != name {
			return nil, fmt.Errorf("session: form %q: field name %q has surrounding whitespace", form.ID, name)
		}
		if _, exists := declared[name]; exists {
			return nil, fmt.Errorf("%w %q in form %q", ErrDuplicateField, name, form.ID)
		}
		declared[name] = struct{}{}
	}

	schema := cfg.schema
	if schema == nil {
		rules, err := validation.Compile(form)
		if err != nil {
			return nil, fmt.Errorf("session: %w", err)
		}
		schema = rules
	}

	evaluator, err := progress.FromForm(form, cfg.predicates)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	declaredTransforms, err := submit.ForForm(form)
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	initial := form.InitialValues()
	for name, value := range cfg.initial {
		if _, ok := declared[name]; !ok {
			return nil, fmt.Errorf("%w %q in initial values", ErrUnknownField, name)
		}
		initial[name] = value
	}

	id := cfg.id
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:          id,
		form:        form,
		fields:      form.FieldNames(),
		declared:    declared,
		schema:      schema,
		evaluator:   evaluator,
		notifier:    progress.NewNotifier(cfg.listener),
		transformer: submit.Chain(declaredTransforms, cfg.transformer),
		handler:     cfg.handler,
		logger:      cfg.logger.With(zap.String("session", id), zap.String("form", form.ID)),
		diagnostics: cfg.diagnostics,
		initial:     initial,
		values:      initial.Clone(),
		touched:     make(map[string]struct{}),
	}
	s.recompute("")
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Form returns the form definition the session was created with.
func (s *Session) Form() model.FormModel { return s.form }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Progress returns the last reported completion percentage.
func (s *Session) Progress() int { return s.notifier.Last() }

// Values returns a copy of the current values.
func (s *Session) Values() model.Values { return s.values.Clone() }

// Value returns the current value of field.
func (s *Session) Value(field string) (any, bool) {
	value, ok := s.values[field]
	return value, ok
}

// Errors returns a copy of every current validation error, touched or not.
func (s *Session) Errors() model.Errors { return s.errors.Clone() }

// Error returns the current message for field, if any.
func (s *Session) Error(field string) string { return s.errors[field] }

// VisibleErrors returns errors for touched fields only. This is what a UI
// should display; untouched fields keep their errors hidden until blur or
// submit.
func (s *Session) VisibleErrors() model.Errors {
	out := make(model.Errors)
	for field, msg := range s.errors {
		if _, ok := s.touched[field]; ok {
			out[field] = msg
		}
	}
	return out
}

// Touched reports whether the user has interacted with field.
func (s *Session) Touched(field string) bool {
	_, ok := s.touched[field]
	return ok
}

// Complete reports whether field currently counts toward progress.
func (s *Session) Complete(field string) bool {
	return s.evaluator.Complete(s.values, s.errors, field)
}

// Set stores value for field and runs a validation/progress pass.
func (s *Session) Set(field string, value any) error {
	if err := s.editable(field); err != nil {
		return err
	}
	s.values[field] = value
	s.emit(Event{Kind: EventChange, Field: field})
	s.recompute(field)
	return nil
}

// SetAll applies several edits with a single validation/progress pass. No
// value is applied when any key is unknown.
func (s *Session) SetAll(values model.Values) error {
	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	for field := range values {
		if _, ok := s.declared[field]; !ok {
			return fmt.Errorf("%w %q", ErrUnknownField, field)
		}
	}
	for field, value := range values {
		s.values[field] = value
		s.emit(Event{Kind: EventChange, Field: field})
	}
	s.recompute("")
	return nil
}

// Touch marks field as interacted with, making its error visible.
func (s *Session) Touch(field string) error {
	if err := s.editable(field); err != nil {
		return err
	}
	s.touched[field] = struct{}{}
	s.emit(Event{Kind: EventTouch, Field: field})
	return nil
}

// Submit validates the whole form and, when nothing blocks, hands the
// post-processed values to the submit handler. Blocking validation errors
// are reported in the Result, not as an error; the session stays editing.
// A handler error is returned wrapped and also leaves the session editing.
func (s *Session) Submit(ctx context.Context) (Result, error) {
	if s.state == StateSubmitted {
		return Result{}, ErrSubmitted
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	for _, field := range s.fields {
		s.touched[field] = struct{}{}
	}
	s.recompute("")

	if len(s.errors) > 0 {
		s.emit(Event{Kind: EventSubmitBlocked, Progress: s.Progress(), Errors: len(s.errors)})
		return Result{Errors: s.errors.Clone()}, nil
	}

	payload, err := s.transformer(s.values.Clone())
	if err != nil {
		s.emit(Event{Kind: EventSubmitFailed, Err: err})
		return Result{}, fmt.Errorf("session: prepare submission: %w", err)
	}

	if s.handler != nil {
		if err := s.handler(ctx, payload); err != nil {
			s.emit(Event{Kind: EventSubmitFailed, Err: err})
			return Result{}, fmt.Errorf("session: submit: %w", err)
		}
	}

	s.state = StateSubmitted
	s.emit(Event{Kind: EventSubmitted, Progress: s.Progress()})
	return Result{Submitted: true, Values: payload}, nil
}

// Reset restores the initial values, clears touched state, and returns the
// session to editing.
func (s *Session) Reset() {
	s.values = s.initial.Clone()
	s.touched = make(map[string]struct{})
	s.state = StateEditing
	s.emit(Event{Kind: EventReset})
	s.recompute("")
}

// Snapshot captures everything a renderer needs.
type Snapshot struct {
	ID       string
	Form     model.FormModel
	State    State
	Progress int
	Values   model.Values
	Errors   model.Errors
	Visible  model.Errors
	Touched  []string
	Complete map[string]bool
}

// Snapshot returns a point-in-time copy of the session.
func (s *Session) Snapshot() Snapshot {
	touched := make([]string, 0, len(s.touched))
	for field := range s.touched {
		touched = append(touched, field)
	}
	sort.Strings(touched)

	complete := make(map[string]bool, len(s.fields))
	for _, field := range s.fields {
		complete[field] = s.Complete(field)
	}

	return Snapshot{
		ID:       s.id,
		Form:     s.form,
		State:    s.state,
		Progress: s.Progress(),
		Values:   s.Values(),
		Errors:   s.Errors(),
		Visible:  s.VisibleErrors(),
		Touched:  touched,
		Complete: complete,
	}
}

func (s *Session) editable(field string) error {
	if s.state == StateSubmitted {
		return ErrSubmitted
	}
	if _, ok := s.declared[field]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return nil
}

func (s *Session) recompute(field string) {
	s.errors = validation.ValidateAll(s.schema, s.fields, s.values)
	percent := s.evaluator.Percent(s.values, s.errors)
	if s.notifier.Report(percent) {
		s.emit(Event{Kind: EventProgress, Field: field, Progress: percent, Errors: len(s.errors)})
	}
}

func (s *Session) emit(event Event) {
	fields := []zap.Field{zap.String("event", string(event.Kind))}
	if event.Field != "" {
		fields = append(fields, zap.String("field", event.Field))
	}
	switch event.Kind {
	case EventProgress, EventSubmitBlocked, EventSubmitted:
		fields = append(fields, zap.Int("progress", event.Progress), zap.Int("errors", event.Errors))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
	}
	s.logger.Debug("session event", fields...)

	if s.diagnostics != nil {
		s.diagnostics(event)
	}
}
