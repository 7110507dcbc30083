package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/progress"
	"github.com/goliatone/go-intake/pkg/submit"
	"github.com/goliatone/go-intake/pkg/validation"
)

// SubmitHandler receives the post-processed values of a valid submission. It
// runs synchronously inside Session.Submit; network delivery, retries and
// fallbacks are its own concern.
type SubmitHandler func(ctx context.Context, values model.Values) error

// Option configures a Session.
type Option func(*config)

type config struct {
	id          string
	schema      validation.Schema
	listener    progress.Listener
	handler     SubmitHandler
	transformer submit.Transformer
	predicates  map[string]progress.Predicate
	logger      *zap.Logger
	diagnostics func(Event)
	initial     model.Values
}

// WithID overrides the generated session identifier.
func WithID(id string) Option {
	return func(c *config) {
		if id != "" {
			c.id = id
		}
	}
}

// WithSchema replaces the schema compiled from the form definition. Use
// validation.Chain to extend rather than replace it.
func WithSchema(schema validation.Schema) Option {
	return func(c *config) {
		c.schema = schema
	}
}

// WithProgressListener registers the callback that receives progress changes.
func WithProgressListener(listener progress.Listener) Option {
	return func(c *config) {
		c.listener = listener
	}
}

// WithSubmitHandler registers the callback that receives valid submissions.
func WithSubmitHandler(handler SubmitHandler) Option {
	return func(c *config) {
		c.handler = handler
	}
}

// WithTransformer appends a transformer that runs after the transforms
// declared on the form's fields.
func WithTransformer(fn submit.Transformer) Option {
	return func(c *config) {
		c.transformer = fn
	}
}

// WithPredicates extends the named completion predicates available to the
// form definition. Definitions loaded through the forms package must be
// loaded with forms.LoadFSWithPredicates and the same predicates.
func WithPredicates(predicates map[string]progress.Predicate) Option {
	return func(c *config) {
		for name, pred := range predicates {
			c.predicates[name] = pred
		}
	}
}

// WithLogger emits structured debug entries for every session event.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDiagnostics registers an explicit hook that observes session events.
func WithDiagnostics(fn func(Event)) Option {
	return func(c *config) {
		c.diagnostics = fn
	}
}

// WithInitialValues overrides the starting value of declared fields, for
// example when resuming a partially completed application.
func WithInitialValues(values model.Values) Option {
	return func(c *config) {
		c.initial = values.Clone()
	}
}
