// Package intake is the entry point for callers that only need the bundled
// forms: open a session by form id, edit it, and submit.
package intake

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-intake/pkg/forms"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/render"
	"github.com/goliatone/go-intake/pkg/session"
)

// Session aliases session.Session for callers using the root package.
type Session = session.Session

// Values aliases model.Values.
type Values = model.Values

var (
	defaultOnce  sync.Once
	defaultStore *forms.Store
	defaultErr   error
)

// Forms returns the bundled form catalogue, loaded once.
func Forms() (*forms.Store, error) {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = forms.Default()
	})
	return defaultStore, defaultErr
}

// NewSession opens a session on the bundled form registered as formID.
func NewSession(formID string, options ...session.Option) (*Session, error) {
	store, err := Forms()
	if err != nil {
		return nil, err
	}
	form, ok := store.Form(formID)
	if !ok {
		return nil, fmt.Errorf("intake: unknown form %q", formID)
	}
	return session.New(form, options...)
}

// EmbeddedDefinitions exposes the bundled form definitions so callers can
// copy or extend them.
func EmbeddedDefinitions() fs.FS {
	return forms.EmbeddedFS()
}

// EmbeddedTemplates exposes the built-in text view templates.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}
