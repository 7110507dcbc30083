// Package testsupport holds helpers shared by the package tests.
package testsupport

import (
	"testing"

	"github.com/goliatone/go-intake/pkg/forms"
	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
)

// MustLoadForm returns a bundled form definition, failing the test when it
// is missing or the bundle does not load.
func MustLoadForm(t testing.TB, id string) model.FormModel {
	t.Helper()

	store, err := forms.Default()
	if err != nil {
		t.Fatalf("load bundled forms: %v", err)
	}
	form, ok := store.Form(id)
	if !ok {
		t.Fatalf("bundled form %q not found (have %v)", id, store.IDs())
	}
	return form
}

// MustSession opens a session on form.
func MustSession(t testing.TB, form model.FormModel, opts ...session.Option) *session.Session {
	t.Helper()

	s, err := session.New(form, opts...)
	if err != nil {
		t.Fatalf("new session for %q: %v", form.ID, err)
	}
	return s
}

// ProgressRecorder collects every percentage reported to its Listener.
type ProgressRecorder struct {
	Reported []int
}

// Listener returns a session option that appends to Reported.
func (r *ProgressRecorder) Listener() session.Option {
	return session.WithProgressListener(func(p int) {
		r.Reported = append(r.Reported, p)
	})
}
