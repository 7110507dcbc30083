package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/goliatone/go-intake/internal/config"
	"github.com/goliatone/go-intake/pkg/tui"
)

// queueDriver answers prompts in order, whatever their kind.
type queueDriver struct {
	answers []any
	info    []string
}

func (q *queueDriver) next() (any, error) {
	if len(q.answers) == 0 {
		return nil, errors.New("no answer scripted")
	}
	answer := q.answers[0]
	q.answers = q.answers[1:]
	return answer, nil
}

func (q *queueDriver) Input(context.Context, tui.InputConfig) (string, error) {
	v, err := q.next()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (q *queueDriver) TextArea(context.Context, tui.TextAreaConfig) (string, error) {
	v, err := q.next()
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (q *queueDriver) Confirm(context.Context, tui.ConfirmConfig) (bool, error) {
	v, err := q.next()
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

func (q *queueDriver) Select(context.Context, tui.SelectConfig) (int, error) {
	v, err := q.next()
	if err != nil {
		return -1, err
	}
	return v.(int), nil
}

func (q *queueDriver) MultiSelect(context.Context, tui.SelectConfig) ([]int, error) {
	v, err := q.next()
	if err != nil {
		return nil, err
	}
	return v.([]int), nil
}

func (q *queueDriver) Info(_ context.Context, msg string) error {
	q.info = append(q.info, msg)
	return nil
}

func newTestApp(driver tui.PromptDriver) (*app, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	a := &app{
		cfg:    config.Config{OutputFormat: "json", AuthTokenName: "_token"},
		out:    &out,
		errOut: &errOut,
		logger: zap.NewNop(),
		driver: driver,
	}
	return a, &out, &errOut
}

func execute(a *app, args ...string) error {
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(a.out)
	cmd.SetErr(a.errOut)
	return cmd.Execute()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFormsListsBundledForms(t *testing.T) {
	a, out, _ := newTestApp(nil)
	if err := execute(a, "forms"); err != nil {
		t.Fatalf("forms: %v", err)
	}
	got := out.String()
	for _, id := range []string{"event", "mentee", "mentor"} {
		if !strings.Contains(got, id) {
			t.Errorf("listing missing %q:\n%s", id, got)
		}
	}
}

func TestCheckWritesPayloadWhenValid(t *testing.T) {
	values := writeFile(t, "event.yaml", `
name: "  Spring mixer "
description: Meet and greet
startDate: "2026-04-01"
capacity: 40
virtual: true
organizerEmail: host@pennpal.org
invitees: "a@b.com, nope c@d.org"
`)
	a, out, errOut := newTestApp(nil)
	a.cfg.AuthToken = "t0ken"

	if err := execute(a, "check", "event", "-f", values); err != nil {
		t.Fatalf("check: %v\n%s", err, errOut.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(out.Bytes(), &payload); err != nil {
		t.Fatalf("payload is not json: %v\n%s", err, out.String())
	}
	want := map[string]any{
		"_form":          "event",
		"_token":         "t0ken",
		"name":           "Spring mixer",
		"description":    "Meet and greet",
		"startDate":      "2026-04-01",
		"capacity":       float64(40),
		"virtual":        true,
		"organizerEmail": "host@pennpal.org",
		"invitees":       []any{"a@b.com", "c@d.org"},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(errOut.String(), "Progress [####################] 100%") {
		t.Fatalf("view missing full progress bar:\n%s", errOut.String())
	}
}

func TestCheckReportsBlockedSubmission(t *testing.T) {
	values := writeFile(t, "event.yaml", `
name: Mixer
organizerEmail: not-an-email
`)
	a, out, errOut := newTestApp(nil)

	err := execute(a, "check", "event", "-f", values)
	if !errors.Is(err, errBlocked) {
		t.Fatalf("expected errBlocked, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("blocked check must not write a payload, got %q", out.String())
	}
	view := errOut.String()
	for _, want := range []string{
		"! Invalid email",
		"Oops! Please fix the fields below before submitting.",
		"  - Start date: Field is required",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCheckRejectsUnknownForm(t *testing.T) {
	a, _, _ := newTestApp(nil)
	values := writeFile(t, "v.yaml", "a: 1\n")
	err := execute(a, "check", "survey", "-f", values)
	if err == nil || !strings.Contains(err.Error(), `unknown form "survey"`) {
		t.Fatalf("expected unknown form error, got %v", err)
	}
}

func TestFillRunsInteractiveFlow(t *testing.T) {
	driver := &queueDriver{answers: []any{
		"Spring mixer",        // name
		"Bring <b>snacks</b>", // description
		"April 1st",           // startDate, rejected
		"2026-04-01",          // startDate
		"1",                   // capacity, below minimum
		"25",                  // capacity
		false,                 // virtual
		"host@pennpal.org",    // organizerEmail
		"a@b.com c@d.org",     // invitees
	}}
	a, out, errOut := newTestApp(driver)

	if err := execute(a, "fill", "event", "--format", "pretty"); err != nil {
		t.Fatalf("fill: %v\n%s", err, errOut.String())
	}

	wantPayload := strings.Join([]string{
		"_form=event",
		"capacity=25",
		"description=Bring snacks",
		"invitees=a@b.com, c@d.org",
		"name=Spring mixer",
		"organizerEmail=host@pennpal.org",
		"startDate=2026-04-01",
		"virtual=false",
	}, "\n") + "\n\n"
	if diff := cmp.Diff(wantPayload, out.String()); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(errOut.String(), "Your event has been created.") {
		t.Fatalf("success page missing:\n%s", errOut.String())
	}
	for _, want := range []string{"! Start date *: Use the YYYY-MM-DD format", "! Maximum participants: Must be at least 2"} {
		if !containsString(driver.info, want) {
			t.Errorf("info missing %q: %v", want, driver.info)
		}
	}
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
