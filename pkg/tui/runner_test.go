package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/session"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	textAreas    []string
	infoMessages []string
	prompts      []string
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
	textPos      int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func signupForm() model.FormModel {
	return model.FormModel{
		ID:    "signup",
		Title: "Sign up",
		Sections: []model.Section{
			{ID: "you", Fields: []string{"email", "name"}},
		},
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true, Transform: []string{"trim"}},
			{Name: "email", Type: model.FieldTypeString, Format: model.FormatEmail, Required: true},
			{Name: "age", Type: model.FieldTypeInteger, Validations: []model.ValidationRule{
				{Kind: model.ValidationRuleMin, Params: map[string]string{"value": "18"}},
			}},
			{Name: "bio", Type: model.FieldTypeString, Format: model.FormatTextArea},
			{Name: "subscribe", Type: model.FieldTypeBoolean},
			{Name: "topics", Type: model.FieldTypeArray, Enum: []string{"go", "rust", "zig"}},
			{Name: "timeZone", Type: model.FieldTypeString, Enum: []string{"America/New_York", "Europe/Paris"}},
		},
	}
}

func TestRunAsksUntilValidAndSubmits(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"not-an-email", "ada@example.com", "   ", " Ada ", "twelve", "12", "42"},
		textAreas: []string{"Writes programs."},
		confirm:   []bool{true},
		multiIdx:  [][]int{{0, 2}},
		selectIdx: []int{2},
	}
	r, err := New(driver)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	var handed model.Values
	out, err := r.Run(context.Background(), signupForm(), session.WithSubmitHandler(func(_ context.Context, values model.Values) error {
		handed = values
		return nil
	}))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !out.Result.Submitted || out.Session.State() != session.StateSubmitted {
		t.Fatalf("expected submitted outcome, got %+v", out.Result)
	}

	want := model.Values{
		"name":      "Ada",
		"email":     "ada@example.com",
		"age":       42,
		"bio":       "Writes programs.",
		"subscribe": true,
		"topics":    []string{"go", "zig"},
		"timeZone":  "Europe/Paris",
	}
	if diff := cmp.Diff(want, handed); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}

	wantInfo := []string{
		"Sign up",
		"! Email *: Invalid email",
		"Progress: 14%",
		"! Name *: Field is required",
		"Progress: 28%",
		"! Age: Must be a number",
		"! Age: Must be at least 18",
		"Progress: 42%",
		"Progress: 57%",
		"Progress: 71%",
		"Progress: 85%",
		"Progress: 100%",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRunOptionalEnumCanBeSkipped(t *testing.T) {
	driver := &stubDriver{selectIdx: []int{0}}
	r, _ := New(driver)

	form := model.FormModel{
		ID: "tz",
		Fields: []model.Field{
			{Name: "timeZone", Type: model.FieldTypeString, Enum: []string{"Europe/Paris"}},
		},
	}
	out, err := r.Run(context.Background(), form)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if v, _ := out.Session.Value("timeZone"); v != "" {
		t.Fatalf("skip must store an empty value, got %v", v)
	}
	if !out.Result.Submitted {
		t.Fatalf("expected submission")
	}
}

func TestRunStopsOnAbort(t *testing.T) {
	driver := &abortingDriver{stubDriver: &stubDriver{}}
	r, _ := New(driver)

	_, err := r.Run(context.Background(), signupForm())
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRunDeclinedConfirmationAborts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"x"}, confirm: []bool{false}}
	r, _ := New(driver, WithConfirmSubmit(true))

	form := model.FormModel{ID: "one", Fields: []model.Field{{Name: "a", Type: model.FieldTypeString}}}
	out, err := r.Run(context.Background(), form)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if out.Session.State() != session.StateEditing {
		t.Fatalf("declined submission must leave the session editing")
	}
}

func TestNewRequiresDriver(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoDriver) {
		t.Fatalf("expected ErrNoDriver, got %v", err)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw     string
		integer bool
		want    any
	}{
		{"", true, nil},
		{" 7 ", true, 7},
		{"7.5", true, "7.5"},
		{"7.5", false, 7.5},
		{"abc", false, "abc"},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, parseNumber(tc.raw, tc.integer)); diff != "" {
			t.Errorf("parseNumber(%q, %v) mismatch (-want +got):\n%s", tc.raw, tc.integer, diff)
		}
	}
}

type abortingDriver struct {
	*stubDriver
}

func (a *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestRunHonoursPinnedWidget(t *testing.T) {
	driver := &stubDriver{textAreas: []string{"line one\nline two"}}
	r, _ := New(driver)

	form := model.FormModel{
		ID:     "note",
		Fields: []model.Field{{Name: "note", Type: model.FieldTypeString, Widget: "textarea"}},
	}
	out, err := r.Run(context.Background(), form)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if driver.textPos != 1 || driver.inputPos != 0 {
		t.Fatalf("expected a textarea prompt, prompts = %v", driver.prompts)
	}
	if v, _ := out.Session.Value("note"); v != "line one\nline two" {
		t.Fatalf("note = %q", v)
	}
}
