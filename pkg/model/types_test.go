package model_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/model"
)

func TestDefaultLabeler(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                  "",
		"email":             "Email",
		"yearsOfExperience": "Years of experience",
		"first_name":        "First name",
		"phone-number":      "Phone number",
	}
	for input, want := range cases {
		if got := model.DefaultLabeler(input); got != want {
			t.Fatalf("DefaultLabeler(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestInitialValues(t *testing.T) {
	t.Parallel()

	form := model.FormModel{
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString},
			{Name: "years", Type: model.FieldTypeInteger},
			{Name: "open", Type: model.FieldTypeBoolean},
			{Name: "skills", Type: model.FieldTypeArray},
			{Name: "country", Type: model.FieldTypeString, Default: "Canada"},
		},
	}

	want := model.Values{
		"name":    "",
		"years":   nil,
		"open":    false,
		"skills":  []string{},
		"country": "Canada",
	}
	if diff := cmp.Diff(want, form.InitialValues()); diff != "" {
		t.Fatalf("initial values mismatch (-want +got):\n%s", diff)
	}
}

func TestValuesCloneCopiesLists(t *testing.T) {
	t.Parallel()

	original := model.Values{"skills": []string{"go"}}
	clone := original.Clone()
	clone["skills"].([]string)[0] = "rust"

	if got := original["skills"].([]string)[0]; got != "go" {
		t.Fatalf("clone shares list storage, original now %q", got)
	}
}

func TestFieldMessageOverride(t *testing.T) {
	t.Parallel()

	field := model.Field{Name: "email", Messages: map[string]string{"format": "Use your work email"}}
	if got := field.Message("format", "Invalid email"); got != "Use your work email" {
		t.Fatalf("override not applied, got %q", got)
	}
	if got := field.Message("required", "Field is required"); got != "Field is required" {
		t.Fatalf("fallback not applied, got %q", got)
	}
	if got := field.DisplayLabel(); got != "Email" {
		t.Fatalf("DisplayLabel = %q", got)
	}
}

func TestOrderedFieldsFollowsSections(t *testing.T) {
	t.Parallel()

	form := model.FormModel{
		Sections: []model.Section{
			{ID: "b", Fields: []string{"c", "a"}},
		},
		Fields: []model.Field{{Name: "a"}, {Name: "b"}, {Name: "c"}},
	}

	var got []string
	for _, field := range form.OrderedFields() {
		got = append(got, field.Name)
	}
	if diff := cmp.Diff([]string{"c", "a", "b"}, got); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}

	form.Sections = nil
	got = got[:0]
	for _, field := range form.OrderedFields() {
		got = append(got, field.Name)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Fatalf("unsectioned order mismatch (-want +got):\n%s", diff)
	}
}
