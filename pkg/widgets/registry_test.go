package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/model"
)

func TestResolve_ExplicitWidgetWins(t *testing.T) {
	reg := NewRegistry()
	field := model.Field{Type: model.FieldTypeString, Widget: WidgetTextArea}

	if got, ok := reg.Resolve(field); !ok || got != WidgetTextArea {
		t.Fatalf("expected explicit widget to win, got %q (ok=%v)", got, ok)
	}
}

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		name   string
		field  model.Field
		expect string
	}{
		{"boolean toggle", model.Field{Type: model.FieldTypeBoolean}, WidgetToggle},
		{"array chips enum", model.Field{Type: model.FieldTypeArray, Enum: []string{"a", "b"}}, WidgetChips},
		{"free array list", model.Field{Type: model.FieldTypeArray}, WidgetList},
		{"select enum", model.Field{Type: model.FieldTypeString, Enum: []string{"a"}}, WidgetSelect},
		{"integer number", model.Field{Type: model.FieldTypeInteger}, WidgetNumber},
		{"textarea format", model.Field{Type: model.FieldTypeString, Format: model.FormatTextArea}, WidgetTextArea},
		{"email input", model.Field{Type: model.FieldTypeString, Format: model.FormatEmail}, WidgetInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := reg.Resolve(tc.field)
			if !ok || got != tc.expect {
				t.Fatalf("expected %q, got %q (ok=%v)", tc.expect, got, ok)
			}
		})
	}
}

func TestResolve_PriorityOrdering(t *testing.T) {
	reg := NewRegistry()
	reg.Register("stars", 95, func(field model.Field) bool {
		return field.Name == "rating"
	})

	got, _ := reg.Resolve(model.Field{Name: "rating", Type: model.FieldTypeInteger})
	if got != "stars" {
		t.Fatalf("higher priority matcher should win, got %q", got)
	}
}

func TestResolve_EmptyRegistry(t *testing.T) {
	reg := &Registry{}
	if got, ok := reg.Resolve(model.Field{Type: model.FieldTypeString}); ok {
		t.Fatalf("empty registry must not resolve, got %q", got)
	}
}

func TestDecorateKeepsPinnedWidgets(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "bio", Type: model.FieldTypeString, Widget: WidgetInput, Format: model.FormatTextArea},
		{Name: "tags", Type: model.FieldTypeArray},
	}}
	if err := NewRegistry().Decorate(&form); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	got := []string{form.Fields[0].Widget, form.Fields[1].Widget}
	if diff := cmp.Diff([]string{WidgetInput, WidgetList}, got); diff != "" {
		t.Fatalf("widgets mismatch (-want +got):\n%s", diff)
	}
}
