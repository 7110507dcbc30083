package progress_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-intake/pkg/model"
	"github.com/goliatone/go-intake/pkg/progress"
)

func eventForm() model.FormModel {
	return model.FormModel{
		ID: "event",
		Fields: []model.Field{
			{Name: "name", Type: model.FieldTypeString, Required: true},
			{Name: "capacity", Type: model.FieldTypeInteger},
			{Name: "virtual", Type: model.FieldTypeBoolean},
			{Name: "tags", Type: model.FieldTypeArray},
			{Name: "invitees", Type: model.FieldTypeString, Completion: progress.PredicateHasEmail},
		},
	}
}

func TestTruthy(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		want  bool
	}{
		{nil, false},
		{"", false},
		{"  ", false},
		{"x", true},
		{0, false},
		{int64(3), true},
		{int8(0), false},
		{int16(0), false},
		{int16(-2), true},
		{uint(0), false},
		{uint8(0), false},
		{uint64(0), false},
		{uint32(7), true},
		{0.0, false},
		{1.5, true},
		{false, false},
		{true, true},
		{[]string{}, false},
		{[]string{"a"}, true},
		{[]any{}, false},
		{[]any{"a"}, true},
	}
	for _, tc := range cases {
		if got := progress.Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestEvaluatorStrictCompletion(t *testing.T) {
	t.Parallel()

	eval, err := progress.FromForm(eventForm(), progress.DefaultPredicates())
	if err != nil {
		t.Fatalf("FromForm: %v", err)
	}

	initial := eventForm().InitialValues()
	if got := eval.Percent(initial, model.Errors{}); got != 0 {
		t.Fatalf("initial percent = %d, want 0", got)
	}

	values := model.Values{
		"name":     "Spring mixer",
		"capacity": 40,
		"virtual":  true,
		"tags":     []string{"social"},
		"invitees": "a@b.com, bad-email",
	}
	if got := eval.Percent(values, model.Errors{}); got != 100 {
		t.Fatalf("full percent = %d, want 100", got)
	}

	errs := model.Errors{"name": "Field is required"}
	if eval.Complete(values, errs, "name") {
		t.Fatalf("field with error must not be complete")
	}
	if got := eval.Percent(values, errs); got != 80 {
		t.Fatalf("percent with one error = %d, want 80", got)
	}

	values["invitees"] = "bad-email, also-bad"
	if eval.Complete(values, model.Errors{}, "invitees") {
		t.Fatalf("predicate must gate completion")
	}

	values["capacity"] = 0
	if got := eval.Count(values, model.Errors{}); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}

func TestEvaluatorIsIdempotent(t *testing.T) {
	t.Parallel()

	eval, _ := progress.FromForm(eventForm(), progress.DefaultPredicates())
	values := model.Values{"name": "x", "tags": []string{"a"}}
	errs := model.Errors{"tags": "too many"}

	first := eval.Percent(values, errs)
	second := eval.Percent(values, errs)
	if first != second {
		t.Fatalf("percent not idempotent: %d vs %d", first, second)
	}
	if first != 20 {
		t.Fatalf("percent = %d, want 20", first)
	}
}

func TestPercentFloorsAndHandlesEmptyForms(t *testing.T) {
	t.Parallel()

	eval := progress.Evaluator{Fields: []string{"a", "b", "c"}}
	if got := eval.Percent(model.Values{"a": "x"}, nil); got != 33 {
		t.Fatalf("percent = %d, want 33", got)
	}
	if got := eval.Percent(model.Values{"a": "x", "b": "y"}, nil); got != 66 {
		t.Fatalf("percent = %d, want 66", got)
	}
	if got := (progress.Evaluator{}).Percent(model.Values{}, nil); got != 0 {
		t.Fatalf("empty evaluator percent = %d, want 0", got)
	}
}

func TestFromFormRejectsUnknownPredicate(t *testing.T) {
	t.Parallel()

	form := model.FormModel{Fields: []model.Field{{Name: "x", Completion: "isPrime"}}}
	_, err := progress.FromForm(form, progress.DefaultPredicates())
	if err == nil || !strings.Contains(err.Error(), "isPrime") {
		t.Fatalf("expected unknown predicate error, got %v", err)
	}
}

func TestNotifierSuppressesRepeats(t *testing.T) {
	t.Parallel()

	var calls []int
	n := progress.NewNotifier(func(p int) { calls = append(calls, p) })

	for _, p := range []int{0, 0, 20, 20, 40} {
		n.Report(p)
	}

	if diff := cmp.Diff([]int{20, 40}, calls); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
	if n.Last() != 40 {
		t.Fatalf("last = %d, want 40", n.Last())
	}

	if !n.Report(20) {
		t.Fatalf("decreasing value must be reported")
	}
	if diff := cmp.Diff([]int{20, 40, 20}, calls); diff != "" {
		t.Fatalf("listener calls mismatch (-want +got):\n%s", diff)
	}
}

func TestNotifierWithoutListener(t *testing.T) {
	t.Parallel()

	n := progress.NewNotifier(nil)
	if !n.Report(10) || n.Report(10) {
		t.Fatalf("nil listener notifier should still track changes")
	}
}
