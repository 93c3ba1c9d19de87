package extract

import (
	"reflect"
	"testing"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

func strptr(s string) *string { return &s }

func TestNormalize_Defaults(t *testing.T) {
	out := Normalize([]entity.CandidateEvent{{}})
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d", len(out))
	}
	ev := out[0]
	if ev.Title != "Untitled" {
		t.Fatalf("expected default title Untitled, got %q", ev.Title)
	}
	if ev.DueDate != nil {
		t.Fatalf("expected nil due date, got %q", *ev.DueDate)
	}
	if ev.Type != "assignment" {
		t.Fatalf("expected default type assignment, got %q", ev.Type)
	}
	if ev.Accuracy != 100.0 || ev.IsLowAccuracy {
		t.Fatalf("expected accuracy 100 / not low, got %v / %v", ev.Accuracy, ev.IsLowAccuracy)
	}
}

func TestNormalize_Totality(t *testing.T) {
	inputs := []any{
		nil,
		"garbage",
		42,
		map[string]any{"title": "not a list"},
		[]any{42, "x", nil, []any{}},
	}
	for _, in := range inputs {
		out := Normalize(in)
		if out == nil {
			t.Fatalf("Normalize(%v) returned nil, want empty slice", in)
		}
		if len(out) != 0 {
			t.Fatalf("Normalize(%v) = %+v, want empty", in, out)
		}
	}
}

func TestNormalize_MixedArrayDropsNonObjects(t *testing.T) {
	out := Normalize([]any{
		map[string]any{"title": "HW1", "due_date": "2026-02-13", "type": "quiz", "accuracy": 92.5},
		"just a string",
		7,
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(out), out)
	}
	ev := out[0]
	if ev.Title != "HW1" || ev.Type != "quiz" || ev.Accuracy != 92.5 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.DueDate == nil || *ev.DueDate != "2026-02-13" {
		t.Fatalf("expected due date kept, got %v", ev.DueDate)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize([]any{
		map[string]any{"title": "  HW1 ", "due_date": "Feb 13", "type": "QUIZ", "accuracy": "87.5%"},
		map[string]any{"title": "", "type": "homework", "accuracy": 150},
	})
	second := Normalize(first)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("normalization not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestNormalize_DueDateStrictlyISO(t *testing.T) {
	cases := []struct {
		in   *string
		want *string
	}{
		{strptr("2026-02-13"), strptr("2026-02-13")},
		{strptr(" 2026-02-13 "), strptr("2026-02-13")},
		{strptr("Feb 13"), nil},
		{strptr("tomorrow"), nil},
		{nil, nil},
	}
	for _, tc := range cases {
		out := Normalize([]entity.CandidateEvent{{Title: "x", DueDate: tc.in}})
		got := out[0].DueDate
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("due date %v: expected nil, got %q", tc.in, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Fatalf("due date %v: expected %q, got %v", tc.in, *tc.want, got)
		}
	}
}

func TestNormalize_AccuracyCoercion(t *testing.T) {
	cases := []struct {
		in      any
		want    float64
		wantLow bool
	}{
		{nil, 100.0, false},
		{92.567, 92.57, false},
		{"87.5%", 87.5, false},
		{"87.5", 87.5, false},
		{150, 100.0, false},
		{-5, 0.0, true},
		{79.99, 79.99, true},
		{80.0, 80.0, false},
		{"not a number", 100.0, false},
		{[]any{1, 2}, 100.0, false},
	}
	for _, tc := range cases {
		out := Normalize([]entity.CandidateEvent{{Title: "x", Accuracy: tc.in}})
		ev := out[0]
		if ev.Accuracy != tc.want {
			t.Fatalf("accuracy %v: expected %v, got %v", tc.in, tc.want, ev.Accuracy)
		}
		if ev.IsLowAccuracy != tc.wantLow {
			t.Fatalf("accuracy %v: expected low=%v, got %v", tc.in, tc.wantLow, ev.IsLowAccuracy)
		}
	}
}

func TestNormalize_UnrecognizedTypeFallsBack(t *testing.T) {
	out := Normalize([]entity.CandidateEvent{
		{Title: "a", Type: "homework"},
		{Title: "b", Type: " EXAM "},
		{Title: "c", Type: "presentation"},
	})
	if out[0].Type != "assignment" {
		t.Fatalf("expected homework -> assignment, got %q", out[0].Type)
	}
	if out[1].Type != "exam" {
		t.Fatalf("expected EXAM -> exam, got %q", out[1].Type)
	}
	if out[2].Type != "presentation" {
		t.Fatalf("expected presentation kept, got %q", out[2].Type)
	}
}

func TestNormalize_PreservesOrderAndDuplicates(t *testing.T) {
	in := []entity.CandidateEvent{
		{Title: "Exam", DueDate: strptr("2026-04-01")},
		{Title: "Exam", DueDate: strptr("2026-04-01")},
		{Title: "HW", DueDate: strptr("2026-03-01")},
	}
	out := Normalize(in)
	if len(out) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out))
	}
	if out[0].Title != "Exam" || out[1].Title != "Exam" || out[2].Title != "HW" {
		t.Fatalf("order not preserved: %+v", out)
	}
}
