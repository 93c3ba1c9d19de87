package ics

import (
	"strings"
	"testing"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

func strptr(s string) *string { return &s }

func TestFromEvents_ShiftsOneDay(t *testing.T) {
	events := []entity.CourseEvent{
		{Title: "A1", DueDate: strptr("2026-02-13"), Type: "assignment", Accuracy: 100},
	}
	out, err := FromEvents(events, "MATH 101")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "BEGIN:VEVENT") {
		t.Fatal("expected a VEVENT")
	}
	if !strings.Contains(out, "20260214") {
		t.Fatalf("expected shifted date 20260214 in output:\n%s", out)
	}
	if strings.Contains(out, "20260213") {
		t.Fatalf("unshifted date leaked into output:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:A1") {
		t.Fatalf("expected summary in output:\n%s", out)
	}
	if !strings.Contains(out, "X-WR-CALNAME:MATH 101") {
		t.Fatalf("expected calendar name in output:\n%s", out)
	}
}

func TestFromEvents_SkipsMissingDates(t *testing.T) {
	events := []entity.CourseEvent{
		{Title: "No Date", DueDate: nil},
		{Title: "Bad Date", DueDate: strptr("Feb 13")},
		{Title: "Good", DueDate: strptr("2026-05-01")},
	}
	out, err := FromEvents(events, "Course")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(out, "BEGIN:VEVENT"); got != 1 {
		t.Fatalf("expected 1 VEVENT, got %d:\n%s", got, out)
	}
	if strings.Contains(out, "No Date") || strings.Contains(out, "Bad Date") {
		t.Fatalf("dateless events leaked into output:\n%s", out)
	}
}

func TestFromEvents_EmptyCalendarStillValid(t *testing.T) {
	out, err := FromEvents(nil, "Empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "END:VCALENDAR") {
		t.Fatalf("expected a calendar wrapper:\n%s", out)
	}
}
