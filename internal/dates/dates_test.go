package dates

import (
	"fmt"
	"testing"
	"time"
)

func TestParseFlexibleDate_BareMonthDay(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Feb 13", "2026-02-13"},
		{"Feb 13th", "2026-02-13"},
		{"February 13", "2026-02-13"},
		{"Dec 1st", "2026-12-01"},
	}
	for _, tc := range cases {
		got, ok := ParseFlexibleDate(tc.in, 2026)
		if !ok {
			t.Fatalf("ParseFlexibleDate(%q) failed, want %q", tc.in, tc.want)
		}
		if got != tc.want {
			t.Fatalf("ParseFlexibleDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFlexibleDate_YearedForms(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Feb 13, 2025", "2025-02-13"},
		{"February 13, 2025", "2025-02-13"},
		{"2026-03-05", "2026-03-05"},
		{"3/5/2026", "2026-03-05"},
		{"03/05/26", "2026-03-05"},
	}
	for _, tc := range cases {
		got, ok := ParseFlexibleDate(tc.in, 2099)
		if !ok {
			t.Fatalf("ParseFlexibleDate(%q) failed, want %q", tc.in, tc.want)
		}
		if got != tc.want {
			t.Fatalf("ParseFlexibleDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFlexibleDate_DefaultYearIgnoredWhenExplicit(t *testing.T) {
	got, ok := ParseFlexibleDate("Jan 2, 2024", 2026)
	if !ok || got != "2024-01-02" {
		t.Fatalf("got (%q, %v), want (2024-01-02, true)", got, ok)
	}
}

func TestParseFlexibleDate_ZeroYearUsesCurrent(t *testing.T) {
	want := fmt.Sprintf("%d-02-13", time.Now().Year())
	got, ok := ParseFlexibleDate("Feb 13", 0)
	if !ok || got != want {
		t.Fatalf("got (%q, %v), want (%q, true)", got, ok, want)
	}
}

func TestParseFlexibleDate_DayOverflowRejected(t *testing.T) {
	// 2025 is not a leap year; normalizing Feb 29 to Mar 1 would invent a
	// date the document never contained.
	if got, ok := ParseFlexibleDate("Feb 29th", 2025); ok {
		t.Fatalf("ParseFlexibleDate(Feb 29th, 2025) = %q, want soft-fail", got)
	}
	if got, ok := ParseFlexibleDate("Feb 29", 2024); !ok || got != "2024-02-29" {
		t.Fatalf("got (%q, %v), want (2024-02-29, true)", got, ok)
	}
}

func TestParseFlexibleDate_Unparseable(t *testing.T) {
	for _, in := range []string{"not a date", "", "   ", "Feb", "32/45/9999"} {
		if got, ok := ParseFlexibleDate(in, 2026); ok {
			t.Fatalf("ParseFlexibleDate(%q) = %q, want failure", in, got)
		}
	}
}

func TestIsISODate(t *testing.T) {
	if !IsISODate("2026-02-13") {
		t.Fatal("expected 2026-02-13 to be a valid ISO date")
	}
	for _, in := range []string{"Feb 13", "2026-2-13", "2026-13-40", "13/02/2026", ""} {
		if IsISODate(in) {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}
