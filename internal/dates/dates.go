// Package dates parses heterogeneous syllabus date fragments into canonical
// ISO-8601 dates.
package dates

import (
	"regexp"
	"strings"
	"time"
)

// ISODate is the canonical output layout.
const ISODate = "2006-01-02"

var reOrdinal = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// Layouts that carry their own year, tried in priority order after the
// bare month-day forms.
var yearedLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
	ISODate,
	"1/2/2006",
	"1/2/06",
}

// Layouts with no year; the caller's default year is applied.
var barelayouts = []string{
	"Jan 2",
	"January 2",
}

// ParseFlexibleDate parses a date fragment ("Feb 13th", "2026-03-05",
// "03/05/26") into YYYY-MM-DD. Bare month-day fragments always take
// defaultYear, never a year guessed from surrounding text; defaultYear <= 0
// resolves to the current calendar year. Returns ("", false) when nothing
// matches; this is a soft-fail contract, not an error.
func ParseFlexibleDate(fragment string, defaultYear int) (string, bool) {
	if defaultYear <= 0 {
		defaultYear = time.Now().Year()
	}

	s := strings.TrimSpace(reOrdinal.ReplaceAllString(fragment, "$1"))
	if s == "" {
		return "", false
	}

	for _, layout := range barelayouts {
		dt, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		resolved := time.Date(defaultYear, dt.Month(), dt.Day(), 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow ("Feb 29" in a non-leap year
		// becomes Mar 1); a shifted date was never in the document.
		if resolved.Month() != dt.Month() || resolved.Day() != dt.Day() {
			return "", false
		}
		return resolved.Format(ISODate), true
	}
	for _, layout := range yearedLayouts {
		if dt, err := time.Parse(layout, s); err == nil {
			return dt.Format(ISODate), true
		}
	}
	return "", false
}

// IsISODate reports whether s is already a well-formed YYYY-MM-DD date.
func IsISODate(s string) bool {
	_, err := time.Parse(ISODate, s)
	return err == nil
}
