package extract

import (
	"math"
	"strconv"
	"strings"

	"github.com/coursetrack/syllabus-tracker/constants"
	"github.com/coursetrack/syllabus-tracker/internal/dates"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// Normalize turns whatever an extraction backend produced into canonical
// course events. It is total: any input shape yields a (possibly empty)
// list, never a panic. Non-slice input yields an empty list; non-object
// items are dropped silently. Ordering is preserved and duplicates are
// legitimate (two exams on the same day are two events).
//
// Normalization is idempotent: running an already-normalized list through
// again yields the same records.
func Normalize(v any) []entity.CourseEvent {
	out := make([]entity.CourseEvent, 0)

	switch items := v.(type) {
	case nil:
		return out
	case []entity.CandidateEvent:
		for _, c := range items {
			out = append(out, normalizeCandidate(c))
		}
	case []entity.CourseEvent:
		for _, e := range items {
			out = append(out, normalizeCandidate(e.Candidate()))
		}
	case []any:
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			out = append(out, normalizeCandidate(entity.CandidateFromMap(m)))
		}
	case []map[string]any:
		for _, m := range items {
			out = append(out, normalizeCandidate(entity.CandidateFromMap(m)))
		}
	default:
		return out
	}
	return out
}

// NormalizeCandidates is the typed entry point for backend output.
func NormalizeCandidates(items []entity.CandidateEvent) []entity.CourseEvent {
	return Normalize(items)
}

func normalizeCandidate(c entity.CandidateEvent) entity.CourseEvent {
	title := strings.TrimSpace(c.Title)
	if title == "" {
		title = "Untitled"
	}

	eventType, _ := constants.CanonicalizeEventType(c.Type)
	accuracy := accuracyValue(c.Accuracy)

	return entity.CourseEvent{
		Title:         title,
		DueDate:       normalizeDueDate(c.DueDate),
		Type:          string(eventType),
		Accuracy:      accuracy,
		IsLowAccuracy: accuracy < constants.LowAccuracyThreshold,
	}
}

// normalizeDueDate admits only well-formed ISO dates; anything else becomes
// null. Parsing fragments is the producers' job (they hold the default year).
func normalizeDueDate(d *string) *string {
	if d == nil {
		return nil
	}
	s := strings.TrimSpace(*d)
	if !dates.IsISODate(s) {
		return nil
	}
	return &s
}

// accuracyValue coerces a raw accuracy (number, numeric string with optional
// trailing '%', or absent) into a clamped [0,100] percentage rounded to two
// decimals. Unparseable input defaults to 100.
func accuracyValue(raw any) float64 {
	var value float64
	switch t := raw.(type) {
	case nil:
		return constants.DefaultAccuracy
	case float64:
		value = t
	case float32:
		value = float64(t)
	case int:
		value = float64(t)
	case int64:
		value = float64(t)
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(t, "%", ""))
		if cleaned == "" {
			return constants.DefaultAccuracy
		}
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return constants.DefaultAccuracy
		}
		value = f
	default:
		return constants.DefaultAccuracy
	}

	if value < constants.MinAccuracy {
		return constants.MinAccuracy
	}
	if value > constants.MaxAccuracy {
		return constants.MaxAccuracy
	}
	return math.Round(value*100) / 100
}
