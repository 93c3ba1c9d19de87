package constants

import "strings"

// EventType is the canonical type for extracted course events.
type EventType string

// Stable values (store these exact strings).
const (
	Assignment   EventType = "assignment"
	Test         EventType = "test"
	Quiz         EventType = "quiz"
	Exam         EventType = "exam"
	Project      EventType = "project"
	Presentation EventType = "presentation"
	Other        EventType = "other"
)

var allEventTypes = []EventType{
	Assignment,
	Test,
	Quiz,
	Exam,
	Project,
	Presentation,
	Other,
}

// EventTypeStrings returns the enum as plain strings (prompt/schema building).
func EventTypeStrings() []string {
	result := make([]string, len(allEventTypes))
	for i, t := range allEventTypes {
		result[i] = string(t)
	}
	return result
}

// CanonicalizeEventType lowercases/trims the input and maps it onto the
// enum. Unrecognized or empty labels fall back to Assignment.
func CanonicalizeEventType(input string) (EventType, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return Assignment, false
	}
	for _, t := range allEventTypes {
		if normalized == string(t) {
			return t, true
		}
	}
	return Assignment, false
}

// InferEventType guesses a type from a row title in tabular syllabi.
// Substring match, first hit wins.
func InferEventType(title string) EventType {
	lower := strings.ToLower(title)
	switch {
	case strings.Contains(lower, "test"), strings.Contains(lower, "exam"):
		return Test
	case strings.Contains(lower, "quiz"):
		return Quiz
	case strings.Contains(lower, "project"):
		return Project
	case strings.Contains(lower, "presentation"):
		return Presentation
	default:
		return Assignment
	}
}
