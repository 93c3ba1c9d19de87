package entity

// CandidateEvent is the unvalidated, producer-specific shape suggested by an
// extraction backend before normalization. Fields may be missing or oddly
// typed depending on the producer (local scan vs remote model); Accuracy in
// particular arrives as a number, a numeric string ("87.5%"), or not at all.
type CandidateEvent struct {
	Title    string  `json:"title"`
	DueDate  *string `json:"due_date"`
	Type     string  `json:"type,omitempty"`
	Accuracy any     `json:"accuracy,omitempty"`
}

// CourseEvent is the canonical event record used by all downstream consumers.
// DueDate is strictly YYYY-MM-DD or null, never a partial fragment.
type CourseEvent struct {
	Title         string  `json:"title"`
	DueDate       *string `json:"due_date"`
	Type          string  `json:"type"`
	Accuracy      float64 `json:"accuracy"`
	IsLowAccuracy bool    `json:"is_low_accuracy"`
}

// CandidateFromMap lifts a decoded JSON object into a candidate without
// trusting any field's type.
func CandidateFromMap(m map[string]any) CandidateEvent {
	var c CandidateEvent
	if s, ok := m["title"].(string); ok {
		c.Title = s
	}
	if s, ok := m["due_date"].(string); ok {
		c.DueDate = &s
	}
	if s, ok := m["type"].(string); ok {
		c.Type = s
	}
	if v, ok := m["accuracy"]; ok {
		c.Accuracy = v
	}
	return c
}

// Candidate re-wraps a canonical event as a candidate, so normalized output
// can be fed back through normalization (idempotence).
func (e CourseEvent) Candidate() CandidateEvent {
	return CandidateEvent{
		Title:    e.Title,
		DueDate:  e.DueDate,
		Type:     e.Type,
		Accuracy: e.Accuracy,
	}
}
