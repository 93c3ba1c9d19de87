package entity

import "time"

// ExtractionRecord is the cached extraction for one document, keyed by the
// SHA-256 content hash of the raw bytes. StudyPlans are derived artifacts
// keyed by the display course name.
type ExtractionRecord struct {
	ContentHash string               `json:"content_hash"`
	Filename    string               `json:"filename,omitempty"`
	Events      []CourseEvent        `json:"events"`
	StudyPlans  map[string]StudyPlan `json:"study_plans,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}
