// Package repository persists extraction records keyed by document content
// hash. The hash is the sole idempotency mechanism: byte-identical uploads
// resolve to the same record and skip re-extraction entirely.
package repository

import (
	"context"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// RecordRepository is the cache contract the service depends on.
type RecordRepository interface {
	// Get returns the record for a content hash, or common.ErrNotFound.
	Get(ctx context.Context, hash string) (*entity.ExtractionRecord, error)
	// SaveExtraction inserts a fresh record. A concurrent insert of the
	// same hash is benign (identical content); duplicates are swallowed.
	SaveExtraction(ctx context.Context, rec *entity.ExtractionRecord) error
	// UpdateEvents rewrites the stored event list in place. Used for lazy
	// migration when normalization rules changed since the record was
	// written.
	UpdateEvents(ctx context.Context, hash string, events []entity.CourseEvent) error
	// SaveStudyPlan stores a derived study plan under a display name.
	SaveStudyPlan(ctx context.Context, hash, courseName string, plan entity.StudyPlan) error
	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
	Close()
}
