// Package extract holds the deadline-extraction core: the deterministic
// local pattern extractor, the candidate normalizer, and the content-hash
// idempotency key. Everything here is pure and network-free.
package extract

import (
	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// Extractor is the behavior the pipeline depends on for the local backend.
// Local extraction never fails; it degrades to fewer or zero events.
type Extractor interface {
	Extract(text string) []entity.CandidateEvent
}
