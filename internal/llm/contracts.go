package llm

import (
	"context"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
)

// EventExtractor is the remote-backend interface the pipeline depends on.
// The raw JSON payload recovered from the model is returned alongside the
// candidates for logging/diagnosis.
type EventExtractor interface {
	ExtractEvents(ctx context.Context, text string) ([]entity.CandidateEvent, []byte, error)
}

// PlanGenerator produces a structured study plan for a course.
type PlanGenerator interface {
	GeneratePlan(ctx context.Context, events []entity.CourseEvent, courseName string) (entity.StudyPlan, error)
}
