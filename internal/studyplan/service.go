// Package studyplan generates and caches per-course study plans.
package studyplan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
	"github.com/coursetrack/syllabus-tracker/internal/llm"
	"github.com/coursetrack/syllabus-tracker/internal/repository"
)

// Request carries one plan generation call. ContentHash and AllowCache are
// optional; when a hash is present the stored extraction is consulted first.
type Request struct {
	Events      []entity.CourseEvent
	CourseName  string
	ContentHash string
	AllowCache  bool
}

// Generator produces study plans, preferring cached plans when the caller
// supplies a content hash, and falling back to a deterministic local plan
// when no remote generator is configured.
type Generator struct {
	remote llm.PlanGenerator
	repo   repository.RecordRepository
	local  bool
	logger *slog.Logger
}

// NewGenerator builds a Generator. A nil remote (or local=true) selects the
// deterministic fallback plan. repo may be nil, which disables caching.
func NewGenerator(remote llm.PlanGenerator, repo repository.RecordRepository, local bool, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{remote: remote, repo: repo, local: local || remote == nil, logger: logger}
}

// Generate returns the plan for the request, consulting the cache first.
//
// Cache writes are restricted to plans generated from the stored extraction:
// if the caller supplied events that have no backing record, the generated
// plan is returned but not persisted, so arbitrary input cannot overwrite a
// plan derived from the real syllabus.
func (g *Generator) Generate(ctx context.Context, req Request) (entity.StudyPlan, error) {
	events := req.Events
	allowCache := req.AllowCache

	if req.ContentHash != "" && g.repo != nil {
		rec, err := g.repo.Get(ctx, req.ContentHash)
		switch {
		case err == nil:
			if allowCache {
				if plan, ok := rec.StudyPlans[req.CourseName]; ok {
					g.logger.Info("study plan cache hit",
						"course", req.CourseName, "hash", shortHash(req.ContentHash))
					return plan, nil
				}
				events = rec.Events
			}
		case errors.Is(err, common.ErrNotFound):
			// No stored extraction backs this hash, so never cache the result.
			allowCache = false
		default:
			g.logger.Warn("study plan cache lookup failed", "error", err)
			allowCache = false
		}
	}

	plan, err := g.generate(ctx, events, req.CourseName)
	if err != nil {
		return entity.StudyPlan{}, err
	}

	if allowCache && req.ContentHash != "" && g.repo != nil {
		if err := g.repo.SaveStudyPlan(ctx, req.ContentHash, req.CourseName, plan); err != nil {
			g.logger.Warn("study plan cache save failed",
				"course", req.CourseName, "hash", shortHash(req.ContentHash), "error", err)
		} else {
			g.logger.Info("study plan cached",
				"course", req.CourseName, "hash", shortHash(req.ContentHash))
		}
	}
	return plan, nil
}

func (g *Generator) generate(ctx context.Context, events []entity.CourseEvent, courseName string) (entity.StudyPlan, error) {
	if g.local {
		return LocalPlan(courseName), nil
	}
	return g.remote.GeneratePlan(ctx, events, courseName)
}

// LocalPlan is the deterministic plan used when no model is configured.
func LocalPlan(courseName string) entity.StudyPlan {
	return entity.StudyPlan{
		Overview: "Study plan for " + courseName,
		WeeklySchedule: []string{
			"Review syllabus and course materials",
			"Complete assigned readings",
			"Work on assignments and projects",
			"Prepare for exams and quizzes",
		},
		StudyTips: []string{
			"Start assignments early to avoid last-minute rush",
			"Form a study group with classmates",
			"Review notes regularly, not just before the exam",
			"Attend office hours if you need clarification",
			"Take care of your physical and mental health",
		},
		ResourceRecommendations: "Take advantage of tutoring services, online resources, and library materials available at your institution.",
	}
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
