// Package server exposes the extraction pipeline over HTTP.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
	"github.com/coursetrack/syllabus-tracker/internal/export"
	"github.com/coursetrack/syllabus-tracker/internal/extract"
	"github.com/coursetrack/syllabus-tracker/internal/ics"
	"github.com/coursetrack/syllabus-tracker/internal/pipeline"
	"github.com/coursetrack/syllabus-tracker/internal/repository"
	"github.com/coursetrack/syllabus-tracker/internal/studyplan"
)

const (
	mimeCalendar = "text/calendar"
	mimeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Handler carries every collaborator the routes need.
type Handler struct {
	repo     repository.RecordRepository
	proc     *pipeline.Processor
	plans    *studyplan.Generator
	exporter *export.Service
	log      *zap.Logger
}

func NewHandler(
	repo repository.RecordRepository,
	proc *pipeline.Processor,
	plans *studyplan.Generator,
	exporter *export.Service,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{repo: repo, proc: proc, plans: plans, exporter: exporter, log: log}
}

func (h *Handler) Health(c *gin.Context) {
	if h.repo != nil {
		if err := h.repo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ExtractAssignments accepts a multipart syllabus upload and returns the
// extracted events, the content hash, and any cached study plans.
func (h *Handler) ExtractAssignments(c *gin.Context) {
	events, hash, plansMap, ok := h.resolveEvents(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assignments": events,
		"file_hash":   hash,
		"study_plans": plansMap,
	})
}

// JSONToICS converts a JSON array of events into an ICS attachment.
func (h *Handler) JSONToICS(c *gin.Context) {
	events, ok := h.bindEventArray(c)
	if !ok {
		return
	}
	courseName := c.DefaultQuery("course_name", "Assignments")
	h.respondICS(c, events, courseName)
}

// PDFToICS runs the full upload-extract flow and responds with a calendar
// instead of JSON.
func (h *Handler) PDFToICS(c *gin.Context) {
	events, _, _, ok := h.resolveEvents(c)
	if !ok {
		return
	}
	courseName := c.DefaultQuery("course_name", "Course Assignments")
	h.respondICS(c, events, courseName)
}

// GenerateStudyPlan accepts either a bare JSON array of events or an object
// of the form {"data": [...], "file_hash": "...", "allow_cache": bool}.
func (h *Handler) GenerateStudyPlan(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	req := studyplan.Request{
		CourseName: c.DefaultQuery("course_name", "Course Assignments"),
		AllowCache: true,
	}

	var asArray []any
	if err := json.Unmarshal(raw, &asArray); err == nil {
		req.Events = extract.Normalize(asArray)
	} else {
		var asObject struct {
			Data       []any  `json:"data"`
			FileHash   string `json:"file_hash"`
			AllowCache *bool  `json:"allow_cache"`
		}
		if err := json.Unmarshal(raw, &asObject); err != nil || asObject.Data == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "expected JSON array or object with 'data' key"})
			return
		}
		req.Events = extract.Normalize(asObject.Data)
		req.ContentHash = asObject.FileHash
		if asObject.AllowCache != nil {
			req.AllowCache = *asObject.AllowCache
		}
	}

	plan, err := h.plans.Generate(c.Request.Context(), req)
	if err != nil {
		h.log.Error("study plan generation failed", zap.String("course", req.CourseName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExportSchedule converts a JSON array of events into an XLSX attachment.
func (h *Handler) ExportSchedule(c *gin.Context) {
	events, ok := h.bindEventArray(c)
	if !ok {
		return
	}
	courseName := c.DefaultQuery("course_name", "Course Assignments")

	data, err := h.exporter.ScheduleXLSX(events, courseName)
	if err != nil {
		h.log.Error("schedule export failed", zap.String("course", courseName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", courseName+".xlsx"))
	c.Data(http.StatusOK, mimeXLSX, data)
}

// resolveEvents handles the shared upload flow: hash the bytes, serve from
// the cache when the document was seen before, otherwise extract and store.
// Cached events are re-normalized on read so rows written by older builds
// converge to the current canonical shape.
func (h *Handler) resolveEvents(c *gin.Context) (events []entity.CourseEvent, hash string, plansMap map[string]entity.StudyPlan, ok bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return nil, "", nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return nil, "", nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return nil, "", nil, false
	}

	ctx := c.Request.Context()
	hash = h.proc.ContentHash(data)
	plansMap = map[string]entity.StudyPlan{}

	if h.repo != nil {
		rec, err := h.repo.Get(ctx, hash)
		switch {
		case err == nil:
			events = extract.Normalize(rec.Events)
			if changed(rec.Events, events) {
				if err := h.repo.UpdateEvents(ctx, hash, events); err != nil {
					h.log.Warn("cached events migration failed", zap.String("hash", hash), zap.Error(err))
				}
			}
			h.log.Info("cache hit",
				zap.String("filename", fh.Filename), zap.String("hash", shortHash(hash)))
			if rec.StudyPlans != nil {
				plansMap = rec.StudyPlans
			}
			return events, hash, plansMap, true
		case errors.Is(err, common.ErrNotFound):
		default:
			h.log.Warn("cache lookup failed", zap.String("hash", shortHash(hash)), zap.Error(err))
		}
	}

	events, _, err = h.proc.ExtractFromDocument(ctx, data, filepath.Ext(fh.Filename))
	if err != nil {
		if errors.Is(err, common.ErrNoExtractableText) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no extractable text"})
		} else {
			h.log.Error("extraction failed", zap.String("filename", fh.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, "", nil, false
	}

	if h.repo != nil {
		rec := &entity.ExtractionRecord{
			ContentHash: hash,
			Filename:    fh.Filename,
			Events:      events,
			StudyPlans:  map[string]entity.StudyPlan{},
			CreatedAt:   time.Now().UTC(),
		}
		if err := h.repo.SaveExtraction(ctx, rec); err != nil {
			h.log.Warn("cache save failed", zap.String("hash", shortHash(hash)), zap.Error(err))
		} else {
			h.log.Info("cached assignments",
				zap.String("filename", fh.Filename), zap.String("hash", shortHash(hash)))
		}
	}
	return events, hash, plansMap, true
}

// bindEventArray reads a JSON array body and normalizes it.
func (h *Handler) bindEventArray(c *gin.Context) ([]entity.CourseEvent, bool) {
	var raw []any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected JSON array"})
		return nil, false
	}
	return extract.Normalize(raw), true
}

func (h *Handler) respondICS(c *gin.Context, events []entity.CourseEvent, courseName string) {
	content, err := ics.FromEvents(events, courseName)
	if err != nil {
		h.log.Error("calendar build failed", zap.String("course", courseName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", courseName+".ics"))
	c.Data(http.StatusOK, mimeCalendar, []byte(content))
}

// changed reports whether re-normalization altered the stored events.
func changed(before, after []entity.CourseEvent) bool {
	a, errA := json.Marshal(before)
	b, errB := json.Marshal(after)
	if errA != nil || errB != nil {
		return false
	}
	return !bytes.Equal(a, b)
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
