package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coursetrack/syllabus-tracker/internal/entity"
	"github.com/coursetrack/syllabus-tracker/internal/llm"
)

// Client implements llm.EventExtractor and llm.PlanGenerator against the
// OpenRouter chat/completions API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// chatEnvelope is the subset of the completion response we consume.
type chatEnvelope struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractEvents sends one zero-temperature extraction request and recovers
// a JSON array of candidate events from the response. A single upstream
// failure is surfaced immediately; fallback policy belongs to the caller.
func (c *Client) ExtractEvents(ctx context.Context, text string) ([]entity.CandidateEvent, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.log.Info("llm.extract.start", "req_id", rid, "model", c.cfg.Model, "text_len", len(text))

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildExtractionSystemPrompt()},
			{"role": "user", "content": llm.BuildExtractionUserPrompt(text)},
		},
		"temperature": 0,
		"max_tokens":  1000,
	}

	content, err := c.complete(ctx, rid, body)
	if err != nil {
		return nil, nil, err
	}

	payload, err := llm.RecoverJSONArray(content)
	if err != nil {
		c.log.Error("llm.extract.parse_error", "req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds())
		return nil, []byte(content), err
	}

	// Advisory only: the normalizer downstream is total, so a shape
	// mismatch is worth a warning, not a rejection.
	if vErr := llm.ValidateJSONAgainstSchema(llm.BuildEventArraySchema(), payload); vErr != nil {
		c.log.Warn("llm.extract.schema_mismatch", "req_id", rid, "error", vErr)
	}

	var items []any
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, payload, &llm.ParseError{Output: content, Cause: err}
	}
	candidates := make([]entity.CandidateEvent, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		candidates = append(candidates, entity.CandidateFromMap(m))
	}

	c.log.Info("llm.extract.ok", "req_id", rid, "events", len(candidates),
		"elapsed_ms", time.Since(start).Milliseconds())
	return candidates, payload, nil
}

// GeneratePlan asks for a structured study plan for courseName. Sampling is
// intentionally non-zero; plans are prose, not contracts.
func (c *Client) GeneratePlan(ctx context.Context, events []entity.CourseEvent, courseName string) (entity.StudyPlan, error) {
	rid := uuid.New().String()
	c.log.Info("llm.plan.start", "req_id", rid, "model", c.cfg.Model, "course", courseName, "events", len(events))

	body := map[string]any{
		"model": c.cfg.Model,
		"messages": []map[string]any{
			{"role": "system", "content": llm.BuildPlanSystemPrompt()},
			{"role": "user", "content": llm.BuildPlanUserPrompt(events, courseName)},
		},
		"temperature": 0.7,
		"max_tokens":  2000,
	}

	content, err := c.complete(ctx, rid, body)
	if err != nil {
		return entity.StudyPlan{}, err
	}

	payload, err := llm.RecoverJSONObject(content)
	if err != nil {
		c.log.Error("llm.plan.parse_error", "req_id", rid, "error", err)
		return entity.StudyPlan{}, err
	}

	var plan entity.StudyPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		return entity.StudyPlan{}, &llm.ParseError{Output: content, Cause: err}
	}
	c.log.Info("llm.plan.ok", "req_id", rid, "course", courseName)
	return plan, nil
}

// complete performs one chat/completions POST and returns the first
// choice's message content. Transport and envelope failures are
// *llm.ServiceError; no retry, no backoff.
func (c *Client) complete(ctx context.Context, rid string, body map[string]any) (string, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{
		"Authorization": "Bearer " + c.cfg.APIKey,
		"HTTP-Referer":  c.cfg.Referer,
		"X-Title":       "Assignment Extractor",
	}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		c.log.Error("llm.http_error", "req_id", rid, "status", status, "error", err)
		return "", &llm.ServiceError{Status: status, Cause: err}
	}

	var envelope chatEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return "", &llm.ServiceError{Status: status, Cause: fmt.Errorf("decode completion response: %w", err)}
	}
	if len(envelope.Choices) == 0 {
		return "", &llm.ServiceError{Status: status, Cause: errors.New("no choices in completion response")}
	}
	return strings.TrimSpace(envelope.Choices[0].Message.Content), nil
}
