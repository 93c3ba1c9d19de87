// Package pipeline coordinates the extraction backends and normalization
// into one parameterized flow: raw text in, canonical course events out.
package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
	"github.com/coursetrack/syllabus-tracker/internal/extract"
	"github.com/coursetrack/syllabus-tracker/internal/llm"
)

// Backend selects the extraction strategy. The historical deployments were
// copy-pasted service variants; here they collapse into one flag.
type Backend string

const (
	BackendLocal  Backend = "local"
	BackendRemote Backend = "remote"
)

// Config holds behavior flags for the processor.
type Config struct {
	Backend Backend
	// FallbackToLocal runs the local extractor when the remote backend
	// fails. When false, remote failures are surfaced to the caller.
	FallbackToLocal bool
}

// TextExtractor matches ingest.DocumentReader; declared here so the
// pipeline does not depend on the ingest package.
type TextExtractor interface {
	TextFromDocument(data []byte, ext string) string
}

// Processor is the single entry point for extraction. It is stateless
// across calls and safe for concurrent use.
type Processor struct {
	cfg    Config
	local  extract.Extractor
	remote llm.EventExtractor
	reader TextExtractor
	logger *slog.Logger
}

func NewProcessor(cfg Config, local extract.Extractor, remote llm.EventExtractor, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendLocal
	}
	return &Processor{cfg: cfg, local: local, remote: remote, logger: logger}
}

// WithReader attaches a document reader so ExtractFromDocument can accept
// raw uploads. Returns the processor for chaining at construction.
func (p *Processor) WithReader(reader TextExtractor) *Processor {
	p.reader = reader
	return p
}

// ExtractFromText runs the configured backend on raw syllabus text and
// normalizes the candidates. Empty or whitespace-only text returns
// common.ErrNoExtractableText. Local extraction cannot fail; remote
// failures (including a missing remote client) are surfaced unless
// FallbackToLocal is set.
func (p *Processor) ExtractFromText(ctx context.Context, text string) ([]entity.CourseEvent, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrNoExtractableText
	}

	if p.cfg.Backend == BackendRemote {
		if p.remote == nil {
			if !p.cfg.FallbackToLocal {
				return nil, common.NewAppError("CONFIG_ERROR",
					"remote backend configured without a client", common.ErrInvalidInput)
			}
			p.logger.Warn("pipeline.remote_not_configured_falling_back")
		} else {
			candidates, _, err := p.remote.ExtractEvents(ctx, text)
			if err == nil {
				return extract.Normalize(candidates), nil
			}
			if !p.cfg.FallbackToLocal {
				return nil, err
			}
			p.logger.Warn("pipeline.remote_failed_falling_back", "error", err)
		}
	}

	return extract.Normalize(p.local.Extract(text)), nil
}

// ExtractFromDocument extracts text from a raw upload and runs the full
// flow, returning the events together with the document's content hash.
// The hash is returned even when extraction fails, so callers can still
// log or key on it.
func (p *Processor) ExtractFromDocument(ctx context.Context, data []byte, ext string) ([]entity.CourseEvent, string, error) {
	hash := extract.ContentHash(data)

	var text string
	if p.reader != nil {
		text = p.reader.TextFromDocument(data, ext)
	}
	events, err := p.ExtractFromText(ctx, text)
	return events, hash, err
}

// ContentHash exposes the idempotency key for a raw document, so callers
// can consult the cache before invoking extraction at all.
func (p *Processor) ContentHash(data []byte) string {
	return extract.ContentHash(data)
}
