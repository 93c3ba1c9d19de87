package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/coursetrack/syllabus-tracker/internal/common"
	"github.com/coursetrack/syllabus-tracker/internal/entity"
	"github.com/coursetrack/syllabus-tracker/internal/extract"
)

type fakeRemote struct {
	events []entity.CandidateEvent
	err    error
	calls  int
}

func (f *fakeRemote) ExtractEvents(ctx context.Context, text string) ([]entity.CandidateEvent, []byte, error) {
	f.calls++
	return f.events, nil, f.err
}

func strptr(s string) *string { return &s }

type passthroughReader struct{}

func (passthroughReader) TextFromDocument(data []byte, ext string) string {
	return string(data)
}

func TestExtractFromDocument(t *testing.T) {
	p := NewProcessor(Config{Backend: BackendLocal}, extract.NewLocalExtractor(2026, nil), nil, nil).
		WithReader(passthroughReader{})

	data := []byte("Essay One March 3\n")
	events, hash, err := p.ExtractFromDocument(context.Background(), data, ".txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Essay One" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if hash != extract.ContentHash(data) {
		t.Fatalf("hash mismatch: %q", hash)
	}

	// Hash is returned even when the document yields no text.
	_, hash2, err := p.ExtractFromDocument(context.Background(), []byte("   "), ".txt")
	if !errors.Is(err, common.ErrNoExtractableText) {
		t.Fatalf("expected ErrNoExtractableText, got %v", err)
	}
	if hash2 == "" {
		t.Fatal("expected hash even on empty text")
	}
}

func TestExtractFromText_EmptyText(t *testing.T) {
	p := NewProcessor(Config{Backend: BackendLocal}, extract.NewLocalExtractor(2026, nil), nil, nil)

	for _, text := range []string{"", "   \n\t  "} {
		_, err := p.ExtractFromText(context.Background(), text)
		if !errors.Is(err, common.ErrNoExtractableText) {
			t.Fatalf("text %q: expected ErrNoExtractableText, got %v", text, err)
		}
	}
}

func TestExtractFromText_LocalBackend(t *testing.T) {
	remote := &fakeRemote{err: errors.New("should not be called")}
	p := NewProcessor(Config{Backend: BackendLocal}, extract.NewLocalExtractor(2026, nil), remote, nil)

	events, err := p.ExtractFromText(context.Background(), "Essay One March 3\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Essay One" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if remote.calls != 0 {
		t.Fatalf("remote called %d times on local backend", remote.calls)
	}
}

func TestExtractFromText_RemoteBackend(t *testing.T) {
	remote := &fakeRemote{events: []entity.CandidateEvent{
		{Title: "HW1", DueDate: strptr("2026-02-13"), Type: "quiz", Accuracy: "75%"},
	}}
	p := NewProcessor(Config{Backend: BackendRemote}, extract.NewLocalExtractor(2026, nil), remote, nil)

	events, err := p.ExtractFromText(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %+v", events)
	}
	ev := events[0]
	if ev.Title != "HW1" || ev.Type != "quiz" || ev.Accuracy != 75.0 || !ev.IsLowAccuracy {
		t.Fatalf("remote candidates not normalized: %+v", ev)
	}
}

func TestExtractFromText_RemoteFailureSurfaced(t *testing.T) {
	boom := errors.New("upstream down")
	remote := &fakeRemote{err: boom}
	p := NewProcessor(Config{Backend: BackendRemote, FallbackToLocal: false},
		extract.NewLocalExtractor(2026, nil), remote, nil)

	_, err := p.ExtractFromText(context.Background(), "Essay One March 3\n")
	if !errors.Is(err, boom) {
		t.Fatalf("expected upstream error surfaced, got %v", err)
	}
}

func TestExtractFromText_RemoteBackendWithoutClient(t *testing.T) {
	p := NewProcessor(Config{Backend: BackendRemote, FallbackToLocal: false},
		extract.NewLocalExtractor(2026, nil), nil, nil)

	_, err := p.ExtractFromText(context.Background(), "Essay One March 3\n")
	if err == nil {
		t.Fatal("expected configuration error for remote backend without a client")
	}
	if !errors.Is(err, common.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// With fallback enabled the misconfiguration degrades to local.
	p = NewProcessor(Config{Backend: BackendRemote, FallbackToLocal: true},
		extract.NewLocalExtractor(2026, nil), nil, nil)
	events, err := p.ExtractFromText(context.Background(), "Essay One March 3\n")
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "Essay One" {
		t.Fatalf("unexpected fallback events: %+v", events)
	}
}

func TestExtractFromText_RemoteFailureFallsBack(t *testing.T) {
	remote := &fakeRemote{err: errors.New("upstream down")}
	p := NewProcessor(Config{Backend: BackendRemote, FallbackToLocal: true},
		extract.NewLocalExtractor(2026, nil), remote, nil)

	events, err := p.ExtractFromText(context.Background(), "Essay One March 3\n")
	if err != nil {
		t.Fatalf("expected fallback to succeed, got %v", err)
	}
	if len(events) != 1 || events[0].Title != "Essay One" {
		t.Fatalf("unexpected fallback events: %+v", events)
	}
}
