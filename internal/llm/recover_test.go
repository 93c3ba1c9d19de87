package llm

import (
	"errors"
	"testing"
)

func TestRecoverJSONArray_Direct(t *testing.T) {
	raw, err := RecoverJSONArray(`[{"title":"HW1"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `[{"title":"HW1"}]` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestRecoverJSONArray_MarkdownFence(t *testing.T) {
	content := "Here are the assignments:\n```json\n[{\"title\":\"HW1\"}]\n```\nLet me know!"
	raw, err := RecoverJSONArray(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `[{"title":"HW1"}]` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}

func TestRecoverJSONArray_NoPayload(t *testing.T) {
	_, err := RecoverJSONArray("I could not find any assignments in this document.")
	if err == nil {
		t.Fatal("expected error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Output == "" {
		t.Fatal("expected raw output preserved on the error")
	}
}

func TestRecoverJSONArray_MalformedBetweenDelimiters(t *testing.T) {
	_, err := RecoverJSONArray("prefix [not json at all] suffix")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
}

func TestRecoverJSONObject(t *testing.T) {
	raw, err := RecoverJSONObject("```json\n{\"overview\":\"plan\"}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"overview":"plan"}` {
		t.Fatalf("unexpected payload: %s", raw)
	}
}
