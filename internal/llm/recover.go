package llm

import (
	"encoding/json"
	"strings"
)

// RecoverJSONArray recovers a JSON array from possibly-wrapped model output.
// First it attempts a direct parse of the whole text; on failure it locates
// the first '[' and the last ']' and parses that substring, which tolerates
// markdown code fences and leading/trailing commentary the model may add
// despite instructions. A *ParseError is returned when both stages fail.
func RecoverJSONArray(content string) ([]byte, error) {
	return recoverDelimited(content, '[', ']', func(b []byte) error {
		var v []any
		return json.Unmarshal(b, &v)
	})
}

// RecoverJSONObject is the object-shaped counterpart, used for study plans.
func RecoverJSONObject(content string) ([]byte, error) {
	return recoverDelimited(content, '{', '}', func(b []byte) error {
		var v map[string]any
		return json.Unmarshal(b, &v)
	})
}

func recoverDelimited(content string, opening, closing byte, check func([]byte) error) ([]byte, error) {
	trimmed := strings.TrimSpace(content)
	if err := check([]byte(trimmed)); err == nil {
		return []byte(trimmed), nil
	}

	start := strings.IndexByte(content, opening)
	end := strings.LastIndexByte(content, closing)
	if start == -1 || end == -1 || end <= start {
		return nil, &ParseError{Output: content, Cause: errNoPayload}
	}
	snippet := content[start : end+1]
	if err := check([]byte(snippet)); err != nil {
		return nil, &ParseError{Output: content, Cause: err}
	}
	return []byte(snippet), nil
}
