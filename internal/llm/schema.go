package llm

// BuildEventArraySchema returns a JSON-Schema (draft 2020-12 subset) for the
// extraction contract as a generic map. It is used locally to sanity-check
// recovered arrays; validation is advisory because the normalizer is total.
func BuildEventArraySchema() map[string]any {
	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": true,
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"due_date": map[string]any{
					"type": []string{"string", "null"},
				},
				"type":     map[string]any{"type": "string"},
				"accuracy": map[string]any{"type": []string{"number", "string"}},
			},
			"required": []string{"title"},
		},
	}
}
