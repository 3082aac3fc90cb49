package llm

import (
	"encoding/json"
	"strings"
)

// ExtractField defensively pulls the named key out of a model response that
// was asked for a minimal JSON object. Model output is untrusted: on any
// parse failure the raw trimmed response is returned verbatim so a sloppy
// answer still yields a usable value instead of an error.
func ExtractField(response string, field string) string {
	trimmed := strings.TrimSpace(response)
	if trimmed == "" {
		return ""
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(trimmed)), &obj); err != nil {
		return trimmed
	}

	raw, ok := obj[field]
	if !ok {
		return trimmed
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return strings.TrimSpace(str)
	}
	// Non-string value (number, nested object): keep its JSON form.
	return strings.TrimSpace(string(raw))
}

// stripFences removes a markdown code fence some models wrap JSON in.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
