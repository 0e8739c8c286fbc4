package analyzer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const snippetLimit = 200

// DecodeResult parses a model reply into a JSON object. Replies wrapped in a
// markdown code fence or surrounded by prose are unwrapped once before failing.
func DecodeResult(content string) (map[string]any, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrDecode)
	}

	var out map[string]any
	directErr := json.Unmarshal([]byte(trimmed), &out)
	if directErr == nil && out != nil {
		return out, nil
	}
	if directErr == nil {
		directErr = errors.New("payload is not a JSON object")
	}

	sanitized := extractObject(trimmed)
	if sanitized == "" || sanitized == trimmed {
		return nil, fmt.Errorf("%w: %v (payload snippet: %s)", ErrDecode, directErr, snippet(trimmed))
	}

	out = nil
	if err := json.Unmarshal([]byte(sanitized), &out); err != nil || out == nil {
		if err == nil {
			err = errors.New("payload is not a JSON object")
		}
		return nil, fmt.Errorf("%w: %v (sanitized payload snippet: %s)", ErrDecode, err, snippet(sanitized))
	}
	return out, nil
}

func extractObject(content string) string {
	trimmed := strings.TrimSpace(stripCodeFence(content))
	if trimmed == "" {
		return ""
	}
	if trimmed[0] == '{' {
		return trimmed
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		return strings.TrimSpace(trimmed[start : end+1])
	}
	return ""
}

func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		// drop the language tag line, e.g. ```json
		trimmed = trimmed[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
}

func snippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= snippetLimit {
		return s
	}
	return s[:snippetLimit] + "..."
}
