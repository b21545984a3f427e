package resilient

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
)

// CleanResponse strips markdown code fences and surrounding whitespace from
// a raw collaborator response, leaving the JSON payload.
func CleanResponse(raw []byte) []byte {
	cleaned := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(cleaned, []byte("```")) {
		return cleaned
	}

	// Drop the opening fence line (``` or ```json).
	if idx := bytes.IndexByte(cleaned, '\n'); idx >= 0 {
		cleaned = cleaned[idx+1:]
	} else {
		cleaned = bytes.TrimPrefix(cleaned, []byte("```"))
	}
	if idx := bytes.LastIndex(cleaned, []byte("```")); idx >= 0 {
		cleaned = cleaned[:idx]
	}
	return bytes.TrimSpace(cleaned)
}

// ParseLenient decodes collaborator JSON, tolerating markdown fences,
// comments, and trailing commas. A parse failure is an ordinary error so the
// caller's retry loop can treat it as a failed attempt.
func ParseLenient[T any](raw []byte) (T, error) {
	var out T

	cleaned := CleanResponse(raw)
	if len(cleaned) == 0 {
		return out, fmt.Errorf("empty response")
	}

	standardized, err := hujson.Standardize(cleaned)
	if err != nil {
		// Not even lenient JSON; let Unmarshal report the original text.
		standardized = cleaned
	}
	if err := json.Unmarshal(standardized, &out); err != nil {
		return out, fmt.Errorf("parse response: %w", err)
	}
	return out, nil
}
