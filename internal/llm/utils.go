package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fencePattern = regexp.MustCompile("(?is)^```[a-z]*\\s*(.*?)\\s*```$")

// removes a surrounding ```json ... ``` (or bare ```) fence and trims
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)

	if m := fencePattern.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}

	return s
}

// decodes a model reply into v. the reply may be fenced or wrap the
// object in prose, in which case the outermost {...} is decoded.
func DecodeJSON(raw string, v any) error {
	cleaned := StripCodeFences(raw)

	if err := json.Unmarshal([]byte(cleaned), v); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return fmt.Errorf("no JSON object in model reply")
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), v); err != nil {
		return fmt.Errorf("failed to decode model reply: %w", err)
	}

	return nil
}
