package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

var (
	jsonFence  = regexp.MustCompile("(?is)```json\\s*(.*?)\\s*```")
	plainFence = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

var errNoJSONCandidate = errors.New("no JSON content found")

// DecodeModelJSON decodes model output that may be wrapped in a markdown code fence.
// The raw text is tried first, then the first ```json block, then the first plain ``` block.
func DecodeModelJSON(text string, target any) error {
	var lastErr error = errNoJSONCandidate

	for _, candidate := range jsonCandidates(text) {
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
			lastErr = err
			continue
		}
		// Syntactically valid JSON is final; type errors are not retried on other candidates.
		return json.Unmarshal(raw, target)
	}

	return lastErr
}

func jsonCandidates(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	candidates := []string{text}
	if m := jsonFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}
	if m := plainFence.FindStringSubmatch(text); m != nil {
		candidates = append(candidates, strings.TrimSpace(m[1]))
	}

	return candidates
}
