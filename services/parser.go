package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ParsedResult is a tool reply after extraction and normalization. It is
// missing only the catalog fields (icon, title).
type ParsedResult struct {
	Score   int
	Status  string
	Summary string
	Details string
}

var ErrMalformedResponse = errors.New("malformed model response")

// IncompleteResponseError reports which required fields the model reply
// was missing or had the wrong type for.
type IncompleteResponseError struct {
	Missing []string
}

func (e *IncompleteResponseError) Error() string {
	return fmt.Sprintf("incomplete model response: missing %s", strings.Join(e.Missing, ", "))
}

var fenceRe = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// ExtractJSON pulls the JSON candidate out of a raw model reply. Fenced
// code blocks win; failing that, the first balanced top-level object;
// failing that, the trimmed text as-is.
func ExtractJSON(content string) string {
	if m := fenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}

	start := -1
	depth := 0
	inString := false
	escaped := false
	for i, c := range content {
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if start == -1 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 {
					return content[start : i+1]
				}
			}
		}
	}

	return strings.TrimSpace(content)
}

// ParseToolResponse turns a raw model reply into a normalized result.
// The model's own status field, if any, is discarded: status is always
// recomputed from the clamped score.
func ParseToolResponse(content string) (*ParsedResult, error) {
	candidate := ExtractJSON(content)

	var raw struct {
		Score   *float64 `json:"score"`
		Summary string   `json:"summary"`
		Details string   `json:"details"`
	}
	if err := json.Unmarshal([]byte(candidate), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var missing []string
	if raw.Score == nil {
		missing = append(missing, "score")
	}
	if strings.TrimSpace(raw.Summary) == "" {
		missing = append(missing, "summary")
	}
	if strings.TrimSpace(raw.Details) == "" {
		missing = append(missing, "details")
	}
	if len(missing) > 0 {
		return nil, &IncompleteResponseError{Missing: missing}
	}

	score, err := ClampScore(*raw.Score)
	if err != nil {
		return nil, fmt.Errorf("score %v: %w", *raw.Score, err)
	}

	return &ParsedResult{
		Score:   score,
		Status:  StatusFromScore(score),
		Summary: raw.Summary,
		Details: raw.Details,
	}, nil
}
