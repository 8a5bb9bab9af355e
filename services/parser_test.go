package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToolResponseFencedJSON(t *testing.T) {
	payload := map[string]any{
		"score":   8,
		"summary": "Solid idea.",
		"details": "The market timing looks right.",
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	for _, wrap := range []string{
		"```json\n" + string(raw) + "\n```",
		"```\n" + string(raw) + "\n```",
		string(raw),
	} {
		got, err := ParseToolResponse(wrap)
		require.NoError(t, err, "input %q", wrap)
		assert.Equal(t, 8, got.Score)
		assert.Equal(t, StatusStrong, got.Status)
		assert.Equal(t, "Solid idea.", got.Summary)
		assert.Equal(t, "The market timing looks right.", got.Details)
	}
}

func TestParseToolResponseProseAroundObject(t *testing.T) {
	content := "Here is my analysis:\n" +
		`{"score": 6, "summary": "Okay.", "details": "Some depth."}` +
		"\nLet me know if you need more."

	got, err := ParseToolResponse(content)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Score)
	assert.Equal(t, StatusModerate, got.Status)
}

func TestParseToolResponseIgnoresModelStatus(t *testing.T) {
	content := `{"score": 3, "status": "strong", "summary": "Weak.", "details": "Needs a real moat."}`

	got, err := ParseToolResponse(content)
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsWork, got.Status)
	assert.Equal(t, StatusFromScore(got.Score), got.Status)
}

func TestParseToolResponseClampsScore(t *testing.T) {
	content := `{"score": 14.6, "summary": "Too good.", "details": "Off the chart."}`

	got, err := ParseToolResponse(content)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, StatusStrong, got.Status)
}

func TestParseToolResponseMalformed(t *testing.T) {
	_, err := ParseToolResponse("the model rambled with no json at all")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestParseToolResponseIncomplete(t *testing.T) {
	tests := []struct {
		name    string
		content string
		missing []string
	}{
		{"no score", `{"summary": "s", "details": "d"}`, []string{"score"}},
		{"no summary", `{"score": 5, "details": "d"}`, []string{"summary"}},
		{"no details", `{"score": 5, "summary": "s"}`, []string{"details"}},
		{"blank strings", `{"score": 5, "summary": "  ", "details": ""}`, []string{"summary", "details"}},
		{"empty object", `{}`, []string{"score", "summary", "details"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToolResponse(tt.content)
			var incomplete *IncompleteResponseError
			require.ErrorAs(t, err, &incomplete)
			assert.Equal(t, tt.missing, incomplete.Missing)
		})
	}
}

func TestParseToolResponseInvalidScoreValue(t *testing.T) {
	_, err := ParseToolResponse(`{"score": 99999, "summary": "s", "details": "d"}`)
	assert.ErrorIs(t, err, ErrInvalidScore)
}

func TestExtractJSONNestedBraces(t *testing.T) {
	inner := `{"score": 7, "summary": "ok {really}", "details": "a \"quoted\" brace }"}`
	got := ExtractJSON("noise before " + inner + " noise after")
	assert.Equal(t, inner, got)
}
