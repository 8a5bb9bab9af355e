package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReportHTML(t *testing.T) {
	results := []ToolResult{
		{ID: "business-idea", Icon: "💡", Title: "Business Idea Validator", Score: 9, Status: StatusStrong, Summary: "Great.", Details: "Line one.\nLine two."},
		{ID: "go-to-market", Icon: "🚀", Title: "Go-to-Market Strategy", Score: 4, Status: StatusNeedsWork, Summary: "Thin.", Details: "No channel plan."},
	}

	html, err := RenderReportHTML(results, 6.5, "A subscription box for rare houseplants")
	require.NoError(t, err)

	assert.Contains(t, html, "Business Idea Validation Report")
	assert.Contains(t, html, "A subscription box for rare houseplants")
	assert.Contains(t, html, "6.5/10")
	assert.Contains(t, html, "Based on 2 validation tools")
	assert.Contains(t, html, "Business Idea Validator")
	assert.Contains(t, html, "Score: 9/10")
	assert.Contains(t, html, "STRONG")
	assert.Contains(t, html, "NEEDS-WORK")
	assert.Contains(t, html, "#10b981", "strong scores render green")
	assert.Contains(t, html, "#ef4444", "weak scores render red")
	assert.Contains(t, html, "page-break")
}

func TestRenderReportHTMLSingularTool(t *testing.T) {
	results := []ToolResult{
		{ID: "business-idea", Icon: "💡", Title: "Business Idea Validator", Score: 7, Status: StatusModerate, Summary: "Fine.", Details: "Fine."},
	}

	html, err := RenderReportHTML(results, 7.0, "an idea")
	require.NoError(t, err)

	assert.Contains(t, html, "Based on 1 validation tool")
	assert.NotContains(t, html, "1 validation tools")
}

func TestRenderReportHTMLEscapesIdeaText(t *testing.T) {
	html, err := RenderReportHTML([]ToolResult{
		{ID: "business-idea", Title: "Business Idea Validator", Score: 5, Status: StatusNeedsWork, Summary: "s", Details: "d"},
	}, 5.0, `<script>alert("x")</script>`)
	require.NoError(t, err)

	assert.NotContains(t, html, `<script>alert`)
	assert.Contains(t, html, "&lt;script&gt;")
}
