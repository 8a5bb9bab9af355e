package services

import "fmt"

// Tool is one fixed evaluation dimension: its prompt plus the display
// metadata echoed back in every result.
type Tool struct {
	ID     string
	Icon   string
	Title  string
	Prompt string
}

// Catalog holds the tool set in display order. The set is data, not an
// enum: deployments may run with fewer or more tools.
type Catalog struct {
	tools map[string]Tool
	order []string
}

var ErrUnknownTool = fmt.Errorf("unknown validation tool")

func NewCatalog(tools ...Tool) *Catalog {
	c := &Catalog{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := c.tools[t.ID]; exists {
			continue
		}
		c.tools[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	return c
}

func (c *Catalog) Lookup(id string) (Tool, error) {
	t, ok := c.tools[id]
	if !ok {
		return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, id)
	}
	return t, nil
}

func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}

// DefaultCatalog is the five-tool production set.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Tool{
			ID:    "business-idea",
			Icon:  "💡",
			Title: "Business Idea Validator",
			Prompt: `Analyze this business idea for overall viability and potential. Focus on:
- Innovation and uniqueness
- Scalability potential
- Value proposition clarity
- Market timing
- Implementation feasibility

Provide a comprehensive analysis with specific recommendations and actionable insights. Be detailed and thorough in your response.`,
		},
		Tool{
			ID:    "problem-solution",
			Icon:  "❓",
			Title: "Problem-Solution Fit",
			Prompt: `Evaluate the problem-solution fit for this business idea. Analyze:
- Problem identification and validation
- Solution relevance and effectiveness
- User experience considerations
- Pain point severity
- Solution-market alignment

Provide detailed analysis with specific examples and actionable recommendations.`,
		},
		Tool{
			ID:    "target-audience",
			Icon:  "👥",
			Title: "Target Audience Analysis",
			Prompt: `Analyze the target audience for this business idea. Examine:
- Market size and demographics
- User personas and psychographics
- Market segmentation opportunities
- Accessibility and reach
- Customer journey mapping

Provide comprehensive analysis with detailed insights and specific recommendations.`,
		},
		Tool{
			ID:    "competitor-analysis",
			Icon:  "📊",
			Title: "Competitor Analysis",
			Prompt: `Assess the competitive landscape for this business idea. Examine:
- Direct and indirect competitors
- Differentiation and defensibility
- Market saturation and entry barriers
- Competitor strengths and weaknesses
- Positioning opportunities

Provide comprehensive analysis with detailed insights and specific recommendations.`,
		},
		Tool{
			ID:    "go-to-market",
			Icon:  "🚀",
			Title: "Go-to-Market Strategy",
			Prompt: `Assess the go-to-market strategy potential for this business idea. Review:
- Distribution channel opportunities
- Pricing strategy considerations
- Marketing approach effectiveness
- Sales process optimization
- Customer acquisition and retention

Provide detailed tactical recommendations and comprehensive strategy analysis.`,
		},
	)
}
