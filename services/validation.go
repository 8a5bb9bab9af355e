package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/validly/validator_server/logging"
	"go.uber.org/zap"
)

// ToolResult is one tool's normalized verdict, both the API shape and
// the stored report_data element.
type ToolResult struct {
	ID      string `json:"id"`
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Score   int    `json:"score"`
	Status  string `json:"status"`
	Summary string `json:"summary"`
	Details string `json:"details"`
}

// ToolFailure records a tool whose model call failed outright, before a
// fallback result could be produced.
type ToolFailure struct {
	Tool  string `json:"tool"`
	Error string `json:"error"`
}

// RunResult aggregates one validation run.
type RunResult struct {
	Results      []ToolResult
	AverageScore float64
	Failures     []ToolFailure
	TotalTools   int
}

func (r *RunResult) CompletedTools() int {
	return len(r.Results)
}

var (
	ErrEmptyIdea      = errors.New("business idea is required")
	ErrNoTools        = errors.New("at least one validation tool is required")
	ErrAllToolsFailed = errors.New("all validation tools failed")
)

// ChatClient is the slice of the model API the orchestrator needs.
// *openai.Client satisfies it.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Validator runs the per-tool prompt → model → parse → normalize
// pipeline, strictly sequentially, with an inter-tool delay so the
// upstream API is not hammered.
type Validator struct {
	Client    ChatClient
	Catalog   *Catalog
	Retry     RetryPolicy
	Model     string
	ToolDelay time.Duration
	MaxTokens int

	sleep func(ctx context.Context, d time.Duration) error
}

func NewValidator(client ChatClient, catalog *Catalog) *Validator {
	model := os.Getenv("VALIDATOR_MODEL")
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Validator{
		Client:    client,
		Catalog:   catalog,
		Retry:     DefaultRetryPolicy(),
		Model:     model,
		ToolDelay: time.Second,
		MaxTokens: 4000,
	}
}

// ValidateIdea is the env-configured entry point the HTTP layer uses.
func ValidateIdea(ctx context.Context, businessIdea string, selectedTools []string) (*RunResult, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}
	v := NewValidator(openai.NewClient(apiKey), DefaultCatalog())
	return v.Run(ctx, businessIdea, selectedTools)
}

func (v *Validator) Run(ctx context.Context, businessIdea string, selectedTools []string) (*RunResult, error) {
	if strings.TrimSpace(businessIdea) == "" {
		return nil, ErrEmptyIdea
	}
	if len(selectedTools) == 0 {
		return nil, ErrNoTools
	}

	// Resolve every tool up front so an unknown id rejects the run
	// before any network call.
	tools := make([]Tool, 0, len(selectedTools))
	for _, id := range selectedTools {
		tool, err := v.Catalog.Lookup(id)
		if err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}

	sleep := v.sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	run := &RunResult{TotalTools: len(tools)}

	for i, tool := range tools {
		logging.L().Info("Validating with tool",
			zap.String("tool", tool.ID),
			zap.Int("position", i+1),
			zap.Int("total", len(tools)))

		result, err := v.runTool(ctx, businessIdea, tool)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logging.L().Error("Tool failed", zap.String("tool", tool.ID), zap.Error(err))
			run.Failures = append(run.Failures, ToolFailure{Tool: tool.ID, Error: err.Error()})
		} else {
			logging.L().Info("Tool completed",
				zap.String("tool", tool.ID),
				zap.Int("score", result.Score))
			run.Results = append(run.Results, *result)
		}

		if i < len(tools)-1 && v.ToolDelay > 0 {
			if err := sleep(ctx, v.ToolDelay); err != nil {
				return nil, err
			}
		}
	}

	if len(run.Results) == 0 {
		return nil, fmt.Errorf("%w: %d of %d tools errored", ErrAllToolsFailed, len(run.Failures), run.TotalTools)
	}

	run.AverageScore = averageScore(run.Results)
	return run, nil
}

func (v *Validator) runTool(ctx context.Context, businessIdea string, tool Tool) (*ToolResult, error) {
	prompt := buildPrompt(businessIdea, tool)

	var content string
	err := v.Retry.Do(ctx, func(ctx context.Context) error {
		resp, err := v.Client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       v.Model,
			Temperature: 0.7,
			MaxTokens:   v.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no choices returned from model")
		}
		content = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		if IsRetryable(err) {
			// Retries exhausted on rate limiting: degrade to the
			// fallback rather than losing the tool.
			return fallbackResult(tool, rateLimitedSummary, rateLimitedDetails), nil
		}
		return nil, err
	}

	parsed, err := ParseToolResponse(content)
	if err != nil {
		logging.L().Warn("Unparseable model reply, substituting fallback",
			zap.String("tool", tool.ID),
			zap.Error(err))
		return fallbackResult(tool, parseFallbackSummary, parseFallbackDetails), nil
	}

	return &ToolResult{
		ID:      tool.ID,
		Icon:    tool.Icon,
		Title:   tool.Title,
		Score:   parsed.Score,
		Status:  parsed.Status,
		Summary: parsed.Summary,
		Details: parsed.Details,
	}, nil
}

func buildPrompt(businessIdea string, tool Tool) string {
	return fmt.Sprintf(`Business Idea: %q

%s

IMPORTANT: You must respond with a valid JSON object in this exact format (no markdown, no code blocks):
{
  "score": [number between 1-10],
  "summary": "[brief one-sentence summary of the analysis]",
  "details": "[detailed analysis as a single string with comprehensive insights, recommendations, and specific examples. Use line breaks (\n) for formatting if needed]"
}

Make sure the response is valid JSON only, with no additional text or formatting.`, businessIdea, tool.Prompt)
}

const (
	// fallbackScore is the smallest score whose derived status is
	// moderate; status is always derived, never pinned alongside it.
	fallbackScore = 6

	parseFallbackSummary = "Analysis completed with partial results due to response format issues."
	parseFallbackDetails = "The AI analysis was completed but encountered formatting issues. The core evaluation suggests moderate potential with areas for improvement. Consider refining your business model and conducting additional market research."

	rateLimitedSummary = "Analysis could not be fully completed due to temporary service load."
	rateLimitedDetails = "The analysis service was rate limited and the request could not complete after several retries. The core evaluation defaults to moderate potential. Please run this tool again in a few minutes."
)

func fallbackResult(tool Tool, summary, details string) *ToolResult {
	return &ToolResult{
		ID:      tool.ID,
		Icon:    tool.Icon,
		Title:   tool.Title,
		Score:   fallbackScore,
		Status:  StatusFromScore(fallbackScore),
		Summary: summary,
		Details: details,
	}
}

// averageScore is the mean of valid (>0) scores, capped at 10 and
// rounded to one decimal. With no valid scores it falls back to 5.0.
func averageScore(results []ToolResult) float64 {
	sum := 0
	count := 0
	for _, r := range results {
		if r.Score > 0 {
			sum += r.Score
			count++
		}
	}
	if count == 0 {
		return 5.0
	}
	avg := math.Min(float64(sum)/float64(count), 10)
	return math.Round(avg*10) / 10
}
