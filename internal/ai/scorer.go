package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/pkg/llmjson"

	"go.uber.org/zap"
)

const scorerSystemPrompt = "You are a precise job matching AI that returns only valid JSON."

var scoreSchema = llmjson.MustSchema(`{
	"type": "object",
	"required": ["scores", "reasoning"],
	"properties": {
		"scores": {"type": "array", "items": {"type": "number"}},
		"reasoning": {"type": "array", "items": {"type": "string"}}
	}
}`)

type scoreResponse struct {
	Scores    []float64 `json:"scores"`
	Reasoning []string  `json:"reasoning"`
}

// Scorer rates a résumé against job descriptions with one chat completion.
// It makes a single attempt and never returns an error: any failure yields
// matching.FallbackResult.
type Scorer struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewScorer(completer llm.Completer, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{completer: completer, logger: logger}
}

func (s *Scorer) Score(ctx context.Context, resumeText string, jobDescriptions []string) matching.ScoreResult {
	n := len(jobDescriptions)
	if n == 0 {
		return matching.ScoreResult{Scores: []float64{}, Reasoning: []string{}}
	}
	if s == nil || s.completer == nil {
		return matching.FallbackResult(n)
	}

	raw, err := s.completer.Complete(ctx, llm.ChatRequest{
		System:      scorerSystemPrompt,
		Prompt:      buildScoringPrompt(resumeText, jobDescriptions),
		Temperature: 0.1,
		MaxTokens:   2000,
	})
	if err != nil {
		s.logger.Warn("[Scorer] completion failed, using fallback scores", zap.Int("jobs", n), zap.Error(err))
		return matching.FallbackResult(n)
	}

	var resp scoreResponse
	if err := llmjson.Decode(raw, scoreSchema, &resp); err != nil {
		s.logger.Warn("[Scorer] unusable response, using fallback scores", zap.Int("jobs", n), zap.Error(err))
		return matching.FallbackResult(n)
	}

	return normalizeScores(resp, n)
}

// normalizeScores aligns the model output to n entries, clamping scores and
// filling gaps with the fallback values.
func normalizeScores(resp scoreResponse, n int) matching.ScoreResult {
	out := matching.FallbackResult(n)
	for i := 0; i < n; i++ {
		if i < len(resp.Scores) {
			out.Scores[i] = clamp01(resp.Scores[i])
		}
		if i < len(resp.Reasoning) {
			if r := strings.TrimSpace(resp.Reasoning[i]); r != "" {
				out.Reasoning[i] = r
			}
		}
	}
	return out
}

func buildScoringPrompt(resumeText string, jobDescriptions []string) string {
	var jobs strings.Builder
	for i, d := range jobDescriptions {
		if i > 0 {
			jobs.WriteString("\n")
		}
		fmt.Fprintf(&jobs, "%d. %s", i+1, d)
	}

	return fmt.Sprintf(`
You are an AI job matching expert. Analyze the following resume and job descriptions to provide match scores and reasoning.

Resume:
%s

Job Descriptions:
%s

For each job, provide:
1. A match score from 0.0 to 1.0 (where 1.0 is perfect match)
2. Brief reasoning for the score

Return your response as JSON in this exact format:
{
  "scores": [0.8, 0.6, 0.9],
  "reasoning": [
    "Strong match due to relevant skills and experience",
    "Partial match - missing some required skills",
    "Excellent match with all requirements met"
  ]
}
`, resumeText, jobs.String())
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var _ matching.Scorer = (*Scorer)(nil)
