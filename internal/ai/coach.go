package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
)

// Coach answers free-form career questions grounded in a parsed profile.
type Coach struct {
	completer llm.Completer
}

func NewCoach(completer llm.Completer) *Coach {
	return &Coach{completer: completer}
}

func (c *Coach) Ask(ctx context.Context, message string, profile *resume.ParsedProfile) (string, error) {
	if c == nil || c.completer == nil {
		return "", llm.ErrNotConfigured
	}
	return c.completer.Complete(ctx, llm.ChatRequest{
		Prompt:      buildCoachPrompt(message, profile),
		Temperature: 0.7,
		MaxTokens:   2000,
	})
}

func buildCoachPrompt(message string, p *resume.ParsedProfile) string {
	skills := "None"
	expCount, eduCount := 0, 0
	if p != nil {
		if len(p.Skills) > 0 {
			skills = strings.Join(p.Skills, ", ")
		}
		expCount = len(p.Experience)
		eduCount = len(p.Education)
	}

	return fmt.Sprintf(`
Resume Analysis:
- Skills: %s
- Experience: %d positions
- Education: %d degrees

User Question: %s

Please provide helpful, specific advice based on this resume data.
`, skills, expCount, eduCount, message)
}
