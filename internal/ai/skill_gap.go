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

type Course struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
}

type SkillGap struct {
	MissingSkills      []string `json:"missing_skills"`
	SkillImprovements  []string `json:"skill_improvements"`
	RecommendedCourses []Course `json:"recommended_courses"`
}

var skillGapSchema = llmjson.MustSchema(`{
	"type": "object",
	"properties": {
		"missingSkills": {"type": "array", "items": {"type": "string"}},
		"skillImprovements": {"type": "array", "items": {"type": "string"}},
		"recommendedCourses": {"type": "array", "items": {"type": "object"}}
	}
}`)

type skillGapResponse struct {
	MissingSkills      []string `json:"missingSkills"`
	SkillImprovements  []string `json:"skillImprovements"`
	RecommendedCourses []Course `json:"recommendedCourses"`
}

type SkillGapAnalyzer struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewSkillGapAnalyzer(completer llm.Completer, logger *zap.Logger) *SkillGapAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SkillGapAnalyzer{completer: completer, logger: logger}
}

// Analyze asks the model for a gap analysis. On any failure it returns the
// requirements no user skill matches, with no improvements or courses.
func (a *SkillGapAnalyzer) Analyze(ctx context.Context, userSkills, requirements []string) SkillGap {
	fallback := SkillGap{
		MissingSkills:      matching.MissingSkills(userSkills, requirements),
		SkillImprovements:  []string{},
		RecommendedCourses: []Course{},
	}
	if a == nil || a.completer == nil {
		return fallback
	}

	raw, err := a.completer.Complete(ctx, llm.ChatRequest{
		System:      "You are a career development AI that provides skill gap analysis and learning recommendations.",
		Prompt:      buildSkillGapPrompt(userSkills, requirements),
		Temperature: 0.3,
		MaxTokens:   1500,
	})
	if err != nil {
		a.logger.Warn("[SkillGap] completion failed", zap.Error(err))
		return fallback
	}

	var resp skillGapResponse
	if err := llmjson.Decode(raw, skillGapSchema, &resp); err != nil {
		a.logger.Warn("[SkillGap] unusable response", zap.Error(err))
		return fallback
	}

	out := SkillGap{
		MissingSkills:      resp.MissingSkills,
		SkillImprovements:  resp.SkillImprovements,
		RecommendedCourses: resp.RecommendedCourses,
	}
	if out.MissingSkills == nil {
		out.MissingSkills = []string{}
	}
	if out.SkillImprovements == nil {
		out.SkillImprovements = []string{}
	}
	if out.RecommendedCourses == nil {
		out.RecommendedCourses = []Course{}
	}
	return out
}

func buildSkillGapPrompt(userSkills, requirements []string) string {
	return fmt.Sprintf(`
Analyze the skill gap between user skills and job requirements.

User Skills: %s

Job Requirements: %s

Provide:
1. Missing skills that the user needs to learn
2. Skills that need improvement
3. Recommended courses/resources

Return JSON in this format:
{
  "missingSkills": ["skill1", "skill2"],
  "skillImprovements": ["skill3", "skill4"],
  "recommendedCourses": [
    {
      "title": "Course Title",
      "description": "Course description",
      "url": "https://example.com"
    }
  ]
}
`, strings.Join(userSkills, ", "), strings.Join(requirements, ", "))
}
