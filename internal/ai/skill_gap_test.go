package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkillGap_ParsesModelOutput(t *testing.T) {
	c := &stubCompleter{out: `{"missingSkills":["Kubernetes"],"skillImprovements":["Go"],"recommendedCourses":[{"title":"K8s 101","description":"intro"}]}`}

	got := NewSkillGapAnalyzer(c, nil).Analyze(context.Background(), []string{"Go"}, []string{"Go", "Kubernetes"})

	assert.Equal(t, []string{"Kubernetes"}, got.MissingSkills)
	assert.Equal(t, []string{"Go"}, got.SkillImprovements)
	assert.Equal(t, "K8s 101", got.RecommendedCourses[0].Title)
	assert.Equal(t, 0.3, c.last.Temperature)
}

func TestSkillGap_Fallback(t *testing.T) {
	c := &stubCompleter{err: errors.New("down")}

	got := NewSkillGapAnalyzer(c, nil).Analyze(context.Background(), []string{"python"}, []string{"Python", "SQL"})

	assert.Equal(t, []string{"SQL"}, got.MissingSkills)
	assert.Empty(t, got.SkillImprovements)
	assert.NotNil(t, got.RecommendedCourses)
}

func TestCoach_Prompt(t *testing.T) {
	c := &stubCompleter{out: "Polish your summary."}

	out, err := NewCoach(c).Ask(context.Background(), "How is my resume?", nil)

	assert.NoError(t, err)
	assert.Equal(t, "Polish your summary.", out)
	assert.Contains(t, c.last.Prompt, "- Skills: None")
	assert.Contains(t, c.last.Prompt, "User Question: How is my resume?")
}
