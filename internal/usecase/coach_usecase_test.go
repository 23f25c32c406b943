package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Knnivedh/job-rec/internal/ai"
	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdvisor struct {
	out string
	err error
}

func (m mockAdvisor) Ask(context.Context, string, *resume.ParsedProfile) (string, error) {
	return m.out, m.err
}

type mockGaps struct{ gap ai.SkillGap }

func (m mockGaps) Analyze(context.Context, []string, []string) ai.SkillGap { return m.gap }

func TestCoach_RequiresMessage(t *testing.T) {
	uc := NewCoachUsecase(mockAdvisor{}, mockGaps{}, nil)
	_, err := uc.Ask(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, ErrMessageRequired)
}

func TestCoach_ATSScoreOnlyWhenAsked(t *testing.T) {
	uc := NewCoachUsecase(mockAdvisor{out: "Add metrics."}, mockGaps{}, nil)
	p := resume.EmptyProfile()
	p.Skills = []string{"Go", "SQL"}

	got, err := uc.Ask(context.Background(), "How do I improve?", &p)
	require.NoError(t, err)
	assert.Equal(t, "Add metrics.", got.Response)
	assert.Nil(t, got.ATSScore)

	got, err = uc.Ask(context.Background(), "What is my ATS score?", &p)
	require.NoError(t, err)
	require.NotNil(t, got.ATSScore)
	assert.Equal(t, 5, *got.ATSScore)
}

func TestCoach_UpstreamFailure(t *testing.T) {
	uc := NewCoachUsecase(mockAdvisor{err: errors.New("503")}, mockGaps{}, nil)
	_, err := uc.Ask(context.Background(), "hi", nil)

	var ce *CoachError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "503", ce.Details)
	assert.ErrorIs(t, err, ErrCoachFailed)
}

func TestCoach_SkillGapDelegates(t *testing.T) {
	gap := ai.SkillGap{MissingSkills: []string{"Rust"}}
	uc := NewCoachUsecase(mockAdvisor{}, mockGaps{gap: gap}, nil)
	assert.Equal(t, gap, uc.SkillGap(context.Background(), []string{"Go"}, []string{"Rust"}))
}
