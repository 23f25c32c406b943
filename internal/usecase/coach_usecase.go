package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Knnivedh/job-rec/internal/ai"
	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/logger"

	"go.uber.org/zap"
)

var ErrCoachFailed = errors.New("Failed to get response")

type CoachAnswer struct {
	Response string
	// ATSScore is set only when the question is about ATS or scoring.
	ATSScore *int
}

// CoachError carries the upstream failure shown as details.
type CoachError struct {
	Details string
}

func (e *CoachError) Error() string { return ErrCoachFailed.Error() + ": " + e.Details }
func (e *CoachError) Unwrap() error { return ErrCoachFailed }

type CareerAdvisor interface {
	Ask(ctx context.Context, message string, profile *resume.ParsedProfile) (string, error)
}

type GapAnalyzer interface {
	Analyze(ctx context.Context, userSkills, requirements []string) ai.SkillGap
}

type CoachUsecase interface {
	Ask(ctx context.Context, message string, profile *resume.ParsedProfile) (CoachAnswer, error)
	SkillGap(ctx context.Context, userSkills, requirements []string) ai.SkillGap
}

type Coach struct {
	advisor CareerAdvisor
	gaps    GapAnalyzer
	logger  *zap.Logger
}

func NewCoachUsecase(advisor CareerAdvisor, gaps GapAnalyzer, log *zap.Logger) *Coach {
	return &Coach{advisor: advisor, gaps: gaps, logger: logger.OrNop(log)}
}

func (u *Coach) Ask(ctx context.Context, message string, profile *resume.ParsedProfile) (CoachAnswer, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return CoachAnswer{}, ErrMessageRequired
	}

	resp, err := u.advisor.Ask(ctx, message, profile)
	if err != nil {
		u.logger.Warn("[Coach] completion failed", zap.Error(err))
		return CoachAnswer{}, &CoachError{Details: err.Error()}
	}

	out := CoachAnswer{Response: resp}
	lower := strings.ToLower(message)
	if strings.Contains(lower, "ats") || strings.Contains(lower, "score") {
		p := resume.EmptyProfile()
		if profile != nil {
			p = *profile
		}
		s := matching.ATSScore(p)
		out.ATSScore = &s
	}
	return out, nil
}

func (u *Coach) SkillGap(ctx context.Context, userSkills, requirements []string) ai.SkillGap {
	return u.gaps.Analyze(ctx, userSkills, requirements)
}

var _ CoachUsecase = (*Coach)(nil)
