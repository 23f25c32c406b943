package matching

import (
	"context"
	"sort"

	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/domain/recommendation"
	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/google/uuid"
)

const (
	FallbackScore     = 0.5
	FallbackReasoning = "AI-generated match"

	// DefaultCandidateCap bounds the batch sent to the scorer when
	// embeddings are available.
	DefaultCandidateCap = 10
)

// ScoreResult holds per-job scores and reasoning aligned with the input
// descriptions.
type ScoreResult struct {
	Scores    []float64
	Reasoning []string
}

// FallbackResult is the uniform result used when scoring is unavailable.
func FallbackResult(n int) ScoreResult {
	out := ScoreResult{Scores: make([]float64, n), Reasoning: make([]string, n)}
	for i := 0; i < n; i++ {
		out.Scores[i] = FallbackScore
		out.Reasoning[i] = FallbackReasoning
	}
	return out
}

// Scorer rates a résumé against a batch of job descriptions in one call.
// Implementations never fail; they degrade to FallbackResult.
type Scorer interface {
	Score(ctx context.Context, resumeText string, jobDescriptions []string) ScoreResult
}

type Candidate struct {
	UserID    uuid.UUID
	ResumeID  uuid.UUID
	RawText   string
	Profile   resume.ParsedProfile
	Embedding []float32
}

type Assembler struct {
	scorer       Scorer
	candidateCap int
	minScore     float64
}

func NewAssembler(scorer Scorer) *Assembler {
	return &Assembler{
		scorer:       scorer,
		candidateCap: DefaultCandidateCap,
		minScore:     recommendation.MinimumScore,
	}
}

// Assemble scores jobs for the candidate and returns the recommendations at
// or above the minimum score, highest first. Ties keep input order.
func (a *Assembler) Assemble(ctx context.Context, c Candidate, jobs []job.Posting) []recommendation.Recommendation {
	if len(jobs) == 0 || a == nil || a.scorer == nil {
		return []recommendation.Recommendation{}
	}

	candidates := TopCandidates(c.Embedding, jobs, a.candidateCap)

	descs := make([]string, len(candidates))
	for i, j := range candidates {
		descs[i] = j.ScoringDescription()
	}

	res := a.scorer.Score(ctx, c.RawText, descs)

	years := c.Profile.ExperienceYears()
	out := make([]recommendation.Recommendation, 0, len(candidates))
	for i, j := range candidates {
		score := FallbackScore
		if i < len(res.Scores) {
			score = clamp01(res.Scores[i])
		}
		if score < a.minScore {
			continue
		}

		reasoning := FallbackReasoning
		if i < len(res.Reasoning) && res.Reasoning[i] != "" {
			reasoning = res.Reasoning[i]
		}

		out = append(out, recommendation.Recommendation{
			UserID:          c.UserID,
			ResumeID:        c.ResumeID,
			JobID:           j.ID,
			MatchScore:      score,
			MatchedSkills:   MatchSkills(c.Profile.Skills, j.Skills()).Matched,
			ExperienceMatch: ExperienceMatches(years, j.ExperienceLevel),
			Reasoning:       reasoning,
		})
	}

	sort.SliceStable(out, func(i, k int) bool { return out[i].MatchScore > out[k].MatchScore })
	return out
}
