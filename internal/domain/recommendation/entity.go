package recommendation

import (
	"time"

	"github.com/google/uuid"
)

// FreshnessWindow is how long a scored batch is reused before regeneration.
const FreshnessWindow = 24 * time.Hour

// MinimumScore is the persistence threshold for a scored job.
const MinimumScore = 0.3

type Recommendation struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ResumeID        uuid.UUID
	JobID           uuid.UUID
	MatchScore      float64
	MatchedSkills   []string
	ExperienceMatch bool
	Reasoning       string
	CreatedAt       time.Time
}

// View is a stored recommendation joined with its job, as listed to users.
type View struct {
	Recommendation

	JobTitle     string
	Company      string
	Location     *string
	JobType      *string
	SalaryMin    *int
	SalaryMax    *int
	Requirements []string
	Description  string
}

type FeedbackType string

const (
	FeedbackLike          FeedbackType = "like"
	FeedbackDislike       FeedbackType = "dislike"
	FeedbackApplied       FeedbackType = "applied"
	FeedbackNotInterested FeedbackType = "not_interested"
	FeedbackSaved         FeedbackType = "saved"
)

func (t FeedbackType) Valid() bool {
	switch t {
	case FeedbackLike, FeedbackDislike, FeedbackApplied, FeedbackNotInterested, FeedbackSaved:
		return true
	default:
		return false
	}
}

type Feedback struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	RecommendationID uuid.UUID
	Type             FeedbackType
	Reason           *string
	CreatedAt        time.Time
}
