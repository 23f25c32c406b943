package dto

import (
	"strconv"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/recommendation"

	"github.com/google/uuid"
)

const FeedbackSavedMessage = "Feedback saved successfully"

type RecommendationResponse struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	JobTitle        string    `json:"job_title"`
	Company         string    `json:"company"`
	Location        *string   `json:"location"`
	JobType         *string   `json:"job_type"`
	SalaryRange     *string   `json:"salary_range"`
	Requirements    []string  `json:"requirements"`
	Description     string    `json:"description"`
	MatchScore      float64   `json:"match_score"`
	SkillsMatch     []string  `json:"skills_match"`
	ExperienceMatch bool      `json:"experience_match"`
	Reasoning       string    `json:"reasoning"`
	CreatedAt       time.Time `json:"created_at"`
}

type RecommendationListResponse struct {
	Recommendations []RecommendationResponse `json:"recommendations"`
}

type FeedbackRequest struct {
	RecommendationID string  `json:"recommendation_id"`
	FeedbackType     string  `json:"feedback_type"`
	FeedbackReason   *string `json:"feedback_reason"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewRecommendationListResponse(views []recommendation.View) RecommendationListResponse {
	out := make([]RecommendationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, RecommendationResponse{
			ID:              v.ID,
			JobID:           v.JobID,
			JobTitle:        orDefault(v.JobTitle, "Unknown Title"),
			Company:         orDefault(v.Company, "Unknown Company"),
			Location:        v.Location,
			JobType:         v.JobType,
			SalaryRange:     FormatSalaryRange(v.SalaryMin, v.SalaryMax),
			Requirements:    nonNil(v.Requirements),
			Description:     v.Description,
			MatchScore:      v.MatchScore,
			SkillsMatch:     nonNil(v.MatchedSkills),
			ExperienceMatch: v.ExperienceMatch,
			Reasoning:       v.Reasoning,
			CreatedAt:       v.CreatedAt,
		})
	}
	return RecommendationListResponse{Recommendations: out}
}

// FormatSalaryRange renders "$120,000 - $180,000", or nil unless both bounds
// are set and non-zero.
func FormatSalaryRange(min, max *int) *string {
	if min == nil || max == nil || *min == 0 || *max == 0 {
		return nil
	}
	s := "$" + groupThousands(*min) + " - $" + groupThousands(*max)
	return &s
}

func groupThousands(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	digits := strconv.Itoa(n)
	out := make([]byte, 0, len(digits)+len(digits)/3)
	for i := range len(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, digits[i])
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
