package job

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	LevelEntry     ExperienceLevel = "entry"
	LevelMid       ExperienceLevel = "mid"
	LevelSenior    ExperienceLevel = "senior"
	LevelExecutive ExperienceLevel = "executive"
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Description string
	Industry    *string
	CompanySize *string
	Location    *string
	Website     *string
	CreatedAt   time.Time
}

// Posting is a seeded job opening. The request path only reads it.
type Posting struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Company         string
	Title           string
	Description     string
	Requirements    []string
	RequiredSkills  []string
	PreferredSkills []string
	ExperienceLevel ExperienceLevel
	Location        *string
	JobType         *string
	WorkArrangement *string
	SalaryMin       *int
	SalaryMax       *int
	Industry        *string
	IsActive        bool
	Embedding       []float32
	CreatedAt       time.Time
}

// Skills is required followed by preferred skills.
func (p Posting) Skills() []string {
	out := make([]string, 0, len(p.RequiredSkills)+len(p.PreferredSkills))
	out = append(out, p.RequiredSkills...)
	return append(out, p.PreferredSkills...)
}

// ScoringDescription is the one-line form sent to the AI scorer.
func (p Posting) ScoringDescription() string {
	return fmt.Sprintf("%s at %s: %s", p.Title, p.Company, p.Description)
}

// EmbeddingInput is the text embedded for a job at seed time.
func (p Posting) EmbeddingInput() string {
	s := p.Title + " " + p.Description
	for _, sk := range p.RequiredSkills {
		s += " " + sk
	}
	for _, sk := range p.PreferredSkills {
		s += " " + sk
	}
	return s
}
