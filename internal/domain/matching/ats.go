package matching

import (
	"encoding/json"
	"math"

	"github.com/Knnivedh/job-rec/internal/domain/resume"
)

// ATSScore is a 0-100 completeness heuristic over a parsed profile.
func ATSScore(p resume.ParsedProfile) int {
	score := 0.0

	if p.ContactInfo.Email != nil && *p.ContactInfo.Email != "" {
		score += 5
	}
	if p.ContactInfo.Phone != nil && *p.ContactInfo.Phone != "" {
		score += 5
	}

	score += math.Min(float64(len(p.Skills))*2.5, 25)
	score += math.Min(float64(len(p.Experience))*12.5, 25)
	score += math.Min(float64(len(p.Education))*7.5, 15)

	if b, err := json.Marshal(p); err == nil {
		if len(b) > 500 {
			score += 7.5
		}
		if len(b) > 1000 {
			score += 7.5
		}
	}

	if p.Summary != nil && *p.Summary != "" {
		score += 10
	}

	return int(math.Round(math.Min(score, 100)))
}
