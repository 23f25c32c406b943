package matching

import (
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/job"
)

var minYearsByLevel = map[job.ExperienceLevel]int{
	job.LevelEntry:     0,
	job.LevelMid:       2,
	job.LevelSenior:    5,
	job.LevelExecutive: 10,
}

// ExperienceMatches reports whether years meets the level's minimum. Unknown
// or empty levels match.
func ExperienceMatches(years int, level job.ExperienceLevel) bool {
	minYears, ok := minYearsByLevel[job.ExperienceLevel(strings.ToLower(strings.TrimSpace(string(level))))]
	if !ok {
		return true
	}
	return years >= minYears
}
