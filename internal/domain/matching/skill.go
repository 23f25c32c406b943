package matching

import "strings"

type SkillMatch struct {
	Matched []string
	Ratio   float64
}

// MatchSkills compares skills case-insensitively, treating a pair as matching
// when either lowercased name contains the other. Matched holds the job skill
// names that were hit, in job order. Loose by design: "JS" hits many tokens.
func MatchSkills(userSkills, jobSkills []string) SkillMatch {
	jobs := normalizeSkills(jobSkills)
	if len(jobs) == 0 {
		return SkillMatch{Matched: []string{}, Ratio: 1.0}
	}
	users := normalizeSkills(userSkills)

	matched := make([]string, 0, len(jobs))
	for _, js := range jobs {
		if anyContains(users, js.lower) {
			matched = append(matched, js.name)
		}
	}

	return SkillMatch{
		Matched: matched,
		Ratio:   clamp01(float64(len(matched)) / float64(len(jobs))),
	}
}

// MissingSkills returns the job skills no user skill matches.
func MissingSkills(userSkills, jobSkills []string) []string {
	users := normalizeSkills(userSkills)
	out := make([]string, 0)
	for _, js := range normalizeSkills(jobSkills) {
		if !anyContains(users, js.lower) {
			out = append(out, js.name)
		}
	}
	return out
}

// SkillOverlapScore is the share of user skills that hit some job skill,
// capped at 1. A job without listed skills scores 0.5.
func SkillOverlapScore(userSkills, jobSkills []string) float64 {
	jobs := normalizeSkills(jobSkills)
	if len(jobs) == 0 {
		return 0.5
	}
	if len(userSkills) == 0 {
		return 0
	}

	hits := 0
	for _, us := range userSkills {
		u := strings.ToLower(strings.TrimSpace(us))
		if u == "" {
			continue
		}
		for _, js := range jobs {
			if strings.Contains(js.lower, u) || strings.Contains(u, js.lower) {
				hits++
				break
			}
		}
	}
	return clamp01(float64(hits) / float64(len(userSkills)))
}

type skillName struct {
	name  string
	lower string
}

func normalizeSkills(in []string) []skillName {
	out := make([]skillName, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		name := strings.TrimSpace(s)
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, skillName{name: name, lower: lower})
	}
	return out
}

func anyContains(users []skillName, job string) bool {
	for _, u := range users {
		if strings.Contains(job, u.lower) || strings.Contains(u.lower, job) {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
