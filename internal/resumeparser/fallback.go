package resumeparser

import (
	"regexp"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/resume"
)

var (
	emailRe    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phoneRe    = regexp.MustCompile(`[+]?[1-9]?[\d\s\-().]{10,15}`)
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/[\w\-]+`)
	githubRe   = regexp.MustCompile(`github\.com/[\w\-]+`)
)

var commonSkills = []string{
	"JavaScript", "Python", "Java", "TypeScript", "C++", "C#", "Go", "Rust",
	"React", "Angular", "Vue", "Node.js", "Express", "Next.js",
	"HTML", "CSS", "SCSS", "Tailwind",
	"PostgreSQL", "MySQL", "MongoDB", "Redis",
	"AWS", "Google Cloud", "Azure", "Docker", "Kubernetes",
	"Git", "CI/CD", "Jenkins", "Linux",
	"Machine Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy",
}

// fallbackProfile extracts what plain pattern matching can find. It always
// returns a structurally complete profile.
func fallbackProfile(text string) resume.ParsedProfile {
	out := resume.EmptyProfile()
	out.ContactInfo = fallbackContact(text)
	out.Skills = DetectSkills(text)
	return out
}

func fallbackContact(text string) resume.ContactInfo {
	var c resume.ContactInfo

	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			c.Name = &l
			break
		}
	}
	if m := emailRe.FindString(text); m != "" {
		c.Email = &m
	}
	if m := strings.TrimSpace(phoneRe.FindString(text)); m != "" {
		c.Phone = &m
	}
	if m := linkedinRe.FindString(text); m != "" {
		u := "https://" + m
		c.LinkedIn = &u
	}
	if m := githubRe.FindString(text); m != "" {
		u := "https://" + m
		c.GitHub = &u
	}
	return c
}

// DetectSkills returns the common technology names that occur in text,
// case-insensitively, in list order.
func DetectSkills(text string) []string {
	lower := strings.ToLower(text)
	out := make([]string, 0)
	for _, s := range commonSkills {
		if strings.Contains(lower, strings.ToLower(s)) {
			out = append(out, s)
		}
	}
	return out
}
