package resumeparser

import (
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/pkg/llmjson"
)

const (
	unknownCompany     = "Unknown Company"
	unknownPosition    = "Unknown Position"
	unknownInstitution = "Unknown Institution"
	unknownDegree      = "Unknown Degree"
)

// profileSchema accepts any object carrying at least one profile section.
// Section types are loose; cleanProfile normalizes the content.
var profileSchema = llmjson.MustSchema(`{
	"type": "object",
	"properties": {
		"contact_info": {"type": ["object", "null"]},
		"skills": {"type": ["array", "null"]},
		"experience": {"type": ["array", "null"]},
		"education": {"type": ["array", "null"]}
	},
	"anyOf": [
		{"required": ["contact_info"]},
		{"required": ["skills"]},
		{"required": ["experience"]},
		{"required": ["education"]}
	]
}`)

// cleanProfile converts decoded model output into a ParsedProfile, applying
// defaults for missing or mistyped fields.
func cleanProfile(data map[string]any) resume.ParsedProfile {
	out := resume.EmptyProfile()

	contact, _ := data["contact_info"].(map[string]any)
	out.ContactInfo = resume.ContactInfo{
		Name:     optString(contact["name"]),
		Email:    optString(contact["email"]),
		Phone:    optString(contact["phone"]),
		Location: optString(contact["location"]),
		LinkedIn: optString(contact["linkedin"]),
		GitHub:   optString(contact["github"]),
	}

	out.Skills = stringList(data["skills"])

	if exps, ok := data["experience"].([]any); ok {
		for _, raw := range exps {
			e, _ := raw.(map[string]any)
			out.Experience = append(out.Experience, resume.Experience{
				Company:     stringOr(e["company"], unknownCompany),
				Position:    stringOr(e["position"], unknownPosition),
				StartDate:   optString(e["start_date"]),
				EndDate:     optString(e["end_date"]),
				Description: optString(e["description"]),
				SkillsUsed:  stringList(e["skills_used"]),
			})
		}
	}

	if edus, ok := data["education"].([]any); ok {
		for _, raw := range edus {
			e, _ := raw.(map[string]any)
			out.Education = append(out.Education, resume.Education{
				Institution:    stringOr(e["institution"], unknownInstitution),
				Degree:         stringOr(e["degree"], unknownDegree),
				FieldOfStudy:   optString(e["field_of_study"]),
				GraduationDate: optString(e["graduation_date"]),
			})
		}
	}

	out.Summary = optString(data["summary"])
	return out
}

func optString(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = sanitizeText(s)
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		if s = sanitizeText(s); strings.TrimSpace(s) != "" {
			return s
		}
	}
	return def
}

// stringList keeps the non-blank strings of a JSON array; anything else
// yields an empty list.
func stringList(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		if s = sanitizeText(s); strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
