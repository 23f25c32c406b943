package resume

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// MaxUploadBytes is the per-file limit for résumé uploads (10 MiB).
	MaxUploadBytes = 10 * 1024 * 1024
)

// ParseSource tags which branch of the parser produced a profile.
type ParseSource string

const (
	SourceAI       ParseSource = "ai"
	SourceFallback ParseSource = "fallback"
)

type ContactInfo struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Location *string `json:"location"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
}

type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Description *string  `json:"description"`
	SkillsUsed  []string `json:"skills_used"`
}

type Education struct {
	Institution    string  `json:"institution"`
	Degree         string  `json:"degree"`
	FieldOfStudy   *string `json:"field_of_study"`
	GraduationDate *string `json:"graduation_date"`
}

// ParsedProfile is the structured view of a résumé. Slices are never nil so
// the JSON form always carries arrays.
type ParsedProfile struct {
	ContactInfo ContactInfo  `json:"contact_info"`
	Skills      []string     `json:"skills"`
	Experience  []Experience `json:"experience"`
	Education   []Education  `json:"education"`
	Summary     *string      `json:"summary"`
}

func EmptyProfile() ParsedProfile {
	return ParsedProfile{
		Skills:     []string{},
		Experience: []Experience{},
		Education:  []Education{},
	}
}

// ExperienceYears is the entry count of the work history. It is a proxy for
// tenure, not a sum of date ranges.
func (p ParsedProfile) ExperienceYears() int {
	return len(p.Experience)
}

// maxEmbeddingRunes caps the text sent to the embedding model.
const maxEmbeddingRunes = 8000

// EmbeddingInput is the text embedded for a résumé: summary and raw text,
// capped at maxEmbeddingRunes characters.
func EmbeddingInput(p ParsedProfile, rawText string) string {
	summary := ""
	if p.Summary != nil {
		summary = *p.Summary
	}
	s := strings.TrimSpace(summary + " " + rawText)
	if r := []rune(s); len(r) > maxEmbeddingRunes {
		return string(r[:maxEmbeddingRunes])
	}
	return s
}

type Resume struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	FileName    string
	FilePath    string
	FileSize    int64
	MimeType    string
	RawText     string
	Profile     ParsedProfile
	ParseSource ParseSource
	Embedding   []float32
	IsActive    bool
	UploadDate  time.Time
}

func IsSupportedMime(mime string) bool {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case MimePDF, MimeDOCX:
		return true
	default:
		return false
	}
}
