package dto

import (
	"github.com/Knnivedh/job-rec/internal/ai"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/usecase"
)

type AnalysisResponse struct {
	resume.ParsedProfile
	RawText  string             `json:"raw_text"`
	ATSScore int                `json:"ats_score"`
	Source   resume.ParseSource `json:"source"`
}

type AnalyzeResponse struct {
	Success  bool             `json:"success"`
	Analysis AnalysisResponse `json:"analysis"`
}

type SimpleJobsRequest struct {
	// Skills must be present; an empty array searches the default role.
	Skills     []string `json:"skills" validate:"required"`
	Experience *string  `json:"experience"`
	Location   string   `json:"location"`
}

type SimpleJobsResponse struct {
	Success bool                  `json:"success"`
	Jobs    []usecase.ExternalJob `json:"jobs"`
}

type ChatCoachRequest struct {
	Message    string                `json:"message"`
	ResumeData *resume.ParsedProfile `json:"resume_data"`
}

type ChatCoachResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
	ATSScore *int   `json:"ats_score"`
}

type SkillGapRequest struct {
	UserSkills      []string `json:"user_skills" validate:"required"`
	JobRequirements []string `json:"job_requirements" validate:"required,min=1"`
}

type SkillGapResponse struct {
	Success bool        `json:"success"`
	Gap     ai.SkillGap `json:"analysis"`
}

func NewAnalyzeResponse(a usecase.Analysis) AnalyzeResponse {
	return AnalyzeResponse{
		Success: true,
		Analysis: AnalysisResponse{
			ParsedProfile: a.ParsedProfile,
			RawText:       a.RawText,
			ATSScore:      a.ATSScore,
			Source:        a.Source,
		},
	}
}
