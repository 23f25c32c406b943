package usecase

import (
	"errors"
	"strings"
)

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")

	ErrUserNotFound           = errors.New("User profile not found")
	ErrMissingFields          = errors.New("Missing required fields")
	ErrInvalidFeedbackType    = errors.New("Invalid feedback type")
	ErrRecommendationNotFound = errors.New("Recommendation not found")
	ErrSaveFeedback           = errors.New("Failed to save feedback")

	ErrNoFileUploaded  = errors.New("No file uploaded")
	ErrInvalidFileType = errors.New("Invalid file type. Only PDF and DOCX files are allowed.")
	ErrFileTooLarge    = errors.New("File size too large. Maximum size is 10MB.")
	ErrUploadFailed    = errors.New("Failed to upload file")
	ErrSaveResume      = errors.New("Failed to save resume data")
	ErrFetchResumes    = errors.New("Failed to fetch resumes")

	ErrRecommendations = errors.New("Failed to generate recommendations")
	ErrAnalyzeFailed   = errors.New("Failed to analyze resume")
	ErrNoFileProvided  = errors.New("No file provided")
	ErrMessageRequired = errors.New("Message is required")
)

// ParseError is a résumé that could not be turned into text.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return "Failed to parse resume: " + e.Reason
}

const setupHint = "Database setup required: apply the schema with `jobrec migrate` and retry."

// UploadHint returns setup instructions when an upload error message points
// at missing schema or user rows.
func UploadHint(messages ...string) string {
	for _, m := range messages {
		lower := strings.ToLower(m)
		for _, kw := range []string{"table", "database", "profile"} {
			if strings.Contains(lower, kw) {
				return setupHint
			}
		}
	}
	return ""
}
