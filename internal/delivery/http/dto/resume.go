package dto

import (
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/google/uuid"
)

const ResumeUploadedMessage = "Resume uploaded and processed successfully"

type ResumeResponse struct {
	ID         uuid.UUID            `json:"id"`
	FileName   string               `json:"fileName"`
	ParsedData resume.ParsedProfile `json:"parsedData"`
	UploadDate time.Time            `json:"uploadDate"`
}

type ResumeUploadResponse struct {
	Message string         `json:"message"`
	Resume  ResumeResponse `json:"resume"`
}

// ResumeListItem mirrors the stored row as listed to its owner.
type ResumeListItem struct {
	ID         uuid.UUID            `json:"id"`
	FileName   string               `json:"file_name"`
	FileType   string               `json:"file_type"`
	FileSize   int64                `json:"file_size"`
	ParsedData resume.ParsedProfile `json:"parsed_data"`
	UploadDate time.Time            `json:"upload_date"`
	IsActive   bool                 `json:"is_active"`
}

type ResumeListResponse struct {
	Resumes []ResumeListItem `json:"resumes"`
}

func NewResumeResponse(r resume.Resume) ResumeResponse {
	return ResumeResponse{ID: r.ID, FileName: r.FileName, ParsedData: r.Profile, UploadDate: r.UploadDate}
}

func NewResumeListResponse(rows []resume.Resume) ResumeListResponse {
	out := make([]ResumeListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, ResumeListItem{
			ID:         r.ID,
			FileName:   r.FileName,
			FileType:   r.MimeType,
			FileSize:   r.FileSize,
			ParsedData: r.Profile,
			UploadDate: r.UploadDate,
			IsActive:   r.IsActive,
		})
	}
	return ResumeListResponse{Resumes: out}
}
