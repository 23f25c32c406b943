package handler

import (
	"errors"

	"github.com/Knnivedh/job-rec/internal/delivery/http/dto"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/pkg/response"
	"github.com/Knnivedh/job-rec/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const resumeFormField = "resume"

type ResumeHandler struct {
	uc usecase.ResumeUsecase
}

func NewResumeHandler(uc usecase.ResumeUsecase) *ResumeHandler {
	return &ResumeHandler{uc: uc}
}

func (h *ResumeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/resumes")
	grp.Post("", h.Upload)
	grp.Get("", h.List)
}

func (h *ResumeHandler) Upload(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	file, present, err := readFormFile(c, resumeFormField)
	if err != nil {
		return uploadError(fiber.StatusInternalServerError, usecase.ErrUploadFailed.Error(), "", err)
	}
	if !present {
		return uploadError(fiber.StatusBadRequest, usecase.ErrNoFileUploaded.Error(), "", nil)
	}

	created, err := h.uc.Upload(c.Context(), usecase.UploadInput{
		UserID:   userID,
		FileName: file.Name,
		MimeType: usecase.DetectMime(file.MimeType, file.Name),
		Size:     file.Size,
		Data:     file.Data,
	})
	if err != nil {
		return mapUploadError(err)
	}

	return response.JSON(c, fiber.StatusCreated, dto.ResumeUploadResponse{
		Message: dto.ResumeUploadedMessage,
		Resume:  dto.NewResumeResponse(created),
	})
}

func (h *ResumeHandler) List(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	rows, err := h.uc.ListActive(c.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUnauthorized) {
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrFetchResumes.Error(), nil, err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewResumeListResponse(rows))
}

func mapUploadError(err error) error {
	var parseErr *usecase.ParseError
	var saveErr *usecase.SaveError

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrNoFileUploaded),
		errors.Is(err, usecase.ErrInvalidFileType),
		errors.Is(err, usecase.ErrFileTooLarge):
		return uploadError(fiber.StatusBadRequest, err.Error(), "", err)
	case errors.Is(err, usecase.ErrUserNotFound):
		return uploadError(fiber.StatusNotFound, err.Error(), "", err)
	case errors.As(err, &parseErr):
		return uploadError(fiber.StatusBadRequest, parseErr.Error(), "", err)
	case errors.As(err, &saveErr):
		return uploadError(fiber.StatusInternalServerError, saveErr.Error(), saveErr.Detail, err)
	case errors.Is(err, usecase.ErrUploadFailed):
		return uploadError(fiber.StatusInternalServerError, err.Error(), "", err)
	default:
		return uploadError(fiber.StatusInternalServerError, response.MessageInternalServerError, "", err)
	}
}

// uploadError attaches the setup hint when the message or detail points at
// a missing schema or user row.
func uploadError(status int, msg, detail string, cause error) error {
	fields := response.Fields{}
	if detail != "" {
		fields["details"] = detail
	}
	if hint := usecase.UploadHint(msg, detail); hint != "" {
		fields["hint"] = hint
	}
	if len(fields) == 0 {
		fields = nil
	}
	return middleware.NewAppError(status, msg, fields, cause)
}
