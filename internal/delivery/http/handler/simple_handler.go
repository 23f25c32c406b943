package handler

import (
	"errors"

	"github.com/Knnivedh/job-rec/internal/delivery/http/dto"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/pkg/response"
	"github.com/Knnivedh/job-rec/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

const analyzeFormField = "file"

var errSkillsRequired = errors.New("Skills array is required")

// SimpleHandler serves the stateless endpoints that work without a database.
type SimpleHandler struct {
	analyze  usecase.AnalyzeUsecase
	jobs     usecase.JobSearchUsecase
	validate *validator.Validate
}

func NewSimpleHandler(analyze usecase.AnalyzeUsecase, jobs usecase.JobSearchUsecase) *SimpleHandler {
	return &SimpleHandler{analyze: analyze, jobs: jobs, validate: validator.New()}
}

func (h *SimpleHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/simple-analyze", h.Analyze)
	r.Post("/simple-jobs", h.SearchJobs)
}

func (h *SimpleHandler) Analyze(c fiber.Ctx) error {
	file, present, err := readFormFile(c, analyzeFormField)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrAnalyzeFailed.Error(), response.Fields{"details": err.Error()}, err)
	}
	if !present {
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.ErrNoFileProvided.Error(), nil, nil)
	}

	analysis, err := h.analyze.Analyze(c.Context(), file.Data, file.Name, file.MimeType)
	if err != nil {
		var ae *usecase.AnalyzeError
		switch {
		case errors.Is(err, usecase.ErrNoFileProvided):
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
		case errors.As(err, &ae):
			return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrAnalyzeFailed.Error(), response.Fields{"details": ae.Details}, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrAnalyzeFailed.Error(), response.Fields{"details": err.Error()}, err)
		}
	}

	return response.JSON(c, fiber.StatusOK, dto.NewAnalyzeResponse(analysis))
}

func (h *SimpleHandler) SearchJobs(c fiber.Ctx) error {
	var req dto.SimpleJobsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, errSkillsRequired.Error(), nil, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, errSkillsRequired.Error(), nil, err)
	}

	jobs := h.jobs.Search(c.Context(), usecase.JobSearchInput{Skills: req.Skills, Location: req.Location})
	return response.JSON(c, fiber.StatusOK, dto.SimpleJobsResponse{Success: true, Jobs: jobs})
}
