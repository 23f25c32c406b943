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

type CoachHandler struct {
	uc       usecase.CoachUsecase
	validate *validator.Validate
}

func NewCoachHandler(uc usecase.CoachUsecase) *CoachHandler {
	return &CoachHandler{uc: uc, validate: validator.New()}
}

func (h *CoachHandler) ChatCoach(c fiber.Ctx) error {
	var req dto.ChatCoachRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.ErrMessageRequired.Error(), nil, err)
	}

	ans, err := h.uc.Ask(c.Context(), req.Message, req.ResumeData)
	if err != nil {
		var ce *usecase.CoachError
		switch {
		case errors.Is(err, usecase.ErrMessageRequired):
			return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
		case errors.As(err, &ce):
			return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrCoachFailed.Error(), response.Fields{"details": ce.Details}, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, usecase.ErrCoachFailed.Error(), nil, err)
		}
	}

	return response.JSON(c, fiber.StatusOK, dto.ChatCoachResponse{Success: true, Response: ans.Response, ATSScore: ans.ATSScore})
}

func (h *CoachHandler) SkillGap(c fiber.Ctx) error {
	var req dto.SkillGapRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, validationMessage(err), nil, err)
	}

	gap := h.uc.SkillGap(c.Context(), req.UserSkills, req.JobRequirements)
	return response.JSON(c, fiber.StatusOK, dto.SkillGapResponse{Success: true, Gap: gap})
}
