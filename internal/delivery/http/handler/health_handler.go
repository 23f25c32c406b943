package handler

import (
	"errors"

	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/pkg/response"
	"github.com/Knnivedh/job-rec/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	uc usecase.HealthUsecase
}

func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Check)
}

func (h *HealthHandler) Check(c fiber.Ctx) error {
	report, err := h.uc.Check(c.Context())
	if err != nil {
		var me *usecase.MissingEnvError
		if errors.As(err, &me) {
			return middleware.NewAppError(fiber.StatusInternalServerError, me.Error(), response.Fields{"missing": me.Missing}, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.JSON(c, fiber.StatusOK, report)
}
