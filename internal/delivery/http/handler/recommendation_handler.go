package handler

import (
	"errors"

	"github.com/Knnivedh/job-rec/internal/delivery/http/dto"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/pkg/response"
	"github.com/Knnivedh/job-rec/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	recs     usecase.RecommendationUsecase
	feedback usecase.FeedbackUsecase
}

func NewRecommendationHandler(recs usecase.RecommendationUsecase, feedback usecase.FeedbackUsecase) *RecommendationHandler {
	return &RecommendationHandler{recs: recs, feedback: feedback}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/recommendations")
	grp.Get("", h.GetRecommendations)
	grp.Post("/feedback", h.SubmitFeedback)
}

func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	views, err := h.recs.Get(c.Context(), userID)
	if err != nil {
		return mapRecommendationError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.NewRecommendationListResponse(views))
}

func (h *RecommendationHandler) SubmitFeedback(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.FeedbackRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, usecase.ErrMissingFields.Error(), nil, err)
	}

	err := h.feedback.Submit(c.Context(), usecase.FeedbackInput{
		UserID:           userID,
		RecommendationID: req.RecommendationID,
		Type:             req.FeedbackType,
		Reason:           req.FeedbackReason,
	})
	if err != nil {
		return mapRecommendationError(err)
	}
	return response.JSON(c, fiber.StatusOK, dto.MessageResponse{Message: dto.FeedbackSavedMessage})
}

func mapRecommendationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrMissingFields), errors.Is(err, usecase.ErrInvalidFeedbackType):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, usecase.ErrRecommendationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrSaveFeedback), errors.Is(err, usecase.ErrRecommendations):
		return middleware.NewAppError(fiber.StatusInternalServerError, err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
