package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/recommendation"
	"github.com/Knnivedh/job-rec/internal/logger"
	"github.com/Knnivedh/job-rec/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeedbackInput struct {
	UserID           uuid.UUID
	RecommendationID string
	Type             string
	Reason           *string
}

type FeedbackUsecase interface {
	Submit(ctx context.Context, in FeedbackInput) error
}

type Feedback struct {
	recs     repository.RecommendationRepository
	feedback repository.FeedbackRepository
	cache    RecommendationInvalidator
	logger   *zap.Logger
}

func NewFeedbackUsecase(recs repository.RecommendationRepository, feedback repository.FeedbackRepository, c RecommendationInvalidator, log *zap.Logger) *Feedback {
	return &Feedback{recs: recs, feedback: feedback, cache: c, logger: logger.OrNop(log)}
}

func (u *Feedback) Submit(ctx context.Context, in FeedbackInput) error {
	if in.UserID == uuid.Nil {
		return ErrUnauthorized
	}
	recID := strings.TrimSpace(in.RecommendationID)
	fbType := strings.TrimSpace(in.Type)
	if recID == "" || fbType == "" {
		return ErrMissingFields
	}
	t := recommendation.FeedbackType(fbType)
	if !t.Valid() {
		return ErrInvalidFeedbackType
	}

	id, err := uuid.Parse(recID)
	if err != nil {
		return ErrRecommendationNotFound
	}

	owned, err := u.recs.OwnedBy(ctx, id, in.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrRecommendationNotFound) {
			return ErrRecommendationNotFound
		}
		u.logger.Error("[Feedback] ownership check failed", zap.Error(err))
		return ErrSaveFeedback
	}
	if !owned {
		return ErrRecommendationNotFound
	}

	var reason *string
	if in.Reason != nil {
		if r := strings.TrimSpace(*in.Reason); r != "" {
			reason = &r
		}
	}

	if err := u.feedback.Create(ctx, recommendation.Feedback{
		UserID:           in.UserID,
		RecommendationID: id,
		Type:             t,
		Reason:           reason,
	}); err != nil {
		u.logger.Error("[Feedback] save failed", zap.Error(err))
		return ErrSaveFeedback
	}

	if u.cache != nil {
		if err := u.cache.InvalidateUser(ctx, in.UserID.String()); err != nil {
			u.logger.Warn("[Feedback] cache invalidation failed", zap.Error(err))
		}
	}

	u.logger.Info("[Feedback] saved",
		zap.String(logger.FieldUserID, in.UserID.String()),
		zap.String("recommendation_id", id.String()),
		zap.String("type", string(t)),
	)
	return nil
}

var _ FeedbackUsecase = (*Feedback)(nil)
