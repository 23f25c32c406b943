package repository

import (
	"context"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/recommendation"

	"github.com/google/uuid"
)

type FeedbackRepository interface {
	Create(ctx context.Context, f recommendation.Feedback) error
}

type PostgresFeedbackRepository struct {
	db database.DB
}

func NewPostgresFeedbackRepository(db database.DB) *PostgresFeedbackRepository {
	return &PostgresFeedbackRepository{db: db}
}

func (r *PostgresFeedbackRepository) Create(ctx context.Context, f recommendation.Feedback) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO recommendation_feedback (id, user_id, recommendation_id, feedback_type, feedback_reason)
		 VALUES ($1, $2, $3, $4, $5)`,
		f.ID, f.UserID, f.RecommendationID, string(f.Type), f.Reason,
	)
	return err
}

var _ FeedbackRepository = (*PostgresFeedbackRepository)(nil)
