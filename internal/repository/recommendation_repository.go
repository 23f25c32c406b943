package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/recommendation"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRecommendationNotFound = errors.New("recommendation not found")

const DefaultRecommendationLimit = 10

type RecommendationRepository interface {
	// ListSince returns the user's recommendations for a résumé created at
	// or after since, best score first.
	ListSince(ctx context.Context, userID, resumeID uuid.UUID, since time.Time, limit int) ([]recommendation.View, error)
	InsertBatch(ctx context.Context, recs []recommendation.Recommendation) error
	OwnedBy(ctx context.Context, recommendationID, userID uuid.UUID) (bool, error)
}

type PostgresRecommendationRepository struct {
	db database.DB
}

func NewPostgresRecommendationRepository(db database.DB) *PostgresRecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

func (r *PostgresRecommendationRepository) ListSince(ctx context.Context, userID, resumeID uuid.UUID, since time.Time, limit int) ([]recommendation.View, error) {
	if limit <= 0 {
		limit = DefaultRecommendationLimit
	}

	rows, err := r.db.Query(ctx,
		`SELECT jr.id, jr.user_id, jr.resume_id, jr.job_id, jr.match_score, jr.skills_match,
		        jr.experience_match, jr.reasoning, jr.created_at,
		        j.title, c.name, j.location, j.job_type, j.salary_min, j.salary_max,
		        j.requirements, j.description
		 FROM job_recommendations jr
		 JOIN jobs j ON j.id = jr.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE jr.user_id = $1 AND jr.resume_id = $2 AND jr.created_at >= $3
		 ORDER BY jr.match_score DESC, jr.created_at DESC
		 LIMIT $4`,
		userID, resumeID, since, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]recommendation.View, 0)
	for rows.Next() {
		var v recommendation.View
		if err := rows.Scan(
			&v.ID, &v.UserID, &v.ResumeID, &v.JobID, &v.MatchScore, &v.MatchedSkills,
			&v.ExperienceMatch, &v.Reasoning, &v.CreatedAt,
			&v.JobTitle, &v.Company, &v.Location, &v.JobType, &v.SalaryMin, &v.SalaryMax,
			&v.Requirements, &v.Description,
		); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRecommendationRepository) InsertBatch(ctx context.Context, recs []recommendation.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, rec := range recs {
			id := rec.ID
			if id == uuid.Nil {
				id = uuid.New()
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_recommendations
				   (id, user_id, resume_id, job_id, match_score, skills_match, experience_match, reasoning)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				id, rec.UserID, rec.ResumeID, rec.JobID, rec.MatchScore, nonNil(rec.MatchedSkills),
				rec.ExperienceMatch, rec.Reasoning,
			); err != nil {
				return fmt.Errorf("insert recommendation for job %s: %w", rec.JobID, err)
			}
		}
		return nil
	})
}

func (r *PostgresRecommendationRepository) OwnedBy(ctx context.Context, recommendationID, userID uuid.UUID) (bool, error) {
	var owner uuid.UUID
	row := r.db.QueryRow(ctx, `SELECT user_id FROM job_recommendations WHERE id = $1`, recommendationID)
	if err := row.Scan(&owner); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return false, ErrRecommendationNotFound
		}
		return false, err
	}
	return owner == userID, nil
}

var _ RecommendationRepository = (*PostgresRecommendationRepository)(nil)
