package repository

import (
	"context"
	"strings"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/user"

	"github.com/google/uuid"
)

const SkillSourceResume = "resume"

type UserSkillRepository interface {
	// Replace swaps the user's skills from source for names.
	Replace(ctx context.Context, userID uuid.UUID, source string, names []string) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]user.Skill, error)
}

type PostgresUserSkillRepository struct {
	db database.DB
}

func NewPostgresUserSkillRepository(db database.DB) *PostgresUserSkillRepository {
	return &PostgresUserSkillRepository{db: db}
}

func (r *PostgresUserSkillRepository) Replace(ctx context.Context, userID uuid.UUID, source string, names []string) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM user_skills WHERE user_id = $1 AND source = $2`,
			userID, source,
		); err != nil {
			return err
		}

		seen := make(map[string]struct{}, len(names))
		for _, n := range names {
			n = strings.TrimSpace(n)
			key := strings.ToLower(n)
			if n == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			if _, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, skill_name, source)
				 VALUES ($1, $2, $3)
				 ON CONFLICT (user_id, skill_name) DO NOTHING`,
				userID, n, source,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresUserSkillRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]user.Skill, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, skill_name, source, created_at
		 FROM user_skills
		 WHERE user_id = $1
		 ORDER BY skill_name ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]user.Skill, 0)
	for rows.Next() {
		var s user.Skill
		if err := rows.Scan(&s.UserID, &s.Name, &s.Source, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

var _ UserSkillRepository = (*PostgresUserSkillRepository)(nil)
