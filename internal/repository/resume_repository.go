package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/resume"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

var ErrResumeNotFound = errors.New("resume not found")

type ResumeRepository interface {
	// CreateActive deactivates the user's earlier résumés and inserts r as
	// the active one, atomically.
	CreateActive(ctx context.Context, r resume.Resume) (resume.Resume, error)
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (resume.Resume, error)
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error)
}

type PostgresResumeRepository struct {
	db database.DB
}

func NewPostgresResumeRepository(db database.DB) *PostgresResumeRepository {
	return &PostgresResumeRepository{db: db}
}

const resumeColumns = `id, user_id, file_name, file_path, file_size, mime_type, raw_text,
	parsed_data, parse_source, embedding, is_active, upload_date`

func (r *PostgresResumeRepository) CreateActive(ctx context.Context, in resume.Resume) (resume.Resume, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	parsed, err := json.Marshal(in.Profile)
	if err != nil {
		return resume.Resume{}, fmt.Errorf("marshal parsed profile: %w", err)
	}

	var out resume.Resume
	err = database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx,
			`UPDATE resumes SET is_active = false WHERE user_id = $1 AND is_active = true`,
			in.UserID,
		); err != nil {
			return fmt.Errorf("deactivate resumes: %w", err)
		}

		row := tx.QueryRow(ctx,
			`INSERT INTO resumes (id, user_id, file_name, file_path, file_size, mime_type, raw_text,
			                      parsed_data, parse_source, embedding, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, true)
			 RETURNING `+resumeColumns,
			in.ID, in.UserID, in.FileName, in.FilePath, in.FileSize, in.MimeType, in.RawText,
			parsed, string(in.ParseSource), toVector(in.Embedding),
		)
		var scanErr error
		out, scanErr = scanResume(row)
		return scanErr
	})
	if err != nil {
		return resume.Resume{}, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) GetActiveByUser(ctx context.Context, userID uuid.UUID) (resume.Resume, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE user_id = $1 AND is_active = true
		 ORDER BY upload_date DESC
		 LIMIT 1`,
		userID,
	)
	out, err := scanResume(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return resume.Resume{}, ErrResumeNotFound
		}
		return resume.Resume{}, err
	}
	return out, nil
}

func (r *PostgresResumeRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]resume.Resume, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE user_id = $1 AND is_active = true
		 ORDER BY upload_date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]resume.Resume, 0)
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanResume(row database.Row) (resume.Resume, error) {
	var (
		res    resume.Resume
		parsed []byte
		source string
		emb    *pgvector.Vector
	)
	if err := row.Scan(
		&res.ID, &res.UserID, &res.FileName, &res.FilePath, &res.FileSize, &res.MimeType, &res.RawText,
		&parsed, &source, &emb, &res.IsActive, &res.UploadDate,
	); err != nil {
		return resume.Resume{}, err
	}

	res.Profile = resume.EmptyProfile()
	if len(parsed) > 0 {
		if err := json.Unmarshal(parsed, &res.Profile); err != nil {
			return resume.Resume{}, fmt.Errorf("decode parsed profile: %w", err)
		}
	}
	res.ParseSource = resume.ParseSource(source)
	res.Embedding = fromVector(emb)
	return res, nil
}

var _ ResumeRepository = (*PostgresResumeRepository)(nil)
