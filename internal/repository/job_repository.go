package repository

import (
	"context"
	"fmt"

	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/domain/job"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

const DefaultActiveJobsLimit = 20

type JobRepository interface {
	ListActive(ctx context.Context, limit int) ([]job.Posting, error)
	UpsertCompany(ctx context.Context, c job.Company) (uuid.UUID, error)
	// UpsertPosting inserts or refreshes a posting keyed by (title, company).
	UpsertPosting(ctx context.Context, p job.Posting) (uuid.UUID, error)
	CountActive(ctx context.Context) (int, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

// ListActive returns active postings with their company name, newest first.
func (r *PostgresJobRepository) ListActive(ctx context.Context, limit int) ([]job.Posting, error) {
	if limit <= 0 {
		limit = DefaultActiveJobsLimit
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.company_id, c.name, j.title, j.description, j.requirements,
		        j.required_skills, j.preferred_skills, COALESCE(j.experience_level, ''),
		        j.location, j.job_type, j.work_arrangement, j.salary_min, j.salary_max,
		        j.industry, j.is_active, j.embedding, j.created_at
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 WHERE j.is_active = true
		 ORDER BY j.created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		var (
			p     job.Posting
			level string
			emb   *pgvector.Vector
		)
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Company, &p.Title, &p.Description, &p.Requirements,
			&p.RequiredSkills, &p.PreferredSkills, &level,
			&p.Location, &p.JobType, &p.WorkArrangement, &p.SalaryMin, &p.SalaryMax,
			&p.Industry, &p.IsActive, &emb, &p.CreatedAt,
		); err != nil {
			return nil, err
		}
		p.ExperienceLevel = job.ExperienceLevel(level)
		p.Embedding = fromVector(emb)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) UpsertCompany(ctx context.Context, c job.Company) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`INSERT INTO companies (name, description, industry, company_size, location, website)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (name) DO UPDATE SET
		   description = EXCLUDED.description,
		   industry = EXCLUDED.industry,
		   company_size = EXCLUDED.company_size,
		   location = EXCLUDED.location,
		   website = EXCLUDED.website
		 RETURNING id`,
		c.Name, c.Description, c.Industry, c.CompanySize, c.Location, c.Website,
	)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert company %q: %w", c.Name, err)
	}
	return id, nil
}

// UpsertPosting keeps an existing embedding when p carries none.
func (r *PostgresJobRepository) UpsertPosting(ctx context.Context, p job.Posting) (uuid.UUID, error) {
	var id uuid.UUID
	row := r.db.QueryRow(ctx,
		`INSERT INTO jobs (company_id, title, description, requirements, required_skills, preferred_skills,
		                   location, job_type, work_arrangement, salary_min, salary_max,
		                   experience_level, industry, is_active, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 ON CONFLICT (title, company_id) DO UPDATE SET
		   description = EXCLUDED.description,
		   requirements = EXCLUDED.requirements,
		   required_skills = EXCLUDED.required_skills,
		   preferred_skills = EXCLUDED.preferred_skills,
		   location = EXCLUDED.location,
		   job_type = EXCLUDED.job_type,
		   work_arrangement = EXCLUDED.work_arrangement,
		   salary_min = EXCLUDED.salary_min,
		   salary_max = EXCLUDED.salary_max,
		   experience_level = EXCLUDED.experience_level,
		   industry = EXCLUDED.industry,
		   is_active = EXCLUDED.is_active,
		   embedding = COALESCE(EXCLUDED.embedding, jobs.embedding)
		 RETURNING id`,
		p.CompanyID, p.Title, p.Description, nonNil(p.Requirements), nonNil(p.RequiredSkills), nonNil(p.PreferredSkills),
		p.Location, p.JobType, p.WorkArrangement, p.SalaryMin, p.SalaryMax,
		string(p.ExperienceLevel), p.Industry, p.IsActive, toVector(p.Embedding),
	)
	if err := row.Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("upsert job %q: %w", p.Title, err)
	}
	return id, nil
}

func (r *PostgresJobRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs WHERE is_active = true`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ JobRepository = (*PostgresJobRepository)(nil)
