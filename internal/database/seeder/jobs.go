package seeder

import (
	"context"
	"errors"
	"fmt"

	"github.com/Knnivedh/job-rec/internal/domain"
	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/logger"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/worker"

	"go.uber.org/zap"
)

// SampleJob is a posting keyed to its company by name.
type SampleJob struct {
	CompanyName string
	Posting     job.Posting
}

// JobsSeeder upserts companies and postings. Embeddings are generated
// concurrently; a posting whose embedding fails is stored without one.
type JobsSeeder struct {
	jobs      repository.JobRepository
	embedder  llm.Embedder
	pool      *worker.Pool
	logger    *zap.Logger
	companies []job.Company
	postings  []SampleJob
}

func NewJobsSeeder(
	jobs repository.JobRepository,
	embedder llm.Embedder,
	pool *worker.Pool,
	companies []job.Company,
	postings []SampleJob,
	log *zap.Logger,
) *JobsSeeder {
	if pool == nil {
		pool = worker.NewPool(4, 5)
	}
	return &JobsSeeder{
		jobs:      jobs,
		embedder:  embedder,
		pool:      pool,
		logger:    logger.OrNop(log),
		companies: companies,
		postings:  postings,
	}
}

func (s *JobsSeeder) Name() string { return "jobs" }

func (s *JobsSeeder) Run(ctx context.Context) error {
	ids := make(map[string]job.Company, len(s.companies))
	for _, c := range s.companies {
		id, err := s.jobs.UpsertCompany(ctx, c)
		if err != nil {
			return fmt.Errorf("upsert company %q: %w", c.Name, err)
		}
		c.ID = id
		ids[c.Name] = c
	}

	postings := make([]job.Posting, 0, len(s.postings))
	for _, sj := range s.postings {
		c, ok := ids[sj.CompanyName]
		if !ok {
			return fmt.Errorf("posting %q: unknown company %q", sj.Posting.Title, sj.CompanyName)
		}
		p := sj.Posting
		p.CompanyID = c.ID
		p.Company = c.Name
		postings = append(postings, p)
	}

	embedded := s.embed(ctx, postings)

	for _, p := range postings {
		if _, err := s.jobs.UpsertPosting(ctx, p); err != nil {
			return fmt.Errorf("upsert job %q: %w", p.Title, err)
		}
	}

	s.logger.Info("[Seed] jobs seeded",
		zap.Int("companies", len(s.companies)),
		zap.Int("jobs", len(postings)),
		zap.Int("embedded", embedded),
	)
	return nil
}

// embed fills postings[i].Embedding in place and returns how many succeeded.
func (s *JobsSeeder) embed(ctx context.Context, postings []job.Posting) int {
	if s.embedder == nil {
		return 0
	}

	results := s.pool.Run(ctx, len(postings), func(ctx context.Context, i int) error {
		vec, err := s.embedder.Embed(ctx, postings[i].EmbeddingInput())
		if err != nil {
			return err
		}
		if !domain.ValidEmbedding(vec) {
			return fmt.Errorf("embedding has %d dimensions", len(vec))
		}
		postings[i].Embedding = vec
		return nil
	})

	n := 0
	for _, r := range results {
		if r.Err == nil {
			n++
			continue
		}
		if !errors.Is(r.Err, llm.ErrNotConfigured) {
			s.logger.Warn("[Seed] embedding failed", zap.String("job", postings[r.Index].Title), zap.Error(r.Err))
		}
		postings[r.Index].Embedding = nil
	}
	return n
}
