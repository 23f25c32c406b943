package seeder

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/Knnivedh/job-rec/internal/domain"
	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memJobs struct {
	mu        sync.Mutex
	companies map[string]uuid.UUID
	postings  []job.Posting
}

func newMemJobs() *memJobs { return &memJobs{companies: map[string]uuid.UUID{}} }

func (m *memJobs) ListActive(context.Context, int) ([]job.Posting, error) { return m.postings, nil }
func (m *memJobs) CountActive(context.Context) (int, error)               { return len(m.postings), nil }

func (m *memJobs) UpsertCompany(_ context.Context, c job.Company) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.companies[c.Name]; ok {
		return id, nil
	}
	id := uuid.New()
	m.companies[c.Name] = id
	return id, nil
}

func (m *memJobs) UpsertPosting(_ context.Context, p job.Posting) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.postings {
		if existing.Title == p.Title && existing.CompanyID == p.CompanyID {
			m.postings[i] = p
			return existing.ID, nil
		}
	}
	p.ID = uuid.New()
	m.postings = append(m.postings, p)
	return p.ID, nil
}

type titleEmbedder struct{ failOn string }

func (e titleEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if e.failOn != "" && strings.HasPrefix(text, e.failOn) {
		return nil, errors.New("quota exceeded")
	}
	return make([]float32, domain.EmbeddingDimensions), nil
}

func TestJobsSeeder_SeedsSampleData(t *testing.T) {
	repo := newMemJobs()
	s := NewJobsSeeder(repo, titleEmbedder{failOn: "Data Scientist"}, worker.NewPool(2, 0), SampleCompanies(), SampleJobs(), nil)

	require.NoError(t, Runner{Seeders: []Seeder{s}}.Run(context.Background()))

	assert.Len(t, repo.companies, 3)
	require.Len(t, repo.postings, 5)

	for _, p := range repo.postings {
		assert.NotEqual(t, uuid.Nil, p.CompanyID)
		assert.NotEmpty(t, p.Company)
		if p.Title == "Data Scientist" {
			assert.Nil(t, p.Embedding)
		} else {
			assert.Len(t, p.Embedding, domain.EmbeddingDimensions)
		}
	}
}

func TestJobsSeeder_Idempotent(t *testing.T) {
	repo := newMemJobs()
	s := NewJobsSeeder(repo, nil, nil, SampleCompanies(), SampleJobs(), nil)

	require.NoError(t, s.Run(context.Background()))
	require.NoError(t, s.Run(context.Background()))

	assert.Len(t, repo.companies, 3)
	assert.Len(t, repo.postings, 5)
}

func TestJobsSeeder_UnknownCompany(t *testing.T) {
	s := NewJobsSeeder(newMemJobs(), nil, nil, nil, []SampleJob{{CompanyName: "Nope", Posting: job.Posting{Title: "X"}}}, nil)
	err := s.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown company")
}
