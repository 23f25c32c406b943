package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Knnivedh/job-rec/internal/infrastructure/jobsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct {
	listings []jobsearch.Listing
	err      error
	queries  []string
}

func (m *mockSearcher) Search(_ context.Context, query string) ([]jobsearch.Listing, error) {
	m.queries = append(m.queries, query)
	return m.listings, m.err
}

func TestJobSearch_MapsAndScores(t *testing.T) {
	s := &mockSearcher{listings: []jobsearch.Listing{
		{Title: "Go Engineer", EmployerName: "Acme", City: "Austin", State: "TX", RequiredSkills: []string{"Go", "Docker"}, ApplyLink: "https://acme/apply"},
		{Country: "US", GoogleLink: "https://google/jobs"},
		{},
	}}
	uc := NewJobSearchUsecase(s, nil, time.Minute, nil)
	uc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	got := uc.Search(context.Background(), JobSearchInput{Skills: []string{"Go", "Python"}})
	require.Len(t, got, 3)
	assert.Equal(t, []string{"Go United States"}, s.queries)

	assert.Equal(t, "Go Engineer", got[0].Title)
	assert.Equal(t, "Austin, TX", got[0].Location)
	assert.Equal(t, "https://acme/apply", got[0].URL)
	assert.Equal(t, "Full-time", got[0].Type)
	assert.InDelta(t, 0.5, got[0].MatchScore, 1e-9)

	assert.Equal(t, "Unknown Title", got[1].Title)
	assert.Equal(t, "Unknown Company", got[1].Company)
	assert.Equal(t, "US", got[1].Location)
	assert.Equal(t, "https://google/jobs", got[1].URL)
	assert.InDelta(t, 0.5, got[1].MatchScore, 1e-9)

	assert.Equal(t, "Remote", got[2].Location)
	assert.Equal(t, "#", got[2].URL)
	assert.Equal(t, "2026-01-02T03:04:05Z", got[2].Posted)
	assert.Equal(t, []string{}, got[2].Requirements)
}

func TestJobSearch_LimitsToTen(t *testing.T) {
	s := &mockSearcher{listings: make([]jobsearch.Listing, 15)}
	uc := NewJobSearchUsecase(s, nil, time.Minute, nil)

	got := uc.Search(context.Background(), JobSearchInput{Skills: []string{"Go"}, Location: "Berlin"})
	assert.Len(t, got, 10)
	assert.Equal(t, []string{"Go Berlin"}, s.queries)
}

func TestJobSearch_FailuresYieldEmpty(t *testing.T) {
	uc := NewJobSearchUsecase(&mockSearcher{err: jobsearch.ErrNotConfigured}, nil, time.Minute, nil)
	got := uc.Search(context.Background(), JobSearchInput{Skills: []string{"Go"}})
	assert.NotNil(t, got)
	assert.Empty(t, got)

	uc = NewJobSearchUsecase(&mockSearcher{err: errors.New("502")}, nil, time.Minute, nil)
	assert.Empty(t, uc.Search(context.Background(), JobSearchInput{Skills: []string{"Go"}}))
}

func TestJobSearch_UsesCache(t *testing.T) {
	s := &mockSearcher{listings: []jobsearch.Listing{{Title: "Go Engineer"}}}
	c := newMockCache()
	uc := NewJobSearchUsecase(s, c, time.Minute, nil)

	first := uc.Search(context.Background(), JobSearchInput{Skills: []string{"Go"}})
	second := uc.Search(context.Background(), JobSearchInput{Skills: []string{"go "}})

	assert.Equal(t, first, second)
	assert.Len(t, s.queries, 1)
}

func TestJobSearch_EmptySkillsSearchDefaultRole(t *testing.T) {
	s := &mockSearcher{listings: []jobsearch.Listing{
		{Title: "Engineer", RequiredSkills: []string{"Go"}},
		{Title: "Generalist"},
	}}
	uc := NewJobSearchUsecase(s, nil, time.Minute, nil)

	got := uc.Search(context.Background(), JobSearchInput{Skills: []string{}})
	require.Len(t, got, 2)
	assert.Equal(t, []string{"Software Engineer United States"}, s.queries)
	assert.Zero(t, got[0].MatchScore)
	assert.InDelta(t, 0.5, got[1].MatchScore, 1e-9)

	uc.Search(context.Background(), JobSearchInput{Skills: []string{"  "}, Location: "Berlin"})
	assert.Equal(t, "Software Engineer Berlin", s.queries[1])
}
