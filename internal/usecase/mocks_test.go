package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/domain/recommendation"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/domain/user"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/resumeparser"

	"github.com/google/uuid"
)

type mockUsers struct {
	exists bool
	err    error
	user   user.User
}

func (m mockUsers) Create(context.Context, user.User) (user.User, error) { return m.user, m.err }
func (m mockUsers) GetByID(context.Context, uuid.UUID) (user.User, error) {
	if !m.exists {
		return user.User{}, user.ErrNotFound
	}
	return m.user, m.err
}
func (m mockUsers) GetByEmail(context.Context, string) (user.User, error) { return m.user, m.err }
func (m mockUsers) ExistsByID(context.Context, uuid.UUID) (bool, error)   { return m.exists, m.err }

type mockResumes struct {
	active  *resume.Resume
	created []resume.Resume
	list    []resume.Resume
	err     error
}

func (m *mockResumes) CreateActive(_ context.Context, r resume.Resume) (resume.Resume, error) {
	if m.err != nil {
		return resume.Resume{}, m.err
	}
	r.ID = uuid.New()
	r.IsActive = true
	m.created = append(m.created, r)
	return r, nil
}

func (m *mockResumes) GetActiveByUser(context.Context, uuid.UUID) (resume.Resume, error) {
	if m.err != nil {
		return resume.Resume{}, m.err
	}
	if m.active == nil {
		return resume.Resume{}, repository.ErrResumeNotFound
	}
	return *m.active, nil
}

func (m *mockResumes) ListActiveByUser(context.Context, uuid.UUID) ([]resume.Resume, error) {
	return m.list, m.err
}

type mockUserSkills struct {
	replaced []string
	err      error
}

func (m *mockUserSkills) Replace(_ context.Context, _ uuid.UUID, _ string, names []string) error {
	m.replaced = names
	return m.err
}

func (m *mockUserSkills) FindByUserID(context.Context, uuid.UUID) ([]user.Skill, error) {
	return nil, m.err
}

type mockStorage struct {
	put     []string
	deleted []string
	putErr  error
}

func (m *mockStorage) Put(_ context.Context, key string, _ []byte, _ string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.put = append(m.put, key)
	return nil
}

func (m *mockStorage) Delete(_ context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	return nil
}

type mockParser struct {
	res   resumeparser.Result
	calls int
}

func (m *mockParser) Parse(context.Context, []byte, string) resumeparser.Result {
	m.calls++
	return m.res
}

type mockEmbedder struct {
	out []float32
	err error
}

func (m mockEmbedder) Embed(context.Context, string) ([]float32, error) { return m.out, m.err }

type mockCache struct {
	mu          sync.Mutex
	data        map[string]any
	invalidated []string
}

func newMockCache() *mockCache { return &mockCache{data: map[string]any{}} }

func (m *mockCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *[]recommendation.View:
		*dst = v.([]recommendation.View)
	case *[]ExternalJob:
		*dst = v.([]ExternalJob)
	default:
		return false, errors.New("unsupported type")
	}
	return true, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mockCache) InvalidateUser(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.invalidated = append(m.invalidated, userID)
	return nil
}

func (m *mockCache) SetIfNotExists(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, held := m.data[key]; held {
		return false, nil
	}
	m.data[key] = value
	return true, nil
}

func (m *mockCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

type mockJobs struct {
	postings []job.Posting
	err      error
	limit    int
}

func (m *mockJobs) ListActive(_ context.Context, limit int) ([]job.Posting, error) {
	m.limit = limit
	return m.postings, m.err
}
func (m *mockJobs) UpsertCompany(context.Context, job.Company) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (m *mockJobs) UpsertPosting(context.Context, job.Posting) (uuid.UUID, error) {
	return uuid.New(), nil
}
func (m *mockJobs) CountActive(context.Context) (int, error) { return len(m.postings), nil }

type mockRecs struct {
	fresh     []recommendation.View
	inserted  []recommendation.Recommendation
	sinceArgs []time.Time
	insertErr error
	owner     uuid.UUID
	ownerErr  error
}

func (m *mockRecs) ListSince(_ context.Context, _, _ uuid.UUID, since time.Time, _ int) ([]recommendation.View, error) {
	m.sinceArgs = append(m.sinceArgs, since)
	if len(m.inserted) > 0 {
		out := make([]recommendation.View, 0, len(m.inserted))
		for _, r := range m.inserted {
			out = append(out, recommendation.View{Recommendation: r, JobTitle: "job"})
		}
		return out, nil
	}
	return m.fresh, nil
}

func (m *mockRecs) InsertBatch(_ context.Context, recs []recommendation.Recommendation) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, recs...)
	return nil
}

func (m *mockRecs) OwnedBy(_ context.Context, _, userID uuid.UUID) (bool, error) {
	if m.ownerErr != nil {
		return false, m.ownerErr
	}
	return m.owner == userID, nil
}

type mockAssembler struct {
	out   []recommendation.Recommendation
	calls int
	jobs  int
}

func (m *mockAssembler) Assemble(_ context.Context, _ matching.Candidate, jobs []job.Posting) []recommendation.Recommendation {
	m.calls++
	m.jobs = len(jobs)
	return m.out
}

type mockNotifier struct {
	calls int
	count int
}

func (m *mockNotifier) NotifyRecommendationsReady(_ uuid.UUID, _ uuid.UUID, count int) {
	m.calls++
	m.count = count
}
