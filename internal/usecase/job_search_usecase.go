package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/infrastructure/cache"
	"github.com/Knnivedh/job-rec/internal/infrastructure/jobsearch"
	"github.com/Knnivedh/job-rec/internal/logger"

	"go.uber.org/zap"
)

const (
	DefaultSearchLocation = "United States"
	DefaultSearchRole     = "Software Engineer"
	maxSearchResults      = 10
)

// SearchCache is the subset of the Redis cache used for upstream listings.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type JobSearchInput struct {
	Skills   []string
	Location string
}

// ExternalJob is an upstream listing scored against the caller's skills.
type ExternalJob struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Salary       any      `json:"salary"`
	Type         string   `json:"type"`
	URL          string   `json:"url"`
	Posted       string   `json:"posted"`
	MatchScore   float64  `json:"match_score"`
}

type JobSearchUsecase interface {
	Search(ctx context.Context, in JobSearchInput) []ExternalJob
}

type JobSearch struct {
	searcher jobsearch.Searcher
	cache    SearchCache
	ttl      time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

func NewJobSearchUsecase(searcher jobsearch.Searcher, c SearchCache, ttl time.Duration, log *zap.Logger) *JobSearch {
	return &JobSearch{searcher: searcher, cache: c, ttl: ttl, logger: logger.OrNop(log), now: time.Now}
}

// Search never fails: missing configuration and upstream errors both yield
// an empty list.
func (u *JobSearch) Search(ctx context.Context, in JobSearchInput) []ExternalJob {
	if u.searcher == nil {
		return []ExternalJob{}
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = DefaultSearchLocation
	}

	key := cache.JobSearchKey(in.Skills, location)
	if u.cache != nil {
		var cached []ExternalJob
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached
		}
	}

	role := DefaultSearchRole
	if len(in.Skills) > 0 && strings.TrimSpace(in.Skills[0]) != "" {
		role = strings.TrimSpace(in.Skills[0])
	}

	listings, err := u.searcher.Search(ctx, role+" "+location)
	if err != nil {
		u.logger.Warn("[JobSearch] search failed", zap.Error(err))
		return []ExternalJob{}
	}

	if len(listings) > maxSearchResults {
		listings = listings[:maxSearchResults]
	}
	out := make([]ExternalJob, 0, len(listings))
	for _, l := range listings {
		out = append(out, u.toExternal(in.Skills, l))
	}

	if u.cache != nil && len(out) > 0 {
		if err := u.cache.SetJSON(ctx, key, out, u.ttl); err != nil {
			u.logger.Warn("[JobSearch] cache store failed", zap.Error(err))
		}
	}
	return out
}

func (u *JobSearch) toExternal(skills []string, l jobsearch.Listing) ExternalJob {
	loc := l.Country
	if l.City != "" && l.State != "" {
		loc = l.City + ", " + l.State
	}
	if loc == "" {
		loc = "Remote"
	}

	link := l.ApplyLink
	if link == "" {
		link = l.GoogleLink
	}
	if link == "" {
		link = "#"
	}

	posted := l.PostedAt
	if posted == "" {
		posted = u.now().UTC().Format(time.RFC3339)
	}

	reqs := l.RequiredSkills
	if reqs == nil {
		reqs = []string{}
	}

	return ExternalJob{
		Title:        orDefault(l.Title, "Unknown Title"),
		Company:      orDefault(l.EmployerName, "Unknown Company"),
		Location:     loc,
		Description:  l.Description,
		Requirements: reqs,
		Salary:       l.Salary,
		Type:         orDefault(l.EmploymentType, "Full-time"),
		URL:          link,
		Posted:       posted,
		MatchScore:   matching.SkillOverlapScore(skills, reqs),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

var _ JobSearchUsecase = (*JobSearch)(nil)
