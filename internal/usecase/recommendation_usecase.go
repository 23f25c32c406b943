package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Knnivedh/job-rec/internal/domain/job"
	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/domain/recommendation"
	"github.com/Knnivedh/job-rec/internal/domain/user"
	"github.com/Knnivedh/job-rec/internal/infrastructure/cache"
	"github.com/Knnivedh/job-rec/internal/logger"
	"github.com/Knnivedh/job-rec/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecommendationCache stores formatted batches and holds the per-user
// generation lock.
type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidateUser(ctx context.Context, userID string) error
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

const (
	generationLockTTL = 30 * time.Second
	lockPollInterval  = 500 * time.Millisecond
	lockPollAttempts  = 6
)

type RecommendationNotifier interface {
	NotifyRecommendationsReady(userID uuid.UUID, resumeID uuid.UUID, count int)
}

type JobAssembler interface {
	Assemble(ctx context.Context, c matching.Candidate, jobs []job.Posting) []recommendation.Recommendation
}

type RecommendationUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) ([]recommendation.View, error)
}

type Recommendation struct {
	users     user.Repository
	resumes   repository.ResumeRepository
	jobs      repository.JobRepository
	recs      repository.RecommendationRepository
	assembler JobAssembler
	cache     RecommendationCache
	notifier  RecommendationNotifier
	logger    *zap.Logger

	jobsLimit int
	cacheTTL  time.Duration
	now       func() time.Time
	sleep     func(context.Context, time.Duration) error
}

func NewRecommendationUsecase(
	users user.Repository,
	resumes repository.ResumeRepository,
	jobs repository.JobRepository,
	recs repository.RecommendationRepository,
	assembler JobAssembler,
	c RecommendationCache,
	notifier RecommendationNotifier,
	log *zap.Logger,
) *Recommendation {
	return &Recommendation{
		users:     users,
		resumes:   resumes,
		jobs:      jobs,
		recs:      recs,
		assembler: assembler,
		cache:     c,
		notifier:  notifier,
		logger:    logger.OrNop(log),
		jobsLimit: repository.DefaultActiveJobsLimit,
		cacheTTL:  15 * time.Minute,
		now:       time.Now,
		sleep:     sleepCtx,
	}
}

// Get returns the user's current batch for their active résumé. A batch
// younger than the freshness window is reused; otherwise active jobs are
// scored and a new batch is stored.
func (u *Recommendation) Get(ctx context.Context, userID uuid.UUID) ([]recommendation.View, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	exists, err := u.users.ExistsByID(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	active, err := u.resumes.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrResumeNotFound) {
			return []recommendation.View{}, nil
		}
		u.logger.Error("[Recommendation] load resume failed", zap.Error(err))
		return nil, ErrInternal
	}

	log := u.logger.With(
		zap.String(logger.FieldUserID, userID.String()),
		zap.String(logger.FieldResumeID, active.ID.String()),
	)

	key := cache.RecommendationsKey(userID.String(), active.ID.String())
	if u.cache != nil {
		var cached []recommendation.View
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	start := u.now()
	fresh, err := u.recs.ListSince(ctx, userID, active.ID, start.Add(-recommendation.FreshnessWindow), repository.DefaultRecommendationLimit)
	if err != nil {
		log.Error("[Recommendation] load batch failed", zap.Error(err))
		return nil, ErrInternal
	}
	if len(fresh) > 0 {
		u.store(ctx, log, key, fresh)
		return fresh, nil
	}

	lockKey := cache.RecommendationsLockKey(userID.String())
	if u.acquire(ctx, log, lockKey, active.ID.String()) {
		defer func() {
			if err := u.cache.Delete(context.WithoutCancel(ctx), lockKey); err != nil {
				log.Warn("[Recommendation] release lock failed", zap.Error(err))
			}
		}()
	} else if views := u.awaitBatch(ctx, userID, active.ID, start); len(views) > 0 {
		u.store(ctx, log, key, views)
		return views, nil
	}

	postings, err := u.jobs.ListActive(ctx, u.jobsLimit)
	if err != nil {
		log.Error("[Recommendation] load jobs failed", zap.Error(err))
		return nil, ErrInternal
	}

	scored := u.assembler.Assemble(ctx, matching.Candidate{
		UserID:    userID,
		ResumeID:  active.ID,
		RawText:   active.RawText,
		Profile:   active.Profile,
		Embedding: active.Embedding,
	}, postings)

	if err := u.recs.InsertBatch(ctx, scored); err != nil {
		log.Error("[Recommendation] persist batch failed", zap.Error(err))
		return nil, ErrRecommendations
	}

	out, err := u.recs.ListSince(ctx, userID, active.ID, start.Add(-time.Second), repository.DefaultRecommendationLimit)
	if err != nil {
		log.Error("[Recommendation] reload batch failed", zap.Error(err))
		return nil, ErrInternal
	}

	if out == nil {
		out = []recommendation.View{}
	}

	log.Info("[Recommendation] generated",
		zap.Int("jobs", len(postings)),
		zap.Int("kept", len(scored)),
	)
	if len(out) > 0 {
		u.store(ctx, log, key, out)
		if u.notifier != nil {
			u.notifier.NotifyRecommendationsReady(userID, active.ID, len(out))
		}
	}
	return out, nil
}

// acquire takes the per-user generation lock. A cache error counts as not
// locked; the caller then generates without holding it.
func (u *Recommendation) acquire(ctx context.Context, log *zap.Logger, key, owner string) bool {
	if u.cache == nil {
		return false
	}
	ok, err := u.cache.SetIfNotExists(ctx, key, owner, generationLockTTL)
	if err != nil {
		log.Warn("[Recommendation] lock unavailable", zap.Error(err))
		return false
	}
	if !ok {
		log.Info("[Recommendation] generation in progress, waiting")
	}
	return ok
}

// awaitBatch polls for a batch written by the lock holder. It returns nil
// when none shows up, in which case the caller generates its own.
func (u *Recommendation) awaitBatch(ctx context.Context, userID, resumeID uuid.UUID, since time.Time) []recommendation.View {
	if u.cache == nil {
		return nil
	}
	for i := 0; i < lockPollAttempts; i++ {
		if err := u.sleep(ctx, lockPollInterval); err != nil {
			return nil
		}
		views, err := u.recs.ListSince(ctx, userID, resumeID, since.Add(-recommendation.FreshnessWindow), repository.DefaultRecommendationLimit)
		if err == nil && len(views) > 0 {
			return views
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (u *Recommendation) store(ctx context.Context, log *zap.Logger, key string, views []recommendation.View) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, views, u.cacheTTL); err != nil {
		log.Warn("[Recommendation] cache store failed", zap.Error(err))
	}
}

var _ RecommendationUsecase = (*Recommendation)(nil)
