package app

import (
	"context"
	"errors"
	"time"

	"github.com/Knnivedh/job-rec/internal/ai"
	"github.com/Knnivedh/job-rec/internal/config"
	"github.com/Knnivedh/job-rec/internal/database"
	dbpostgres "github.com/Knnivedh/job-rec/internal/database/postgres"
	"github.com/Knnivedh/job-rec/internal/delivery/http/handler"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/delivery/http/routes"
	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/infrastructure/cache"
	"github.com/Knnivedh/job-rec/internal/infrastructure/jobsearch"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/infrastructure/persistence/postgres"
	"github.com/Knnivedh/job-rec/internal/infrastructure/storage"
	"github.com/Knnivedh/job-rec/internal/pkg/jwt"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/resumeparser"
	"github.com/Knnivedh/job-rec/internal/usecase"
	useruc "github.com/Knnivedh/job-rec/internal/usecase/user"
	"github.com/Knnivedh/job-rec/internal/ws"

	"go.uber.org/zap"
)

const jwtIssuer = "job-rec"

// Container owns the process-wide dependencies. DB, Storage and the
// persistence-backed handlers stay nil in simple mode.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB      database.DB
	Cache   *cache.Redis
	Storage *storage.Bucket
	Hub     *ws.Hub

	users *postgres.UserRepository

	// Embedder is nil when no embedding provider is configured.
	Embedder llm.Embedder
	gemini   *llm.GeminiClient

	Handlers routes.Handlers
	Auth     *middleware.AuthMiddleware
}

// FullMode reports whether the persistence-backed endpoints are served.
func (c *Container) FullMode() bool {
	return c != nil && c.DB != nil
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Container{Config: cfg, Logger: log}

	if cfg.DatabaseConfigured() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		cancel()
		if err != nil {
			return nil, err
		}
		c.DB = db
	} else {
		log.Info("[App] database not configured, serving simple mode")
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, log)

	bucket, err := storage.NewS3(ctx, cfg.Storage, log)
	switch {
	case errors.Is(err, storage.ErrNotConfigured):
		log.Info("[App] STORAGE_BUCKET not set, uploads disabled")
	case err != nil:
		_ = c.Close()
		return nil, err
	default:
		c.Storage = bucket
	}

	gemini, err := llm.NewGeminiClient(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiEmbeddingModel, log)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		log.Info("[App] GEMINI_API_KEY not set, embeddings disabled")
	case err != nil:
		log.Warn("[App] embedding client unavailable", zap.Error(err))
	default:
		c.Embedder = gemini
		c.gemini = gemini
	}

	if err := c.wire(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// wire builds usecases and handlers. Groq backs parsing and scoring of
// stored résumés; NVIDIA backs the stateless analysis and coaching, with
// Gemini standing in when no NVIDIA key is set.
func (c *Container) wire(ctx context.Context) error {
	cfg := c.Config
	log := c.Logger

	groq := llm.NewChatClient(llm.ChatClientConfig{
		Provider: "groq",
		BaseURL:  cfg.LLM.GroqBaseURL,
		APIKey:   cfg.LLM.GroqAPIKey,
		Model:    cfg.LLM.GroqModel,
		Timeout:  cfg.LLM.RequestTimeout,
	}, log)
	nvidia := llm.NewChatClient(llm.ChatClientConfig{
		Provider: "nvidia",
		BaseURL:  cfg.LLM.NvidiaBaseURL,
		APIKey:   cfg.LLM.NvidiaAPIKey,
		Model:    cfg.LLM.NvidiaModel,
		Timeout:  cfg.LLM.RequestTimeout,
	}, log)

	stateless := llm.Fallback{nvidia}
	if c.gemini != nil {
		stateless = append(stateless, c.gemini)
	}

	jwtSvc := jwt.NewHMACService(jwtIssuer, cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)
	c.Auth = middleware.NewAuthMiddleware(jwtSvc)

	analyze := usecase.NewAnalyzeUsecase(resumeparser.New(stateless, log), log)
	jobSearch := usecase.NewJobSearchUsecase(jobsearch.NewClient(cfg.JobSearch, log), c.Cache, cfg.JobSearch.CacheTTL, log)
	coach := usecase.NewCoachUsecase(ai.NewCoach(stateless), ai.NewSkillGapAnalyzer(stateless, log), log)

	c.Handlers = routes.Handlers{
		Health: handler.NewHealthHandler(usecase.NewHealthUsecase(cfg, c.checks())),
		Simple: handler.NewSimpleHandler(analyze, jobSearch),
		Coach:  handler.NewCoachHandler(coach),
	}

	if c.DB == nil {
		return nil
	}

	users, err := postgres.NewUserRepository(ctx, c.DB)
	if err != nil {
		return err
	}
	c.users = users
	resumes := repository.NewPostgresResumeRepository(c.DB)
	jobs := repository.NewPostgresJobRepository(c.DB)
	recs := repository.NewPostgresRecommendationRepository(c.DB)
	feedback := repository.NewPostgresFeedbackRepository(c.DB)
	userSkills := repository.NewPostgresUserSkillRepository(c.DB)

	c.Hub = ws.NewHub(log)
	go c.Hub.Run()

	resumeUC := usecase.NewResumeUsecase(users, resumes, userSkills, c.Storage, resumeparser.New(groq, log), c.Embedder, c.Cache, log)
	assembler := matching.NewAssembler(ai.NewScorer(groq, log))
	recUC := usecase.NewRecommendationUsecase(users, resumes, jobs, recs, assembler, c.Cache, ws.NewNotifier(c.Hub), log)

	c.Handlers.Auth = handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc))
	c.Handlers.User = handler.NewUserHandler(useruc.NewService(users, userSkills))
	c.Handlers.Resume = handler.NewResumeHandler(resumeUC)
	c.Handlers.Recommendation = handler.NewRecommendationHandler(recUC, usecase.NewFeedbackUsecase(recs, feedback, c.Cache, log))
	c.Handlers.WS = ws.NewHandler(c.Hub, log)
	return nil
}

// checks maps health service names to their checks. A nil check is
// reported as disabled.
func (c *Container) checks() map[string]usecase.DependencyCheck {
	checks := map[string]usecase.DependencyCheck{
		"database": nil,
		"storage":  nil,
		"cache":    nil,
	}
	if c.DB != nil {
		checks["database"] = c.DB.Ping
	}
	if c.Storage != nil {
		checks["storage"] = c.Storage.Ping
	}
	if c.Cache.Enabled() {
		checks["cache"] = c.Cache.Ping
	}
	return checks
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.users != nil {
		errs = append(errs, c.users.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
