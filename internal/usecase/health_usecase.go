package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Knnivedh/job-rec/internal/config"

	"golang.org/x/sync/errgroup"
)

const (
	ModeFull   = "FULL"
	ModeSimple = "SIMPLE"

	StatusOK            = "OK"
	StatusDisabled      = "Disabled"
	StatusConfigured    = "Configured"
	StatusMissingAPIKey = "Missing API Key"
)

// MissingEnvError lists required environment variables that are unset.
type MissingEnvError struct {
	Missing []string
}

func (e *MissingEnvError) Error() string { return "Missing environment variables" }

// DependencyCheck checks one dependency. A nil check reports StatusDisabled.
type DependencyCheck func(ctx context.Context) error

type HealthReport struct {
	Status      string            `json:"status"`
	Mode        string            `json:"mode"`
	Environment string            `json:"environment"`
	Timestamp   time.Time         `json:"timestamp"`
	Services    map[string]string `json:"services"`
}

type HealthUsecase interface {
	Check(ctx context.Context) (HealthReport, error)
}

type Health struct {
	cfg    config.Config
	checks map[string]DependencyCheck
	now    func() time.Time
}

// NewHealthUsecase takes named checks, e.g. "database", "storage", "cache".
func NewHealthUsecase(cfg config.Config, checks map[string]DependencyCheck) *Health {
	return &Health{cfg: cfg, checks: checks, now: time.Now}
}

// Mode is SIMPLE when only the stateless endpoints can work: no database
// configured but an analysis model key is present.
func (u *Health) Mode() string {
	if !u.cfg.DatabaseConfigured() && u.cfg.LLM.NvidiaAPIKey != "" {
		return ModeSimple
	}
	return ModeFull
}

func (u *Health) Check(ctx context.Context) (HealthReport, error) {
	report := HealthReport{
		Status:      StatusOK,
		Mode:        u.Mode(),
		Environment: u.cfg.App.Environment,
		Timestamp:   u.now().UTC(),
		Services:    map[string]string{},
	}

	if report.Mode == ModeSimple {
		report.Services["nvidia_ai"] = configured(u.cfg.LLM.NvidiaAPIKey)
		report.Services["job_search"] = configured(u.cfg.JobSearch.RapidAPIKey)
		return report, nil
	}

	if missing := u.cfg.MissingForFullMode(); len(missing) > 0 {
		return HealthReport{}, &MissingEnvError{Missing: missing}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(checkCtx)
	for name, check := range u.checks {
		if check == nil {
			mu.Lock()
			report.Services[name] = StatusDisabled
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			status := StatusOK
			if err := check(gctx); err != nil {
				status = "Error: " + err.Error()
				if errors.Is(err, context.DeadlineExceeded) {
					status = "Error: timeout"
				}
			}
			mu.Lock()
			report.Services[name] = status
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return report, nil
}

func configured(key string) string {
	if key == "" {
		return StatusMissingAPIKey
	}
	return StatusConfigured
}

var _ HealthUsecase = (*Health)(nil)
