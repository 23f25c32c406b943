package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/Knnivedh/job-rec/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullConfig() config.Config {
	var cfg config.Config
	cfg.Database.DBHost = "localhost"
	cfg.Database.DBName = "jobs"
	cfg.Database.DBUser = "jobs"
	cfg.JWT.AccessSecret = "a"
	cfg.JWT.RefreshSecret = "b"
	cfg.Storage.Bucket = "resumes"
	cfg.LLM.GroqAPIKey = "k"
	return cfg
}

func TestHealth_MissingEnv(t *testing.T) {
	cfg := fullConfig()
	cfg.LLM.GroqAPIKey = ""
	cfg.Storage.Bucket = ""

	_, err := NewHealthUsecase(cfg, nil).Check(context.Background())

	var me *MissingEnvError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, []string{"STORAGE_BUCKET", "GROQ_API_KEY"}, me.Missing)
	assert.Equal(t, "Missing environment variables", err.Error())
}

func TestHealth_Checks(t *testing.T) {
	uc := NewHealthUsecase(fullConfig(), map[string]DependencyCheck{
		"database": func(context.Context) error { return nil },
		"storage":  func(context.Context) error { return errors.New("access denied") },
		"cache":    nil,
	})

	r, err := uc.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeFull, r.Mode)
	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, map[string]string{
		"database": StatusOK,
		"storage":  "Error: access denied",
		"cache":    StatusDisabled,
	}, r.Services)
}

func TestHealth_SimpleMode(t *testing.T) {
	var cfg config.Config
	cfg.LLM.NvidiaAPIKey = "nv"

	r, err := NewHealthUsecase(cfg, nil).Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ModeSimple, r.Mode)
	assert.Equal(t, StatusConfigured, r.Services["nvidia_ai"])
	assert.Equal(t, StatusMissingAPIKey, r.Services["job_search"])
}
