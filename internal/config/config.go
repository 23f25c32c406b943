package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	LLM       LLMConfig
	Storage   StorageConfig
	JobSearch JobSearchConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type LogConfig struct {
	Format string
	Level  string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout      time.Duration
	PoolMaxConns        int32
	PoolMinConns        int32
	PoolMaxConnLifetime time.Duration
	PoolMaxConnIdleTime time.Duration
}

type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	DefaultTTL time.Duration
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// LLMConfig holds the hosted model providers. Groq backs résumé parsing and
// scoring, NVIDIA backs the stateless analyze/coach endpoints and Gemini
// produces embeddings.
type LLMConfig struct {
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	NvidiaAPIKey  string
	NvidiaBaseURL string
	NvidiaModel   string

	GeminiAPIKey         string
	GeminiEmbeddingModel string

	RequestTimeout time.Duration
}

type StorageConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type JobSearchConfig struct {
	RapidAPIKey  string
	RapidAPIHost string
	BaseURL      string
	CacheTTL     time.Duration
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

// fullModeKeys must be set for the persistence-backed endpoints.
var fullModeKeys = []string{
	"DB_HOST",
	"DB_NAME",
	"DB_USER",
	"JWT_ACCESS_SECRET",
	"JWT_REFRESH_SECRET",
	"STORAGE_BUCKET",
	"GROQ_API_KEY",
}

func Load() (Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}

	cfg.App = AppConfig{
		AppName:     optDefault("APP_NAME", "job-rec"),
		Environment: optDefault("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	// LOG_FORMAT defaults to json in production and console elsewhere.
	defaultFormat := "console"
	if cfg.IsProduction() {
		defaultFormat = "json"
	}
	cfg.Log = LogConfig{
		Format: optDefault("LOG_FORMAT", defaultFormat),
		Level:  optDefault("LOG_LEVEL", "info"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:              opt("DB_HOST"),
		DBPort:              optDefault("DB_PORT", "5432"),
		DBName:              opt("DB_NAME"),
		DBUser:              opt("DB_USER"),
		DBPassword:          opt("DB_PASSWORD"),
		DBSSLMode:           optDefault("DB_SSL_MODE", "disable"),
		ConnectTimeout:      parseDuration(opt("DB_CONNECT_TIMEOUT"), 5*time.Second),
		PoolMaxConns:        int32(parseInt(opt("DB_POOL_MAX_CONNS"), 10)),
		PoolMinConns:        int32(parseInt(opt("DB_POOL_MIN_CONNS"), 0)),
		PoolMaxConnLifetime: parseDuration(opt("DB_POOL_MAX_CONN_LIFETIME"), time.Hour),
		PoolMaxConnIdleTime: parseDuration(opt("DB_POOL_MAX_CONN_IDLE_TIME"), 30*time.Minute),
	}

	cfg.Redis = RedisConfig{
		Host:       opt("REDIS_HOST"),
		Port:       optDefault("REDIS_PORT", "6379"),
		Password:   opt("REDIS_PASSWORD"),
		DB:         parseInt(opt("REDIS_DB"), 0),
		DefaultTTL: parseDuration(opt("CACHE_TTL"), 10*time.Minute),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     opt("JWT_ACCESS_SECRET"),
		RefreshSecret:    opt("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  parseDuration(opt("JWT_ACCESS_EXPIRES_IN"), 15*time.Minute),
		RefreshExpiresIn: parseDuration(opt("JWT_REFRESH_EXPIRES_IN"), 7*24*time.Hour),
	}

	cfg.LLM = LLMConfig{
		GroqAPIKey:           opt("GROQ_API_KEY"),
		GroqBaseURL:          optDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		GroqModel:            optDefault("GROQ_MODEL", "llama-3.1-8b-instant"),
		NvidiaAPIKey:         opt("NVIDIA_API_KEY"),
		NvidiaBaseURL:        optDefault("NVIDIA_BASE_URL", "https://integrate.api.nvidia.com/v1"),
		NvidiaModel:          optDefault("NVIDIA_MODEL", "meta/llama-3.1-8b-instruct"),
		GeminiAPIKey:         opt("GEMINI_API_KEY"),
		GeminiEmbeddingModel: optDefault("GEMINI_EMBEDDING_MODEL", "gemini-embedding-001"),
		RequestTimeout:       parseDuration(opt("LLM_REQUEST_TIMEOUT"), 60*time.Second),
	}

	cfg.Storage = StorageConfig{
		Bucket:          opt("STORAGE_BUCKET"),
		Endpoint:        opt("STORAGE_ENDPOINT"),
		Region:          optDefault("STORAGE_REGION", "auto"),
		AccessKeyID:     opt("STORAGE_ACCESS_KEY_ID"),
		SecretAccessKey: opt("STORAGE_SECRET_ACCESS_KEY"),
	}

	cfg.JobSearch = JobSearchConfig{
		RapidAPIKey:  opt("RAPIDAPI_KEY"),
		RapidAPIHost: optDefault("RAPIDAPI_HOST", "jsearch.p.rapidapi.com"),
		BaseURL:      optDefault("JSEARCH_BASE_URL", "https://jsearch.p.rapidapi.com"),
		CacheTTL:     parseDuration(opt("JOB_SEARCH_CACHE_TTL"), 30*time.Minute),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

// MissingForFullMode lists the environment keys required by the
// persistence-backed endpoints that are not configured.
func (c Config) MissingForFullMode() []string {
	values := map[string]string{
		"DB_HOST":            c.Database.DBHost,
		"DB_NAME":            c.Database.DBName,
		"DB_USER":            c.Database.DBUser,
		"JWT_ACCESS_SECRET":  c.JWT.AccessSecret,
		"JWT_REFRESH_SECRET": c.JWT.RefreshSecret,
		"STORAGE_BUCKET":     c.Storage.Bucket,
		"GROQ_API_KEY":       c.LLM.GroqAPIKey,
	}

	missing := make([]string, 0)
	for _, k := range fullModeKeys {
		if strings.TrimSpace(values[k]) == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

func (c Config) DatabaseConfigured() bool {
	return c.Database.DBHost != "" && c.Database.DBName != "" && c.Database.DBUser != ""
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
