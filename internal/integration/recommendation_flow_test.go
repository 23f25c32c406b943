package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Knnivedh/job-rec/internal/config"
	"github.com/Knnivedh/job-rec/internal/database"
	"github.com/Knnivedh/job-rec/internal/database/migration"
	dbpostgres "github.com/Knnivedh/job-rec/internal/database/postgres"
	"github.com/Knnivedh/job-rec/internal/database/seeder"
	"github.com/Knnivedh/job-rec/internal/delivery/http/dto"
	"github.com/Knnivedh/job-rec/internal/delivery/http/handler"
	"github.com/Knnivedh/job-rec/internal/delivery/http/middleware"
	"github.com/Knnivedh/job-rec/internal/delivery/http/routes"
	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/infrastructure/persistence/postgres"
	"github.com/Knnivedh/job-rec/internal/pkg/jwt"
	"github.com/Knnivedh/job-rec/internal/repository"
	"github.com/Knnivedh/job-rec/internal/usecase"
	"github.com/Knnivedh/job-rec/internal/worker"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// titleScorer rates developer roles high, scientist roles medium and the
// rest below the recommendation threshold.
type titleScorer struct{}

func (titleScorer) Score(_ context.Context, _ string, descs []string) matching.ScoreResult {
	out := matching.ScoreResult{Scores: make([]float64, len(descs)), Reasoning: make([]string, len(descs))}
	for i, d := range descs {
		switch {
		case strings.Contains(d, "Developer"):
			out.Scores[i], out.Reasoning[i] = 0.9, "strong frontend overlap"
		case strings.Contains(d, "Scientist"):
			out.Scores[i], out.Reasoning[i] = 0.6, "some data overlap"
		default:
			out.Scores[i], out.Reasoning[i] = 0.1, "unrelated"
		}
	}
	return out
}

func TestIntegration_Register_Recommendations_Feedback(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	require.NoError(t, migration.Runner{}.Run(ctx, db.SQLDB()))

	jobs := repository.NewPostgresJobRepository(db)
	seeders := seeder.Defaults(jobs, nil, worker.NewPool(2, 0), nil)
	require.NoError(t, seeder.Runner{Seeders: seeders}.Run(ctx))

	app, users := newTestApp(t, ctx, db)
	defer func() { _ = users.Close() }()

	email := "it-" + uuid.NewString()[:8] + "@example.com"
	auth := register(t, app, email)
	require.NotNil(t, auth.User)
	defer func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, auth.User.ID)
	}()

	createResume(t, ctx, db, auth.User.ID)

	first := callRecommendations(t, app, auth.AccessToken)
	require.NotEmpty(t, first)
	assertSortedByScoreDesc(t, first)
	assertNoDuplicateJobs(t, first)

	titles := map[string]dto.RecommendationResponse{}
	for _, r := range first {
		assert.GreaterOrEqual(t, r.MatchScore, 0.3)
		assert.LessOrEqual(t, r.MatchScore, 1.0)
		titles[r.JobTitle] = r
	}
	require.Contains(t, titles, "Frontend Developer")
	assert.Contains(t, titles["Frontend Developer"].SkillsMatch, "React")
	assert.Equal(t, "strong frontend overlap", titles["Frontend Developer"].Reasoning)
	assert.NotContains(t, titles, "DevOps Engineer")

	second := callRecommendations(t, app, auth.AccessToken)
	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID, "fresh batch is reused")
	}

	status := postFeedback(t, app, auth.AccessToken, first[0].ID.String(), "like")
	assert.Equal(t, http.StatusOK, status)

	status = postFeedback(t, app, auth.AccessToken, first[0].ID.String(), "meh")
	assert.Equal(t, http.StatusBadRequest, status)

	status = postFeedback(t, app, auth.AccessToken, uuid.NewString(), "like")
	assert.Equal(t, http.StatusNotFound, status)
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	dbcfg := config.DatabaseConfig{
		DBHost:     stringsOrDefault(os.Getenv("JOBREC_TEST_DB_HOST"), os.Getenv("DB_HOST")),
		DBPort:     stringsOrDefault(os.Getenv("JOBREC_TEST_DB_PORT"), os.Getenv("DB_PORT")),
		DBName:     stringsOrDefault(os.Getenv("JOBREC_TEST_DB_NAME"), os.Getenv("DB_NAME")),
		DBUser:     stringsOrDefault(os.Getenv("JOBREC_TEST_DB_USER"), os.Getenv("DB_USER")),
		DBPassword: stringsOrDefault(os.Getenv("JOBREC_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD")),
		DBSSLMode:  stringsOrDefault(os.Getenv("JOBREC_TEST_DB_SSL_MODE"), "disable"),
	}
	if dbcfg.DBHost == "" || dbcfg.DBName == "" || dbcfg.DBUser == "" {
		t.Skip("missing test DB env vars: set JOBREC_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if dbcfg.DBPort == "" {
		dbcfg.DBPort = "5432"
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	require.NoError(t, err, "connect db")
	return db
}

func newTestApp(t *testing.T, ctx context.Context, db database.DB) (*fiber.App, *postgres.UserRepository) {
	t.Helper()

	users, err := postgres.NewUserRepository(ctx, db)
	require.NoError(t, err)

	resumes := repository.NewPostgresResumeRepository(db)
	recs := repository.NewPostgresRecommendationRepository(db)
	jobs := repository.NewPostgresJobRepository(db)
	feedback := repository.NewPostgresFeedbackRepository(db)

	jwtSvc := jwt.NewHMACService("job-rec-test", "test-access-secret", "test-refresh-secret", 15*time.Minute, time.Hour)
	recUC := usecase.NewRecommendationUsecase(users, resumes, jobs, recs, matching.NewAssembler(titleScorer{}), nil, nil, nil)

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())

	routes.NewRegistry(routes.Handlers{
		Auth:           handler.NewAuthHandler(usecase.NewAuthUsecase(users, jwtSvc)),
		Recommendation: handler.NewRecommendationHandler(recUC, usecase.NewFeedbackUsecase(recs, feedback, nil, nil)),
	}, middleware.NewAuthMiddleware(jwtSvc), true).Register(app)

	return app, users
}

func createResume(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID) {
	t.Helper()

	summary := "Frontend developer focused on React"
	profile := resume.EmptyProfile()
	profile.Skills = []string{"React", "JavaScript", "CSS"}
	profile.Summary = &summary

	_, err := repository.NewPostgresResumeRepository(db).CreateActive(ctx, resume.Resume{
		UserID:      userID,
		FileName:    "cv.pdf",
		FilePath:    userID.String() + "/cv.pdf",
		FileSize:    1024,
		MimeType:    resume.MimePDF,
		RawText:     "Frontend developer. React, JavaScript, CSS.",
		Profile:     profile,
		ParseSource: resume.SourceFallback,
	})
	require.NoError(t, err, "create resume")
}

func register(t *testing.T, app *fiber.App, email string) dto.AuthResponse {
	t.Helper()

	b, _ := json.Marshal(map[string]string{"email": email, "password": "password123", "full_name": "Integration User"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.AccessToken)
	return out
}

func callRecommendations(t *testing.T, app *fiber.App, token string) []dto.RecommendationResponse {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/recommendations", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req, fiber.TestConfig{Timeout: 30 * time.Second})
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.RecommendationListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out.Recommendations
}

func postFeedback(t *testing.T, app *fiber.App, token, recID, feedbackType string) int {
	t.Helper()

	b, _ := json.Marshal(map[string]string{"recommendation_id": recID, "feedback_type": feedbackType})
	req := httptest.NewRequest(http.MethodPost, "/api/recommendations/feedback", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func assertSortedByScoreDesc(t *testing.T, items []dto.RecommendationResponse) {
	t.Helper()
	for i := 1; i < len(items); i++ {
		assert.GreaterOrEqual(t, items[i-1].MatchScore, items[i].MatchScore, "index %d", i)
	}
}

func assertNoDuplicateJobs(t *testing.T, items []dto.RecommendationResponse) {
	t.Helper()
	seen := map[uuid.UUID]bool{}
	for _, it := range items {
		assert.False(t, seen[it.JobID], "duplicate job %s", it.JobID)
		seen[it.JobID] = true
	}
}

func stringsOrDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
