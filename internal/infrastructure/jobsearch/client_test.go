package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Knnivedh/job-rec/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_NotConfigured(t *testing.T) {
	c := NewClient(config.JobSearchConfig{BaseURL: "http://unused"}, nil)
	assert.False(t, c.Configured())

	_, err := c.Search(context.Background(), "Go Remote")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSearch_SendsQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Go United States", r.URL.Query().Get("query"))
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		assert.Equal(t, "key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, "jsearch.example", r.Header.Get("X-RapidAPI-Host"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"job_title":"Go Dev","employer_name":"Acme","job_city":"Austin","job_state":"TX","job_required_skills":["Go"],"job_salary":null}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.JobSearchConfig{BaseURL: srv.URL + "/", RapidAPIKey: "key", RapidAPIHost: "jsearch.example"}, nil)
	got, err := c.Search(context.Background(), "Go United States")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Go Dev", got[0].Title)
	assert.Equal(t, "Acme", got[0].EmployerName)
	assert.Equal(t, []string{"Go"}, got[0].RequiredSkills)
	assert.Nil(t, got[0].Salary)
}

func TestSearch_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(config.JobSearchConfig{BaseURL: srv.URL, RapidAPIKey: "key"}, nil)
	_, err := c.Search(context.Background(), "Go")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=429")
	assert.Contains(t, err.Error(), "quota exceeded")
}
