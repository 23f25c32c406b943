// Package jobsearch queries the JSearch listing aggregator on RapidAPI.
package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Knnivedh/job-rec/internal/config"

	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("job search api key not configured")

// Listing is one upstream job as returned by /search.
type Listing struct {
	Title          string   `json:"job_title"`
	EmployerName   string   `json:"employer_name"`
	City           string   `json:"job_city"`
	State          string   `json:"job_state"`
	Country        string   `json:"job_country"`
	Description    string   `json:"job_description"`
	RequiredSkills []string `json:"job_required_skills"`
	Salary         any      `json:"job_salary"`
	EmploymentType string   `json:"job_employment_type"`
	ApplyLink      string   `json:"job_apply_link"`
	GoogleLink     string   `json:"job_google_link"`
	PostedAt       string   `json:"job_posted_at_datetime_utc"`
}

type searchResponse struct {
	Data []Listing `json:"data"`
}

type Searcher interface {
	Search(ctx context.Context, query string) ([]Listing, error)
}

type Client struct {
	baseURL string
	apiKey  string
	host    string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(cfg config.JobSearchConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:  strings.TrimSpace(cfg.RapidAPIKey),
		host:    strings.TrimSpace(cfg.RapidAPIHost),
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
	}
}

func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Search fetches the first result page for query.
func (c *Client) Search(ctx context.Context, query string) ([]Listing, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("query", strings.TrimSpace(query))
	q.Set("page", "1")
	q.Set("num_pages", "1")
	endpoint := c.baseURL + "/search?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Warn("[JobSearch] search failed",
			zap.Int("status", resp.StatusCode), zap.String("body", bodyStr))
		return nil, fmt.Errorf("job search failed: status=%d body=%s", resp.StatusCode, bodyStr)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode job search response: %w", err)
	}
	return out.Data, nil
}

var _ Searcher = (*Client)(nil)
