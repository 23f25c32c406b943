package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Knnivedh/job-rec/internal/logger"

	"go.uber.org/zap"
)

// ChatClient talks to an OpenAI-compatible /chat/completions endpoint
// (Groq, NVIDIA API catalog).
type ChatClient struct {
	provider string
	baseURL  string
	apiKey   string
	model    string
	client   *http.Client
	logger   *zap.Logger
}

type ChatClientConfig struct {
	Provider string
	BaseURL  string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewChatClient(cfg ChatClientConfig, log *zap.Logger) *ChatClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ChatClient{
		provider: strings.TrimSpace(cfg.Provider),
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:   strings.TrimSpace(cfg.APIKey),
		model:    strings.TrimSpace(cfg.Model),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.WithProvider(log, cfg.Provider, cfg.Model),
	}
}

func (c *ChatClient) Configured() bool {
	return c != nil && c.apiKey != "" && c.baseURL != ""
}

func (c *ChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if c.client == nil {
		return "", errors.New("nil http client")
	}
	endpoint := c.baseURL + "/chat/completions"

	msgs := make([]chatMessage, 0, 2)
	if s := strings.TrimSpace(req.System); s != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: s})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.Prompt})

	b, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("[LLM] request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return "", fmt.Errorf("%s chat completion: %w", c.provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logger.Warn("[LLM] non-2xx response",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", logger.Truncate(bodyStr, 512)),
		)
		return "", fmt.Errorf("%s chat completion failed: status=%d body=%s", c.provider, resp.StatusCode, bodyStr)
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", c.provider, err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.provider)
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%s returned empty content", c.provider)
	}

	c.logger.Debug("[LLM] completion ok", zap.Duration("took", time.Since(start)), zap.Int("chars", len(content)))
	return content, nil
}

var _ Completer = (*ChatClient)(nil)
