package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain"
	"github.com/Knnivedh/job-rec/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiChatModel = "gemini-2.5-flash"

// GeminiClient produces embeddings and, optionally, chat completions through
// the Gemini API.
type GeminiClient struct {
	client         *genai.Client
	embeddingModel string
	chatModel      string
	logger         *zap.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, embeddingModel string, log *zap.Logger) (*GeminiClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrNotConfigured
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiClient{
		client:         client,
		embeddingModel: strings.TrimSpace(embeddingModel),
		chatModel:      defaultGeminiChatModel,
		logger:         logger.WithProvider(log, "gemini", embeddingModel),
	}, nil
}

// Embed returns a vector of domain.EmbeddingDimensions values for text.
func (g *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if g == nil || g.client == nil {
		return nil, ErrNotConfigured
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("embedding input must not be empty")
	}

	dims := int32(domain.EmbeddingDimensions)
	resp, err := g.client.Models.EmbedContent(ctx, g.embeddingModel, genai.Text(text), &genai.EmbedContentConfig{
		OutputDimensionality: &dims,
	})
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini returned no embeddings")
	}

	values := resp.Embeddings[0].Values
	if !domain.ValidEmbedding(values) {
		return nil, fmt.Errorf("unexpected embedding length %d", len(values))
	}
	return values, nil
}

func (g *GeminiClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if g == nil || g.client == nil {
		return "", ErrNotConfigured
	}

	cfg := &genai.GenerateContentConfig{}
	temp := float32(req.Temperature)
	cfg.Temperature = &temp
	if req.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if s := strings.TrimSpace(req.System); s != "" {
		cfg.SystemInstruction = genai.NewContentFromText(s, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.chatModel, genai.Text(req.Prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || strings.TrimSpace(part.Text) == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(strings.TrimSpace(part.Text))
		}
	}

	out := strings.TrimSpace(builder.String())
	if out == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return out, nil
}

var (
	_ Embedder  = (*GeminiClient)(nil)
	_ Completer = (*GeminiClient)(nil)
)
