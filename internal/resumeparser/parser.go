// Package resumeparser turns uploaded résumé files into structured profiles.
//
// Parsing runs text extraction, then a structured-extraction chat completion
// whose output is always cleaned. When the model is unavailable or its output
// is unusable, a pattern-based extractor takes over; that path is a degraded
// success, not an error.
package resumeparser

import (
	"context"
	"strings"

	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
	"github.com/Knnivedh/job-rec/internal/pkg/llmjson"

	"go.uber.org/zap"
)

const (
	mimePDF  = resume.MimePDF
	mimeDOCX = resume.MimeDOCX

	ErrUnsupportedType = "Unsupported file type"
	ErrNoText          = "No text content found in file"
)

// Result is the outcome of a parse. Err is set only for terminal failures
// (unsupported type, extraction failure, empty text); Profile is then empty.
type Result struct {
	RawText string
	Profile resume.ParsedProfile
	Source  resume.ParseSource
	Err     string
}

func (r Result) Failed() bool {
	return r.Err != ""
}

type Parser struct {
	completer  llm.Completer
	extractors map[string]ExtractFunc
	logger     *zap.Logger
}

type Option func(*Parser)

// WithExtractor overrides the text extractor for a MIME type.
func WithExtractor(mime string, fn ExtractFunc) Option {
	return func(p *Parser) {
		p.extractors[mime] = fn
	}
}

func New(completer llm.Completer, logger *zap.Logger, opts ...Option) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	p := &Parser{
		completer:  completer,
		extractors: defaultExtractors(),
		logger:     logger,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Parser) Parse(ctx context.Context, data []byte, mimeType string) Result {
	mime := strings.ToLower(strings.TrimSpace(mimeType))
	extract, ok := p.extractors[mime]
	if !ok || !resume.IsSupportedMime(mime) {
		return failed(ErrUnsupportedType)
	}

	text, err := extract(data)
	if err != nil {
		p.logger.Warn("[ResumeParser] text extraction failed", zap.String("mime", mime), zap.Error(err))
		return failed(err.Error())
	}

	text = strings.TrimSpace(sanitizeText(text))
	if text == "" {
		return failed(ErrNoText)
	}

	profile, err := p.parseWithAI(ctx, text)
	if err != nil {
		p.logger.Info("[ResumeParser] using fallback extraction", zap.Error(err))
		return Result{RawText: text, Profile: fallbackProfile(text), Source: resume.SourceFallback}
	}
	return Result{RawText: text, Profile: profile, Source: resume.SourceAI}
}

func (p *Parser) parseWithAI(ctx context.Context, text string) (resume.ParsedProfile, error) {
	if p.completer == nil {
		return resume.ParsedProfile{}, llm.ErrNotConfigured
	}

	raw, err := p.completer.Complete(ctx, llm.ChatRequest{
		System:      parserSystemPrompt,
		Prompt:      buildParsePrompt(text),
		Temperature: 0.1,
		MaxTokens:   2000,
	})
	if err != nil {
		return resume.ParsedProfile{}, err
	}

	var data map[string]any
	if err := llmjson.Decode(raw, profileSchema, &data); err != nil {
		return resume.ParsedProfile{}, err
	}
	return cleanProfile(data), nil
}

func failed(msg string) Result {
	return Result{Profile: resume.EmptyProfile(), Err: msg}
}
