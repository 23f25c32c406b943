package usecase

import (
	"context"

	"github.com/Knnivedh/job-rec/internal/domain/matching"
	"github.com/Knnivedh/job-rec/internal/domain/resume"
	"github.com/Knnivedh/job-rec/internal/logger"

	"go.uber.org/zap"
)

// Analysis is a parsed résumé that is not persisted.
type Analysis struct {
	resume.ParsedProfile
	RawText  string
	ATSScore int
	Source   resume.ParseSource
}

// AnalyzeError carries the parser failure shown as details.
type AnalyzeError struct {
	Details string
}

func (e *AnalyzeError) Error() string { return ErrAnalyzeFailed.Error() + ": " + e.Details }
func (e *AnalyzeError) Unwrap() error { return ErrAnalyzeFailed }

type AnalyzeUsecase interface {
	Analyze(ctx context.Context, data []byte, fileName, mimeType string) (Analysis, error)
}

type Analyze struct {
	parser ResumeParser
	logger *zap.Logger
}

func NewAnalyzeUsecase(parser ResumeParser, log *zap.Logger) *Analyze {
	return &Analyze{parser: parser, logger: logger.OrNop(log)}
}

func (u *Analyze) Analyze(ctx context.Context, data []byte, fileName, mimeType string) (Analysis, error) {
	if len(data) == 0 && fileName == "" {
		return Analysis{}, ErrNoFileProvided
	}
	if len(data) > resume.MaxUploadBytes {
		return Analysis{}, &AnalyzeError{Details: ErrFileTooLarge.Error()}
	}

	res := u.parser.Parse(ctx, data, DetectMime(mimeType, fileName))
	if res.Failed() {
		u.logger.Info("[Analyze] parse failed", zap.String("reason", res.Err))
		return Analysis{}, &AnalyzeError{Details: res.Err}
	}

	return Analysis{
		ParsedProfile: res.Profile,
		RawText:       res.RawText,
		ATSScore:      matching.ATSScore(res.Profile),
		Source:        res.Source,
	}, nil
}

var _ AnalyzeUsecase = (*Analyze)(nil)
