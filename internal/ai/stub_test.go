package ai

import (
	"context"

	"github.com/Knnivedh/job-rec/internal/infrastructure/llm"
)

type stubCompleter struct {
	out   string
	err   error
	calls int
	last  llm.ChatRequest
}

func (s *stubCompleter) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	s.calls++
	s.last = req
	return s.out, s.err
}
