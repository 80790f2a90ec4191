package memory

import (
	"context"
	"sync"

	"trivia-quiz/internal/domain"
)

// StaticProvider serves a fixed set of raw questions (useful for tests/demos).
type StaticProvider struct {
	mu        sync.Mutex
	questions []domain.RawQuestion
	code      int
	calls     int
}

func NewStaticProvider(questions []domain.RawQuestion) *StaticProvider {
	return &StaticProvider{questions: questions}
}

// WithResponseCode makes subsequent fetches report code instead of success.
func (p *StaticProvider) WithResponseCode(code int) *StaticProvider {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.code = code
	return p
}

// Fetch returns at most count questions in their stored order.
func (p *StaticProvider) Fetch(_ context.Context, count int) (domain.RawBatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.code != 0 {
		return domain.RawBatch{ResponseCode: p.code}, nil
	}
	n := count
	if n > len(p.questions) || n < 0 {
		n = len(p.questions)
	}
	results := make([]domain.RawQuestion, n)
	copy(results, p.questions[:n])
	return domain.RawBatch{ResponseCode: 0, Results: results}, nil
}

// Calls reports how many fetches were made.
func (p *StaticProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
