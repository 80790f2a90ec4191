package app

import (
	"context"
	"strconv"
	"sync"

	"trivia-quiz/internal/domain"
)

func sampleQuestions(n int) []domain.Question {
	out := make([]domain.Question, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Question{
			Text:          "Question " + strconv.Itoa(i+1),
			CorrectAnswer: "right",
			Answers:       []string{"wrong 1", "right", "wrong 2", "wrong 3"},
		})
	}
	return out
}

// stubLoader returns scripted results in order, repeating the last one.
type stubLoader struct {
	mu      sync.Mutex
	results []stubResult
	calls   int
}

type stubResult struct {
	questions []domain.Question
	err       error
}

func (l *stubLoader) Load(_ context.Context, _ int) ([]domain.Question, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx := l.calls
	if idx >= len(l.results) {
		idx = len(l.results) - 1
	}
	l.calls++
	r := l.results[idx]
	return r.questions, r.err
}
