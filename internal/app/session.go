package app

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"trivia-quiz/internal/domain"
)

// Session is one play-through. It is a synchronous transition table with no
// timers; callers schedule Advance after showing feedback. A restart never
// mutates a session, it replaces it (see Restart).
type Session struct {
	id uuid.UUID

	mu        sync.RWMutex
	phase     domain.Phase
	questions []domain.Question
	index     int
	score     int
	answered  bool
	verdict   *domain.Verdict
	loadErr   error
}

// NewSession returns an empty session in the Loading phase.
func NewSession() *Session {
	return newSessionWithID(uuid.New())
}

func newSessionWithID(id uuid.UUID) *Session {
	return &Session{id: id, phase: domain.PhaseLoading}
}

// ID identifies this session; results for another ID are stale.
func (s *Session) ID() uuid.UUID { return s.id }

// Start moves Loading to InProgress(0). The batch is fixed for the lifetime
// of the session.
func (s *Session) Start(questions []domain.Question) error {
	if len(questions) == 0 {
		return domain.ErrNoQuestions
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseLoading {
		return fmt.Errorf("start session in phase %s", s.phase)
	}
	s.questions = append([]domain.Question(nil), questions...)
	s.phase = domain.PhaseInProgress
	s.index = 0
	s.score = 0
	s.answered = false
	s.verdict = nil
	s.loadErr = nil
	return nil
}

// Fail records a load failure. The session stays in Loading.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == domain.PhaseLoading {
		s.loadErr = err
	}
}

// SelectAnswer answers the current question. It reports false, and changes
// nothing, unless the session is in progress and the question is unanswered.
func (s *Session) SelectAnswer(answer string) (domain.Verdict, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseInProgress || s.answered {
		return domain.Verdict{}, false
	}
	q := s.questions[s.index]
	correct := answer == q.CorrectAnswer
	if correct {
		s.score++
	}
	s.answered = true
	v := domain.Verdict{
		Selected:      answer,
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Score:         s.score,
	}
	s.verdict = &v
	return v, true
}

// Advance moves past an answered question, to the next one or to Finished.
// It reports false when the current question has not been answered.
func (s *Session) Advance() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != domain.PhaseInProgress || !s.answered {
		return false
	}
	if s.index+1 < len(s.questions) {
		s.index++
		s.answered = false
		s.verdict = nil
		return true
	}
	s.phase = domain.PhaseFinished
	return true
}

// Restart discards this session and returns a fresh one in Loading. The
// caller is expected to load questions again for the new session.
func (s *Session) Restart() *Session {
	return NewSession()
}

// Phase reports the current phase.
func (s *Session) Phase() domain.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Score reports the number of correct answers so far.
func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// Snapshot renders the state for presentation layers.
func (s *Session) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.Snapshot{
		SessionID:  s.id.String(),
		Phase:      s.phase,
		Index:      s.index,
		Total:      len(s.questions),
		Score:      s.score,
		Answered:   s.answered,
		IsFinished: s.phase == domain.PhaseFinished,
	}
	if s.loadErr != nil {
		snap.Error = s.loadErr.Error()
	}
	switch s.phase {
	case domain.PhaseInProgress:
		q := s.questions[s.index]
		snap.Question = q.Text
		snap.Answers = append([]string(nil), q.Answers...)
		snap.ProgressPercent = float64(s.index+1) / float64(len(s.questions)) * 100
		if s.verdict != nil {
			v := *s.verdict
			snap.Verdict = &v
		}
	case domain.PhaseFinished:
		snap.ProgressPercent = 100
		snap.ResultMessage = fmt.Sprintf("You got %d out of %d questions correct", s.score, len(s.questions))
	}
	return snap
}
