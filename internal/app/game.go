package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
)

const (
	// DefaultQuestionCount is the batch size requested per play-through.
	DefaultQuestionCount = 10
	// DefaultAdvanceDelay is how long answer feedback stays on screen.
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

// QuestionLoader loads a batch of normalized questions.
type QuestionLoader interface {
	Load(ctx context.Context, count int) ([]domain.Question, error)
}

// LoadResult is the outcome of a load started for one session.
type LoadResult struct {
	SessionID uuid.UUID
	Questions []domain.Question
	Err       error
}

// Game owns the current session of a single player. Restart swaps in a new
// session; results and timers carry the session ID they were issued for and
// are dropped when it no longer matches.
type Game struct {
	loader QuestionLoader
	count  int
	log    zerolog.Logger

	mu      sync.Mutex
	session *Session
}

func NewGame(loader QuestionLoader, count int, log zerolog.Logger) *Game {
	if count <= 0 {
		count = DefaultQuestionCount
	}
	return &Game{
		loader:  loader,
		count:   count,
		log:     log,
		session: NewSession(),
	}
}

// Current returns the live session.
func (g *Game) Current() *Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Snapshot renders the live session.
func (g *Game) Snapshot() domain.Snapshot {
	return g.Current().Snapshot()
}

// Fetch runs the question load for session id without touching game state,
// so it can run off the UI goroutine.
func (g *Game) Fetch(ctx context.Context, id uuid.UUID) LoadResult {
	questions, err := g.loader.Load(ctx, g.count)
	return LoadResult{SessionID: id, Questions: questions, Err: err}
}

// Apply hands a load result to its session. It reports false when the
// session has since been replaced.
func (g *Game) Apply(res LoadResult) (domain.Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if res.SessionID != g.session.ID() {
		g.log.Debug().Str("session_id", res.SessionID.String()).Msg("stale_load_ignored")
		return g.session.Snapshot(), false
	}
	if res.Err != nil {
		g.session.Fail(res.Err)
		return g.session.Snapshot(), true
	}
	if err := g.session.Start(res.Questions); err != nil {
		g.session.Fail(domain.NewLoadError("start", err))
	}
	return g.session.Snapshot(), true
}

// Load fetches and applies questions for the live session synchronously.
func (g *Game) Load(ctx context.Context) (domain.Snapshot, error) {
	res := g.Fetch(ctx, g.Current().ID())
	snap, ok := g.Apply(res)
	if !ok {
		return snap, domain.ErrStaleSession
	}
	return snap, res.Err
}

// SelectAnswer forwards to the live session.
func (g *Game) SelectAnswer(answer string) (domain.Verdict, bool) {
	return g.Current().SelectAnswer(answer)
}

// Advance moves session id forward. Timers armed for a replaced session are
// ignored.
func (g *Game) Advance(id uuid.UUID) (domain.Snapshot, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id != g.session.ID() {
		return g.session.Snapshot(), false
	}
	ok := g.session.Advance()
	return g.session.Snapshot(), ok
}

// Restart replaces the session and returns the new session ID, which the
// caller passes to Fetch.
func (g *Game) Restart() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = g.session.Restart()
	g.log.Info().Str("session_id", g.session.ID().String()).Msg("session_restarted")
	return g.session.ID()
}
