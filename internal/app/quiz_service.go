package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"trivia-quiz/internal/domain"
)

// GameRepository abstracts where live games are kept (in-memory, Redis, etc).
type GameRepository interface {
	GetOrCreate(playerID string, create func() *Game) *Game
	Get(playerID string) (*Game, bool)
	Delete(playerID string)
	Count() int
}

// QuizService hands out one Game per connected player.
type QuizService struct {
	games  GameRepository
	loader QuestionLoader
	count  int
	delay  time.Duration
	log    zerolog.Logger
}

// Options tunes a QuizService.
type Options struct {
	QuestionCount int
	AdvanceDelay  time.Duration
}

func NewQuizService(games GameRepository, loader QuestionLoader, opts Options, log zerolog.Logger) *QuizService {
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = DefaultQuestionCount
	}
	if opts.AdvanceDelay <= 0 {
		opts.AdvanceDelay = DefaultAdvanceDelay
	}
	return &QuizService{
		games:  games,
		loader: loader,
		count:  opts.QuestionCount,
		delay:  opts.AdvanceDelay,
		log:    log.With().Str("module", "app").Logger(),
	}
}

// Join returns the player's game, creating it on first use.
func (s *QuizService) Join(_ context.Context, playerID string) *Game {
	return s.games.GetOrCreate(playerID, func() *Game {
		s.log.Info().Str("player_id", playerID).Msg("game_created")
		return NewGame(s.loader, s.count, s.log.With().Str("player_id", playerID).Logger())
	})
}

// Game looks up a registered game. Stores that publish liveness refresh it
// on every lookup, so adapters call this once per player action.
func (s *QuizService) Game(playerID string) (*Game, error) {
	game, ok := s.games.Get(playerID)
	if !ok {
		return nil, domain.ErrGameNotFound
	}
	return game, nil
}

// Leave drops the player's game.
func (s *QuizService) Leave(_ context.Context, playerID string) {
	s.games.Delete(playerID)
	s.log.Info().Str("player_id", playerID).Int("active", s.games.Count()).Msg("game_closed")
}

// AdvanceDelay is how long presentation layers wait before calling Advance.
func (s *QuizService) AdvanceDelay() time.Duration { return s.delay }

// ActiveGames reports how many games are registered.
func (s *QuizService) ActiveGames() int { return s.games.Count() }
