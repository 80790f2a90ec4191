package memory

import (
	"sync"

	"trivia-quiz/internal/app"
)

// SessionStore is an in-memory implementation of app.GameRepository.
type SessionStore struct {
	mu    sync.RWMutex
	games map[string]*app.Game
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		games: make(map[string]*app.Game),
	}
}

func (s *SessionStore) GetOrCreate(playerID string, create func() *app.Game) *app.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game, ok := s.games[playerID]; ok {
		return game
	}
	game := create()
	s.games[playerID] = game
	return game
}

func (s *SessionStore) Get(playerID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[playerID]
	return game, ok
}

func (s *SessionStore) Delete(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.games, playerID)
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}
