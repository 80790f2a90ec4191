package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/app"
)

// SessionStore is a Redis-aware implementation of app.GameRepository.
// Notes:
//   - Games stay in a local map; their state machines are in-process.
//   - Redis carries a liveness marker per player so other instances and
//     operators can see who is playing (SCAN trivia:game:*).
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	mu     sync.RWMutex
	games  map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client: client,
		ttl:    ttl,
		games:  make(map[string]*app.Game),
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
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(playerID), game.Current().ID().String(), s.ttl).Err()
	return game
}

// Get returns the player's game and rewrites the liveness marker with the
// current session ID and a fresh TTL.
func (s *SessionStore) Get(playerID string) (*app.Game, bool) {
	s.mu.RLock()
	game, ok := s.games[playerID]
	s.mu.RUnlock()
	if ok {
		_ = s.client.Set(context.Background(), s.key(playerID), game.Current().ID().String(), s.ttl).Err()
	}
	return game, ok
}

func (s *SessionStore) Delete(playerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[playerID]; !ok {
		return
	}
	delete(s.games, playerID)
	_ = s.client.Del(context.Background(), s.key(playerID)).Err()
}

func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *SessionStore) key(playerID string) string {
	return "trivia:game:" + playerID
}
