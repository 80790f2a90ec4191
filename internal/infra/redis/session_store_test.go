package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

func TestSessionStoreSetsAndClearsKeys(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)

	game := store.GetOrCreate("p1", func() *app.Game {
		return app.NewGame(nil, 10, zerolog.Nop())
	})
	if !mr.Exists("trivia:game:p1") {
		t.Fatalf("expected redis key to be set")
	}
	val, err := mr.Get("trivia:game:p1")
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if val != game.Current().ID().String() {
		t.Fatalf("expected session id %s, got %s", game.Current().ID(), val)
	}
	if ttl := mr.TTL("trivia:game:p1"); ttl != time.Minute {
		t.Fatalf("expected ttl 1m, got %v", ttl)
	}

	store.Delete("p1")
	if mr.Exists("trivia:game:p1") {
		t.Fatalf("expected redis key to be removed")
	}
	if store.Count() != 0 {
		t.Fatalf("expected no games, got %d", store.Count())
	}
}

func TestSessionStoreGetRefreshesTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	_ = store.GetOrCreate("p1", func() *app.Game { return app.NewGame(nil, 10, zerolog.Nop()) })

	mr.FastForward(40 * time.Second)
	if _, ok := store.Get("p1"); !ok {
		t.Fatalf("expected game present")
	}
	if ttl := mr.TTL("trivia:game:p1"); ttl != time.Minute {
		t.Fatalf("expected ttl refreshed to 1m, got %v", ttl)
	}
}

func TestSessionStoreStaysAliveAcrossRestartsPastTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewSessionStore(client, time.Minute)
	service := app.NewQuizService(store, oneQuestionLoader{}, app.Options{}, zerolog.Nop())

	game := service.Join(ctx, "p1")
	for round := 0; round < 3; round++ {
		mr.FastForward(40 * time.Second)
		game.Restart()
		if _, err := service.Game("p1"); err != nil {
			t.Fatalf("round %d: lookup: %v", round, err)
		}
		if _, err := game.Load(ctx); err != nil {
			t.Fatalf("round %d: load: %v", round, err)
		}
		if _, ok := game.SelectAnswer("right"); !ok {
			t.Fatalf("round %d: answer ignored", round)
		}
		if _, ok := game.Advance(game.Current().ID()); !ok {
			t.Fatalf("round %d: advance ignored", round)
		}
		if _, err := service.Game("p1"); err != nil {
			t.Fatalf("round %d: lookup: %v", round, err)
		}
	}

	if !mr.Exists("trivia:game:p1") {
		t.Fatalf("expected liveness key to survive past the ttl")
	}
	val, err := mr.Get("trivia:game:p1")
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if val != game.Current().ID().String() {
		t.Fatalf("expected current session id %s, got %s", game.Current().ID(), val)
	}
}

type oneQuestionLoader struct{}

func (oneQuestionLoader) Load(context.Context, int) ([]domain.Question, error) {
	return []domain.Question{{
		Text:          "Pick right",
		CorrectAnswer: "right",
		Answers:       []string{"wrong", "right"},
	}}, nil
}
