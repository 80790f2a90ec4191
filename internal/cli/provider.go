package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/rs/zerolog"

	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/opentdb"
	pgbank "trivia-quiz/internal/infra/postgres"
	"trivia-quiz/internal/shuffle"
	"trivia-quiz/internal/telemetry"
	"trivia-quiz/internal/trivia"
)

// newLoader wires the configured question provider behind a trivia.Loader.
// The returned cleanup releases provider resources.
func newLoader(ctx context.Context, cfg config.Config, log zerolog.Logger) (*trivia.Loader, func(), error) {
	var (
		provider trivia.Provider
		cleanup  = func() {}
	)
	switch cfg.Provider.Kind {
	case "", "opentdb":
		provider = opentdb.New(opentdb.Options{
			BaseURL:    cfg.Provider.BaseURL,
			Timeout:    config.TTLDuration(cfg.Provider.Timeout, 10*time.Second),
			RPS:        cfg.Provider.RPS,
			Burst:      cfg.Provider.Burst,
			Category:   cfg.Provider.Category,
			Difficulty: cfg.Provider.Difficulty,
		}, log)
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, nil, fmt.Errorf("postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		provider = pgbank.NewQuestionBank(pool, pgbank.BankFilter{
			Category:   cfg.Provider.Category,
			Difficulty: cfg.Provider.Difficulty,
		})
		cleanup = pool.Close
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider.Kind)
	}
	log.Info().Str("provider", cfg.Provider.Kind).Msg("provider_configured")
	return trivia.NewLoader(provider, shuffle.NewSource(0), log), cleanup, nil
}

func logConfig(cfg config.Config) telemetry.Config {
	return telemetry.Config{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	}
}
