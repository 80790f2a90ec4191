package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/infra/memory"
	redisstore "trivia-quiz/internal/infra/redis"
	"trivia-quiz/internal/telemetry"
	transport "trivia-quiz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Serve the browser quiz over HTTP and WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := telemetry.Init(logConfig(cfg))

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader, cleanup, err := newLoader(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	store, closeStore := newGameStore(cfg, log)
	defer closeStore()

	service := app.NewQuizService(store, loader, app.Options{
		QuestionCount: cfg.Quiz.Questions,
		AdvanceDelay:  config.TTLDuration(cfg.Quiz.AdvanceDelay, app.DefaultAdvanceDelay),
	}, log)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("server_starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("server_shutting_down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newGameStore picks Redis when configured, memory otherwise.
func newGameStore(cfg config.Config, log zerolog.Logger) (app.GameRepository, func()) {
	if cfg.Redis.Addr == "" {
		return memory.NewSessionStore(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis_game_store")
	ttl := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)
	return redisstore.NewSessionStore(client, ttl), func() { _ = client.Close() }
}
