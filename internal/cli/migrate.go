package cli

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"trivia-quiz/internal/config"
	pgmigrations "trivia-quiz/internal/infra/postgres/migrations"
	"trivia-quiz/internal/telemetry"
)

// NewMigrateCmd creates and seeds the question-bank tables.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create and seed the Postgres question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations(cmd.Context(), *configPath)
		},
	}
}

func runMigrations(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	group, err := RunMigrations(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	log := telemetry.Init(logConfig(cfg))
	log.Info().Str("group", group).Msg("migrations_applied")
	return nil
}

// RunMigrations applies pending question-bank migrations to dsn and
// returns the applied group description.
func RunMigrations(ctx context.Context, dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("postgres url not configured")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return "", err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return "", err
	}
	return group.String(), nil
}
