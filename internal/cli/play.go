package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/config"
	"trivia-quiz/internal/telemetry"
	"trivia-quiz/internal/ui/terminal"
)

// NewPlayCmd runs a single-player quiz in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var noColor bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context(), *configPath, noColor)
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", os.Getenv("NO_COLOR") != "", "disable colours")
	return cmd
}

func runPlay(ctx context.Context, configPath string, noColor bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// stdout belongs to the UI
	logCfg := logConfig(cfg)
	logCfg.FileOnly = true
	log := telemetry.Init(logCfg)

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

	game := app.NewGame(loader, cfg.Quiz.Questions, log)
	err = terminal.Run(ctx, game, terminal.Options{
		AdvanceDelay: config.TTLDuration(cfg.Quiz.AdvanceDelay, app.DefaultAdvanceDelay),
		NoColor:      noColor,
	})
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
