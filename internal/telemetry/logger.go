package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string
	JSON       bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// FileOnly keeps stdout free, e.g. while a terminal UI owns the screen.
	FileOnly bool
}

// Init builds the process logger: console or JSON on stdout plus a rotating
// file when File is set.
func Init(cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var writers []io.Writer
	if !cfg.FileOnly {
		var console io.Writer = os.Stdout
		if !cfg.JSON {
			console = zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
				w.TimeFormat = time.RFC3339
			})
		}
		writers = append(writers, console)
	}
	if cfg.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    ifZero(cfg.MaxSizeMB, 10),
			MaxBackups: ifZero(cfg.MaxBackups, 3),
			MaxAge:     ifZero(cfg.MaxAgeDays, 28),
			Compress:   cfg.Compress,
		})
	}
	if len(writers) == 0 {
		return zerolog.Nop()
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	return l.Level(level)
}

func ifZero[T ~int](v T, d T) T {
	if v == 0 {
		return d
	}
	return v
}
