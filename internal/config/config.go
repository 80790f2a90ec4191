package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Provider struct {
		Kind       string  `yaml:"kind"` // opentdb or postgres
		BaseURL    string  `yaml:"base_url"`
		Category   string  `yaml:"category"`
		Difficulty string  `yaml:"difficulty"`
		Timeout    string  `yaml:"timeout"`
		RPS        float64 `yaml:"rps"`
		Burst      int     `yaml:"burst"`
	} `yaml:"provider"`
	Quiz struct {
		Questions    int    `yaml:"questions"`
		AdvanceDelay string `yaml:"advance_delay"`
	} `yaml:"quiz"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Log struct {
		Level      string `yaml:"level"`
		JSON       bool   `yaml:"json"`
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Provider.Kind = "opentdb"
	cfg.Provider.BaseURL = "https://opentdb.com"
	cfg.Provider.Timeout = "10s"
	// OpenTDB allows one request every five seconds per IP.
	cfg.Provider.RPS = 0.2
	cfg.Provider.Burst = 1
	cfg.Quiz.Questions = 10
	cfg.Quiz.AdvanceDelay = "1.5s"
	cfg.Redis.TTL = "30m"
	cfg.Log.Level = "info"
	cfg.Log.File = "trivia-quiz.log"
	return cfg
}

// Load reads a .env file if present, then YAML config from path on top of
// the defaults, then environment overrides. A missing config file is not an
// error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIVIA_PROVIDER"); v != "" {
		cfg.Provider.Kind = v
	}
	if v := os.Getenv("TRIVIA_QUESTIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Quiz.Questions = n
		}
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
