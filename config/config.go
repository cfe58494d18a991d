package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds launch options read from the environment and an optional .env file.
// User-facing settings live in settings.json, not here.
type Config struct {
	Home        string `env:"JOBTRACKER_HOME"`
	PointerFile string `env:"JOBTRACKER_POINTER_FILE"`
	LogLevel    string `env:"JOBTRACKER_LOG_LEVEL" default:"info"`
	LogFormat   string `env:"JOBTRACKER_LOG_FORMAT" default:"text"`
	LogFile     string `env:"JOBTRACKER_LOG_FILE"`
}

// Load reads the configuration and fills in the install directory when unset
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	if cfg.Home == "" {
		home, err := executableDir()
		if err != nil {
			return nil, err
		}
		cfg.Home = home
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("JOBTRACKER_LOG_LEVEL must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("JOBTRACKER_LOG_FORMAT must be text or json; got %q", cfg.LogFormat)
	}

	if cfg.Home != "" && !filepath.IsAbs(cfg.Home) {
		abs, err := filepath.Abs(cfg.Home)
		if err != nil {
			return fmt.Errorf("JOBTRACKER_HOME is not a usable path: %w", err)
		}
		cfg.Home = abs
	}

	return nil
}

// executableDir returns the directory of the running binary with symlinks resolved
func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
