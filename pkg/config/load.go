package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads configuration from the process environment. Each name in envFiles is
// looked up from the working directory towards the filesystem root and the first one
// found is loaded into the environment first; variables already set win. Without names
// a plain .env in the working directory is tried.
func Load(envFiles ...string) (*App, error) {
	logger := slog.Default()

	if len(envFiles) == 0 {
		if err := godotenv.Load(); err != nil {
			logger.Debug("No .env file in working directory")
		}
		return loadFromEnv()
	}

	for _, name := range envFiles {
		path, ok := findUp(name)
		if !ok {
			logger.Debug("Environment file not found", "name", name)
			continue
		}
		if err := godotenv.Load(path); err != nil {
			logger.Warn("Skipping unreadable environment file", "path", path, "error", err)
			continue
		}
		logger.Info("Environment loaded", "path", path)
		break
	}
	return loadFromEnv()
}

// findUp returns the nearest file called name in the working directory or one of its
// parents.
func findUp(name string) (string, bool) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db_driver", cfg.DB.Driver,
		"db", maskValue(cfg.DB.Url),
		"op_timeout", cfg.Bank.OpTimeout,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}

func (c *App) validate() error {
	c.DB.Driver = strings.ToLower(strings.TrimSpace(c.DB.Driver))
	switch c.DB.Driver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if c.DB.Url == "" {
			return fmt.Errorf("DATABASE_URL is required for driver %q", c.DB.Driver)
		}
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DB.Driver)
	}
	if c.Bank.OpTimeout <= 0 {
		return fmt.Errorf("BANK_OP_TIMEOUT must be positive, got %s", c.Bank.OpTimeout)
	}
	if c.Bank.SummaryLimit <= 0 {
		return fmt.Errorf("BANK_SUMMARY_LIMIT must be positive, got %d", c.Bank.SummaryLimit)
	}
	if c.Bank.ListLimit <= 0 {
		return fmt.Errorf("BANK_LIST_LIMIT must be positive, got %d", c.Bank.ListLimit)
	}
	return nil
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
