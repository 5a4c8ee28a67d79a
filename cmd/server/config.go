package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/sitekit/pkg/analytics"
	"github.com/dmitrymomot/sitekit/pkg/logger"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	BaseLocale      string        `env:"BASE_LOCALE" envDefault:"en"`
	Locales         []string      `env:"LOCALES" envDefault:"en,de" envSeparator:","`
	LocaleRedirect  bool          `env:"LOCALE_REDIRECT" envDefault:"false"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	ImagePresetsFile string `env:"IMAGE_PRESETS_FILE"`
	StaticDir        string `env:"STATIC_DIR"`
	WasmPath         string `env:"WASM_PATH"`

	AnalyticsUpstream       string `env:"ANALYTICS_UPSTREAM"`
	AnalyticsAssetsUpstream string `env:"ANALYTICS_ASSETS_UPSTREAM"`

	Log    logger.Config
	Sentry logger.SentryConfig
}

// loadConfig reads an optional .env file, then parses the environment.
// Variables already set in the process win over the file.
func loadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg.Sentry.MinLevel = slog.LevelWarn
	return cfg, nil
}

func (c Config) upstream() string {
	if c.AnalyticsUpstream == "" {
		return analytics.DefaultUpstream
	}
	return c.AnalyticsUpstream
}

func (c Config) assetsUpstream() string {
	if c.AnalyticsAssetsUpstream == "" {
		return analytics.DefaultAssetsUpstream
	}
	return c.AnalyticsAssetsUpstream
}
