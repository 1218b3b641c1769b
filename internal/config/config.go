// Package config loads PopkornPick's configuration from command-line flags,
// environment variables and an optional .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Catalog   CatalogConfig
	Favorites FavoritesConfig
	Browse    BrowseConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `validate:"oneof=development production"`
	DataDir     string `validate:"required"`
}

// LoggerConfig holds logging configuration. The terminal belongs to the UI,
// so logs always go to a file.
type LoggerConfig struct {
	Level string `validate:"oneof=debug info warn warning error"`
	File  string `validate:"required"`
}

// CatalogConfig holds TMDB API configuration.
type CatalogConfig struct {
	Token        string        `validate:"required"`
	BaseURL      string        `validate:"required,url"`
	ImageBaseURL string        `validate:"required,url"`
	Language     string
	Timeout      time.Duration `validate:"gt=0"`
	RPS          float64       `validate:"gt=0"`
	Burst        int           `validate:"gt=0"`
}

// FavoritesConfig holds favorites store configuration.
type FavoritesConfig struct {
	Path string
	// Ephemeral keeps favorites in memory only.
	Ephemeral bool
}

// BrowseConfig holds search and pagination tuning.
type BrowseConfig struct {
	Debounce        time.Duration `validate:"gt=0"`
	ScrollThreshold int           `validate:"gte=0"`
}

// LoadConfig loads configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(args []string) (*Config, error) {
	fs := flag.NewFlagSet("popkornpick", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Log file path (default: <data-dir>/popkornpick.log)")
	dataDir := fs.String("data-dir", "", "Directory for favorites and logs")

	token := fs.String("token", "", "TMDB API read access token")
	baseURL := fs.String("api-url", "", "TMDB API base URL")
	imageBaseURL := fs.String("image-url", "", "TMDB poster base URL")
	language := fs.String("language", "", "TMDB response language (e.g. en-US)")
	timeout := fs.String("timeout", "", "TMDB request timeout (default: 10s)")
	rps := fs.String("rps", "", "TMDB requests per second (default: 20)")
	burst := fs.String("burst", "", "TMDB request burst (default: 10)")

	ephemeral := fs.String("ephemeral", "", "Keep favorites in memory only (default: false)")
	debounce := fs.String("debounce", "", "Search input quiet period (default: 100ms)")
	scrollThreshold := fs.String("scroll-threshold", "", "Rows from the bottom that load the next page (default: 3)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = godotenv.Load(*envFile)

	defaultDataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
			DataDir:     getConfigValue(*dataDir, "POPKORN_DATA_DIR", defaultDataDir),
		},
		Logger: LoggerConfig{
			Level: strings.ToLower(getConfigValue(*logLevel, "LOG_LEVEL", "info")),
		},
		Catalog: CatalogConfig{
			Token:        getConfigValue(*token, "TMDB_TOKEN", ""),
			BaseURL:      getConfigValue(*baseURL, "TMDB_BASE_URL", "https://api.themoviedb.org/3"),
			ImageBaseURL: getConfigValue(*imageBaseURL, "TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
			Language:     getConfigValue(*language, "TMDB_LANGUAGE", ""),
		},
		Favorites: FavoritesConfig{
			Ephemeral: getBoolConfigValue(*ephemeral, "POPKORN_EPHEMERAL", false),
		},
	}

	cfg.Logger.File = getConfigValue(*logFile, "LOG_FILE", filepath.Join(cfg.App.DataDir, "popkornpick.log"))
	cfg.Favorites.Path = filepath.Join(cfg.App.DataDir, "favorites")

	if cfg.Catalog.Timeout, err = getDurationConfigValue(*timeout, "TMDB_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.Catalog.RPS, err = getFloatConfigValue(*rps, "TMDB_RPS", 20); err != nil {
		return nil, err
	}
	if cfg.Catalog.Burst, err = getIntConfigValue(*burst, "TMDB_BURST", 10); err != nil {
		return nil, err
	}
	if cfg.Browse.Debounce, err = getDurationConfigValue(*debounce, "POPKORN_DEBOUNCE", "100ms"); err != nil {
		return nil, err
	}
	if cfg.Browse.ScrollThreshold, err = getIntConfigValue(*scrollThreshold, "POPKORN_SCROLL_THRESHOLD", 3); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for missing or out-of-range values.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, friendlyMessage(e))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required":
		if field == "Catalog.Token" {
			return "Catalog.Token is required (set TMDB_TOKEN or --token)"
		}
		return field + " is required"
	case "url":
		return field + " must be a valid URL"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, e.Tag(), e.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, e.Tag())
	}
}

func defaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "popkornpick"), nil
}

// getConfigValue returns the first non-empty value from: flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	value := getConfigValue(flagValue, envKey, "")
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

func getIntConfigValue(flagValue, envKey string, defaultValue int) (int, error) {
	value := getConfigValue(flagValue, envKey, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	return n, nil
}

func getFloatConfigValue(flagValue, envKey string, defaultValue float64) (float64, error) {
	value := getConfigValue(flagValue, envKey, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	return f, nil
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	value := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", envKey, value, err)
	}
	return d, nil
}
