// Package config loads runtime settings from the environment and optional
// .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSearchDebounce is the quiet period applied to live food searches.
const DefaultSearchDebounce = 450 * time.Millisecond

// OIDC holds single sign-on settings.
type OIDC struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled reports whether enough settings are present to use SSO.
func (o OIDC) Enabled() bool {
	return o.Issuer != "" && o.ClientID != "" && o.RedirectURL != ""
}

// Config is the full runtime configuration.
type Config struct {
	Addr   string
	WebDir string

	// DatabaseURL selects PostgreSQL. Otherwise SQLitePath selects SQLite,
	// and with neither set everything is kept in memory.
	DatabaseURL string
	SQLitePath  string

	CalorieNinjasAPIKey  string
	CalorieNinjasBaseURL string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string

	OIDC OIDC

	SearchDebounce time.Duration
}

// Load reads the configuration. Values already present in the environment
// win over values from files. Missing files are skipped; with no files
// given, ".env" is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fromFiles := make(map[string]string)
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vals {
			if _, seen := fromFiles[k]; !seen {
				fromFiles[k] = v
			}
		}
	}

	env := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		if v := fromFiles[key]; v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Addr:                 env("ADDR", ":8080"),
		WebDir:               env("WEB_DIR", "web"),
		DatabaseURL:          env("DATABASE_URL", ""),
		SQLitePath:           env("SQLITE_PATH", ""),
		CalorieNinjasAPIKey:  env("CALORIENINJAS_API_KEY", ""),
		CalorieNinjasBaseURL: env("CALORIENINJAS_BASE_URL", ""),
		GeminiAPIKey:         env("GEMINI_API_KEY", ""),
		GeminiModel:          env("GEMINI_MODEL", ""),
		GeminiBaseURL:        env("GEMINI_BASE_URL", ""),
		OIDC: OIDC{
			Issuer:       env("OIDC_ISSUER", ""),
			ClientID:     env("OIDC_CLIENT_ID", ""),
			ClientSecret: env("OIDC_CLIENT_SECRET", ""),
			RedirectURL:  env("OIDC_REDIRECT_URL", ""),
		},
		SearchDebounce: DefaultSearchDebounce,
	}

	if v := env("SEARCH_DEBOUNCE", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("SEARCH_DEBOUNCE: invalid duration %q", v)
		}
		cfg.SearchDebounce = d
	}
	return cfg, nil
}
