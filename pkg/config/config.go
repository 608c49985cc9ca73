// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/trussworks/bookclub/pkg/token"
)

// Environment variable names
const (
	EnvAddr            = "BOOKCLUB_ADDR"
	EnvTokenSecret     = "BOOKCLUB_TOKEN_SECRET"
	EnvTokenTTL        = "BOOKCLUB_TOKEN_TTL"
	EnvSessionLifetime = "BOOKCLUB_SESSION_LIFETIME"
	EnvCookiePath      = "BOOKCLUB_COOKIE_PATH"
	EnvCookieSecure    = "BOOKCLUB_COOKIE_SECURE"
	EnvCatalogLatency  = "BOOKCLUB_CATALOG_LATENCY"
	EnvSeedFile        = "BOOKCLUB_SEED_FILE"
)

type App struct {
	Addr            string
	TokenSecret     []byte
	TokenTTL        time.Duration
	SessionLifetime time.Duration
	CookiePath      string
	CookieSecure    bool
	CatalogLatency  time.Duration
	SeedFile        string
}

// Default is the configuration with nothing set in the environment, minus the secret.
func Default() App {
	return App{
		Addr:            ":5000",
		TokenTTL:        token.DefaultTTL,
		SessionLifetime: token.DefaultTTL,
		CookiePath:      "/",
	}
}

// Load reads the environment on top of Default.
func Load() (App, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (App, error) {
	cfg := Default()
	var err error

	if v := getenv(EnvAddr); v != "" {
		cfg.Addr = v
	}
	if v := getenv(EnvCookiePath); v != "" {
		cfg.CookiePath = v
	}
	cfg.SeedFile = getenv(EnvSeedFile)
	cfg.TokenSecret = []byte(getenv(EnvTokenSecret))

	if cfg.TokenTTL, err = duration(getenv, EnvTokenTTL, cfg.TokenTTL); err != nil {
		return App{}, err
	}
	if cfg.SessionLifetime, err = duration(getenv, EnvSessionLifetime, cfg.SessionLifetime); err != nil {
		return App{}, err
	}
	if cfg.CatalogLatency, err = duration(getenv, EnvCatalogLatency, 0); err != nil {
		return App{}, err
	}
	if v := getenv(EnvCookieSecure); v != "" {
		if cfg.CookieSecure, err = strconv.ParseBool(v); err != nil {
			return App{}, fmt.Errorf("%s: %w", EnvCookieSecure, err)
		}
	}

	return cfg, nil
}

func duration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// EnsureSecret fills in a random signing secret when none was configured.
// Tokens signed with a generated secret do not survive a restart.
func (c *App) EnsureSecret() error {
	if len(c.TokenSecret) > 0 {
		return nil
	}
	key := securecookie.GenerateRandomKey(32)
	if key == nil {
		return errors.New("Failed to generate random data for a token secret")
	}
	slog.Warn("no token secret configured, generated a random one", "env", EnvTokenSecret)
	c.TokenSecret = key
	return nil
}
