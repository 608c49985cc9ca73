package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "/", cfg.CookiePath)
	assert.False(t, cfg.CookieSecure)
	assert.Zero(t, cfg.CatalogLatency)
	assert.Empty(t, cfg.TokenSecret)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := load(envFrom(map[string]string{
		EnvAddr:            ":9000",
		EnvTokenSecret:     "s3cret",
		EnvTokenTTL:        "30m",
		EnvSessionLifetime: "2h",
		EnvCookiePath:      "/customer",
		EnvCookieSecure:    "true",
		EnvCatalogLatency:  "250ms",
		EnvSeedFile:        "books.json",
	}))
	require.NoError(t, err)

	assert.Equal(t, App{
		Addr:            ":9000",
		TokenSecret:     []byte("s3cret"),
		TokenTTL:        30 * time.Minute,
		SessionLifetime: 2 * time.Hour,
		CookiePath:      "/customer",
		CookieSecure:    true,
		CatalogLatency:  250 * time.Millisecond,
		SeedFile:        "books.json",
	}, cfg)
}

func TestLoadRejectsBadValues(t *testing.T) {
	for key, value := range map[string]string{
		EnvTokenTTL:       "an hour",
		EnvCatalogLatency: "-1s",
		EnvCookieSecure:   "maybe",
	} {
		_, err := load(envFrom(map[string]string{key: value}))
		assert.Error(t, err, key)
	}
}

func TestEnsureSecret(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.EnsureSecret())
	assert.Len(t, cfg.TokenSecret, 32)

	configured := App{TokenSecret: []byte("keep")}
	require.NoError(t, configured.EnsureSecret())
	assert.Equal(t, []byte("keep"), configured.TokenSecret)
}
