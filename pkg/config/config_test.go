package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.ConcealForbidden)
	assert.Equal(t, sourceDefault, cfg.Source("token_ttl"))
	assert.Equal(t, sourceDefault, cfg.Source("no_such_attribute"))
}

func TestLoadFile_FileThenEnvironment(t *testing.T) {
	path := writeConfig(t, `
port: 9000
store: memory
token_ttl: 48h
bcrypt_cost: 12
conceal_forbidden: true
metrics_enabled: false
log_level: debug
trusted_proxies:
  - 10.0.0.0/8
`)
	t.Setenv("FOLIO_PORT", "9100")
	t.Setenv("FOLIO_LOG_FORMAT", "TEXT")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, sourceEnvironment, cfg.Source("port"))
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, sourceFile, cfg.Source("store"))
	assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.True(t, cfg.ConcealForbidden)
	assert.False(t, cfg.MetricsEnabled)
	assert.Equal(t, sourceFile, cfg.Source("metrics_enabled"))
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
	assert.Equal(t, "0.0.0.0:9100", cfg.Addr())
	require.NoError(t, cfg.Validate())
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(writeConfig(t, "port: [nope"))
	assert.Error(t, err)

	_, err = LoadFile(writeConfig(t, "token_ttl: forever"))
	assert.ErrorContains(t, err, "token_ttl")

	t.Setenv("FOLIO_BCRYPT_COST", "ten")
	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "FOLIO_BCRYPT_COST")
}

func TestTokenSecret(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	_, err = cfg.TokenSecret()
	assert.Error(t, err)

	t.Setenv("FOLIO_TOKEN_SECRET", "short")
	cfg, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	_, err = cfg.TokenSecret()
	assert.ErrorContains(t, err, "at least 32 bytes")

	secret := "0123456789abcdef0123456789abcdef"
	t.Setenv("FOLIO_TOKEN_SECRET", secret)
	cfg, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	got, err := cfg.TokenSecret()
	require.NoError(t, err)
	assert.Equal(t, []byte(secret), got)

	// The secret is never printed.
	assert.NotContains(t, cfg.FormatText(), secret)
	out, err := cfg.FormatJSON()
	require.NoError(t, err)
	assert.NotContains(t, out, secret)
}

func TestTokenSecretIgnoredInFile(t *testing.T) {
	t.Setenv("FOLIO_TOKEN_SECRET", "")
	cfg, err := LoadFile(writeConfig(t, "token_secret: 0123456789abcdef0123456789abcdef\n"))
	require.NoError(t, err)
	_, err = cfg.TokenSecret()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *FolioConfig {
		c := newDefault()
		c.Store = StoreMemory
		return c
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*FolioConfig)
		msg    string
	}{
		{"postgres without url", func(c *FolioConfig) { c.Store = StorePostgres; c.DatabaseURL = "" }, "database_url"},
		{"unknown store", func(c *FolioConfig) { c.Store = "redis" }, "invalid store"},
		{"zero ttl", func(c *FolioConfig) { c.TokenTTL = 0 }, "token_ttl"},
		{"low cost", func(c *FolioConfig) { c.BcryptCost = 3 }, "bcrypt_cost"},
		{"high cost", func(c *FolioConfig) { c.BcryptCost = 32 }, "bcrypt_cost"},
		{"log level", func(c *FolioConfig) { c.LogLevel = "trace" }, "log_level"},
		{"log format", func(c *FolioConfig) { c.LogFormat = "xml" }, "log_format"},
		{"port", func(c *FolioConfig) { c.Port = 70000 }, "port"},
		{"proxy", func(c *FolioConfig) { c.TrustedProxies = []string{"not-a-cidr"} }, "trusted_proxies"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorContains(t, c.Validate(), tt.msg)
		})
	}
}

func TestIsTrustedProxy(t *testing.T) {
	c := newDefault()
	assert.False(t, c.IsTrustedProxy("10.0.0.1"))

	c.TrustedProxies = []string{"10.0.0.0/8", "192.168.1.10"}
	assert.True(t, c.IsTrustedProxy("10.2.3.4"))
	assert.True(t, c.IsTrustedProxy("192.168.1.10"))
	assert.False(t, c.IsTrustedProxy("192.168.1.11"))
	assert.False(t, c.IsTrustedProxy("garbage"))
}

func TestSlogLevel(t *testing.T) {
	c := newDefault()
	for level, want := range map[string]string{"debug": "DEBUG", "info": "INFO", "warn": "WARN", "error": "ERROR"} {
		c.LogLevel = level
		assert.Equal(t, want, c.SlogLevel().String())
	}
}

func TestFormatJSON(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://folio:hunter2@db:5432/folio")
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	out, err := cfg.FormatJSON()
	require.NoError(t, err)

	var parsed struct {
		ConfigFile string      `json:"config_file"`
		Attributes []Attribute `json:"attributes"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Len(t, parsed.Attributes, len(attributeNames()))

	for _, attr := range parsed.Attributes {
		if attr.Name == "database_url" {
			assert.Equal(t, "postgres://folio:********@db:5432/folio", attr.Value)
			assert.Equal(t, sourceEnvironment, attr.Source)
		}
	}
	assert.NotContains(t, cfg.FormatText(), "hunter2")
}
