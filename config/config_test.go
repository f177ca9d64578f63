package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Cache.ArticleTTL)
	assert.Error(t, cfg.ValidateServe(), "no secret by default")
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "pagebrief.yaml", `
llm:
  provider: OpenAI
  base_url: https://llm.test/v1
  model: gpt-test
fetch:
  timeout: 3s
store:
  driver: sqlite
  dsn: /tmp/pagebrief.db
server:
  allowed_origins: [https://app.test]
log:
  level: debug
  format: json
`)
	env := writeFile(t, "empty.env", "")

	cfg, err := Load(path, env)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "https://llm.test/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, []string{"https://app.test"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 800, cfg.LLM.MaxTokens, "defaults survive a partial file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("LLM_MODEL", "from-env")
	t.Setenv("FETCH_TIMEOUT", "7s")
	t.Setenv("JWT_SECRET", "s3cret")
	env := writeFile(t, "test.env", "LISTEN_ADDR=:9999\nLLM_MODEL=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("LISTEN_ADDR") })

	cfg, err := Load(writeFile(t, "c.yaml", "llm:\n  model: from-file\n"), env)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.Model, "process env wins over .env and file")
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 7*time.Second, cfg.Fetch.Timeout)
	assert.NoError(t, cfg.ValidateServe())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "llm: [unclosed"))
	assert.Error(t, err)

	_, err = Load("", filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv("FETCH_TIMEOUT", "soon")
	_, err = Load("", writeFile(t, "e.env", ""))
	assert.ErrorContains(t, err, "FETCH_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"provider":  func(c *Config) { c.LLM.Provider = "bard" },
		"model":     func(c *Config) { c.LLM.Model = "" },
		"driver":    func(c *Config) { c.Store.Driver = "mongo" },
		"dsn":       func(c *Config) { c.Store.Driver = "postgres" },
		"timeout":   func(c *Config) { c.Fetch.Timeout = 0 },
		"rate":      func(c *Config) { c.Server.RateBurst = 0 },
		"log level": func(c *Config) { c.Log.Level = "loud" },
		"format":    func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range tests {
		cfg := Default()
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
