// Package config loads settings from a YAML file, .env files and the
// environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	yaml "gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	LLM struct {
		Provider      string `yaml:"provider"` // openai or ollama
		BaseURL       string `yaml:"base_url"`
		Model         string `yaml:"model"`
		APIKey        string `yaml:"api_key"`
		MaxTokens     int    `yaml:"max_tokens"`
		MaxInputWords int    `yaml:"max_input_words"`
	} `yaml:"llm"`

	Fetch struct {
		Timeout      time.Duration `yaml:"timeout"`
		MaxBodyBytes int64         `yaml:"max_body_bytes"`
		UserAgent    string        `yaml:"user_agent"`
	} `yaml:"fetch"`

	Store struct {
		Driver string `yaml:"driver"` // memory, sqlite or postgres
		DSN    string `yaml:"dsn"`
	} `yaml:"store"`

	Auth struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"auth"`

	Server struct {
		Addr            string        `yaml:"addr"`
		RatePerSecond   float64       `yaml:"rate_per_second"`
		RateBurst       int           `yaml:"rate_burst"`
		AllowedOrigins  []string      `yaml:"allowed_origins"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`

	Cache struct {
		ArticleTTL time.Duration `yaml:"article_ttl"`
	} `yaml:"cache"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // console or json
	} `yaml:"log"`
}

// Default returns a configuration that works for local use with Ollama and
// an in-memory store.
func Default() *Config {
	c := &Config{}
	c.LLM.Provider = "ollama"
	c.LLM.Model = "llama3.2"
	c.LLM.MaxTokens = 800
	c.LLM.MaxInputWords = 3000
	c.Fetch.Timeout = 10 * time.Second
	c.Fetch.MaxBodyBytes = 5 << 20
	c.Store.Driver = "memory"
	c.Auth.TTL = 24 * time.Hour
	c.Server.Addr = ":8080"
	c.Server.RatePerSecond = 2
	c.Server.RateBurst = 10
	c.Server.AllowedOrigins = []string{"*"}
	c.Server.ShutdownTimeout = 10 * time.Second
	c.Cache.ArticleTTL = 15 * time.Minute
	c.Log.Level = "info"
	c.Log.Format = "console"
	return c
}

// Load builds the configuration. path may be empty. envFiles are loaded with
// godotenv without overriding variables already set; when none are given a
// ./.env file is used if present.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}

	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("loading env file: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"LLM_PROVIDER": &c.LLM.Provider,
		"LLM_BASE_URL": &c.LLM.BaseURL,
		"LLM_MODEL":    &c.LLM.Model,
		"LLM_API_KEY":  &c.LLM.APIKey,
		"STORE_DRIVER": &c.Store.Driver,
		"DATABASE_URL": &c.Store.DSN,
		"JWT_SECRET":   &c.Auth.Secret,
		"LISTEN_ADDR":  &c.Server.Addr,
		"LOG_LEVEL":    &c.Log.Level,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("FETCH_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FETCH_TIMEOUT: %w", err)
		}
		c.Fetch.Timeout = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	c.LLM.Provider = strings.ToLower(c.LLM.Provider)
	switch c.LLM.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("llm.provider must be openai or ollama, got %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model is required")
	}

	switch c.Store.Driver {
	case "memory":
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for driver %s", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be memory, sqlite or postgres, got %q", c.Store.Driver)
	}

	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch.timeout must be positive")
	}
	if c.Server.RatePerSecond <= 0 || c.Server.RateBurst <= 0 {
		return errors.New("server rate limit must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}

// ValidateServe adds the checks only the HTTP server needs.
func (c *Config) ValidateServe() error {
	if c.Auth.Secret == "" {
		return errors.New("auth.secret (JWT_SECRET) is required to serve")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	return nil
}
