// Package config loads learnloop settings: defaults, then the TOML file,
// then LEARNLOOP_* environment variables. Command-line flags are applied
// last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/learnloop/internal/agent"
	"github.com/abhisek/learnloop/internal/llm"
)

// Config is the full application configuration.
type Config struct {
	Agent  AgentConfig  `toml:"agent"`
	Store  StoreConfig  `toml:"store"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	LLM    llm.Config   `toml:"llm"`
}

// AgentConfig selects the agent the TUI talks to. An empty URL means the
// in-process tutor is used instead.
type AgentConfig struct {
	URL     string        `toml:"url"`
	ID      string        `toml:"id"`
	Timeout time.Duration `toml:"timeout"`
}

type StoreConfig struct {
	Path string `toml:"path"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type ServerConfig struct {
	Addr        string        `toml:"addr"`
	CORSOrigins []string      `toml:"cors_origins"`
	CacheURL    string        `toml:"cache_url"`
	CacheTTL    time.Duration `toml:"cache_ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Agent: AgentConfig{
			ID:      agent.DefaultAgentID,
			Timeout: 90 * time.Second,
		},
		Store: StoreConfig{Path: DefaultDBPath()},
		Log:   LogConfig{Level: "info", File: DefaultLogPath()},
		Server: ServerConfig{
			Addr:     ":8080",
			CacheTTL: 24 * time.Hour,
		},
		LLM: llm.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, the TOML file at path and
// the environment. A missing file is not an error; an empty path selects
// DefaultConfigPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, key string) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	setString(&cfg.Agent.URL, "LEARNLOOP_AGENT_URL")
	setString(&cfg.Agent.ID, "LEARNLOOP_AGENT_ID")
	setString(&cfg.Store.Path, "LEARNLOOP_DB")
	setString(&cfg.Log.Level, "LEARNLOOP_LOG_LEVEL")
	setString(&cfg.Log.File, "LEARNLOOP_LOG_FILE")
	setString(&cfg.Server.Addr, "LEARNLOOP_SERVER_ADDR")
	setString(&cfg.Server.CacheURL, "LEARNLOOP_CACHE_URL")
	if v := os.Getenv("LEARNLOOP_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = splitList(v)
	}

	if err := setDuration(&cfg.Agent.Timeout, "LEARNLOOP_AGENT_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Server.CacheTTL, "LEARNLOOP_CACHE_TTL"); err != nil {
		return err
	}

	llm.ApplyEnv(&cfg.LLM)
	return nil
}

// splitList splits a comma separated list, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ResolveLLM returns the LLM configuration to use. When the configured
// provider lacks a key, the vendors' own API key variables are checked.
func (c Config) ResolveLLM() (llm.Config, error) {
	err := c.LLM.Validate()
	if err == nil {
		return c.LLM, nil
	}
	if discovered, ok := llm.DiscoverConfig(); ok {
		discovered.Timeout = c.LLM.Timeout
		discovered.Retry = c.LLM.Retry
		return discovered, nil
	}
	return llm.Config{}, fmt.Errorf("no LLM provider configured: %w", err)
}
