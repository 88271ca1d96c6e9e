// Package config loads folio settings from an optional YAML file, FOLIO_*
// environment variables and command-line flags, using spf13/viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fwojciec/folio"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable viper reads.
const EnvPrefix = "FOLIO"

// Config is the full application configuration.
type Config struct {
	Backend       string        `mapstructure:"backend"`
	Model         string        `mapstructure:"model"`
	SystemPrompt  string        `mapstructure:"system_prompt"`
	Temperature   float64       `mapstructure:"temperature"`
	Timeout       time.Duration `mapstructure:"timeout"`
	HistoryWindow int           `mapstructure:"history_window"`
	AssetsDir     string        `mapstructure:"assets_dir"`

	Gemini GeminiConfig `mapstructure:"gemini"`
	Local  LocalConfig  `mapstructure:"local"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type LocalConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

type ServerConfig struct {
	Addr               string        `mapstructure:"addr"`
	SessionIdleTimeout time.Duration `mapstructure:"session_idle_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// New returns a viper instance with folio defaults and environment binding.
// Callers may bind flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", string(folio.BackendCloud))
	v.SetDefault("model", "")
	v.SetDefault("system_prompt", folio.DefaultSystemPrompt)
	v.SetDefault("temperature", 0.7)
	v.SetDefault("timeout", folio.DefaultTimeout)
	v.SetDefault("history_window", folio.DefaultHistoryWindow)
	v.SetDefault("assets_dir", "")
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("local.endpoint", "localhost:11434")
	v.SetDefault("local.model", "llama3")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.session_idle_timeout", 30*time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	return v
}

// Load reads the config file into v and decodes the result. With an empty
// path, folio.yaml is looked up in the user config directory and then the
// working directory, and a missing file is not an error. An explicit path
// must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("folio")
		v.SetConfigType("yaml")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "folio"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Gemini.APIKey = expandEnv(cfg.Gemini.APIKey)
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return &cfg, nil
}

// Gateway returns the gateway settings for the selected backend. A
// top-level model overrides the backend's model.
func (c *Config) Gateway() (folio.GatewayConfig, error) {
	backend, err := folio.ParseBackend(c.Backend)
	if err != nil {
		return folio.GatewayConfig{}, fmt.Errorf("backend: %w", err)
	}

	gc := folio.GatewayConfig{
		Backend:       backend,
		SystemPrompt:  c.SystemPrompt,
		Temperature:   c.Temperature,
		Timeout:       c.Timeout,
		HistoryWindow: c.HistoryWindow,
	}
	switch backend {
	case folio.BackendCloud:
		gc.APIKey = c.Gemini.APIKey
		gc.Model = c.Gemini.Model
	case folio.BackendLocal:
		gc.Endpoint = c.Local.Endpoint
		gc.Model = c.Local.Model
	}
	if c.Model != "" {
		gc.Model = c.Model
	}
	gc = gc.WithDefaults()
	if err := gc.Validate(); err != nil {
		return folio.GatewayConfig{}, err
	}
	return gc, nil
}

// expandEnv expands a value of the form ${VAR} or $VAR.
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}
