// Package config loads and validates the engine's YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Review provider names accepted in the ai section.
const (
	ProviderDisabled = "disabled"
	ProviderAzure    = "azure"
	ProviderGemini   = "gemini"
)

// Config is the full engine configuration.
type Config struct {
	Server Server `yaml:"server"`
	Logger Logger `yaml:"logger"`
	AI     AI     `yaml:"ai"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Logger holds logging settings.
type Logger struct {
	Level string `yaml:"level"`
}

// AI selects and configures the review backend. API keys are never read from
// the config file; they come from AZURE_OPENAI_KEY or GEMINI_API_KEY.
type AI struct {
	Provider   string        `yaml:"provider"`
	Endpoint   string        `yaml:"endpoint"`
	Deployment string        `yaml:"deployment"`
	Model      string        `yaml:"model"`
	Timeout    time.Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		AI: AI{
			Provider: ProviderDisabled,
			Model:    "gemini-1.5-flash",
			Timeout:  30 * time.Second,
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path yields the
// defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	if err := validatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func Validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case ProviderDisabled, ProviderGemini:
	case ProviderAzure:
		if cfg.AI.Endpoint == "" {
			return fmt.Errorf("ai: azure provider requires an endpoint")
		}
		if cfg.AI.Deployment == "" {
			return fmt.Errorf("ai: azure provider requires a deployment")
		}
	default:
		return fmt.Errorf("ai: unknown provider %q", cfg.AI.Provider)
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server: addr must not be empty")
	}
	return nil
}

func validatePath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("%q is a directory, not a file", path)
	}
	return nil
}
