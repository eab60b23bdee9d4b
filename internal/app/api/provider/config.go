package provider

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the overall configuration for all providers
type Config struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig represents configuration for a single provider
type ProviderConfig struct {
	Type     string            `yaml:"type"`
	Enabled  bool              `yaml:"enabled"`
	Settings map[string]string `yaml:"settings,omitempty"`
}

// DefaultConfig is used when no providers.yaml is present: OpenAI diarized
// transcription only.
func DefaultConfig() *Config {
	return &Config{
		DefaultProvider: "openai",
		Providers: map[string]ProviderConfig{
			"openai": {
				Type:    "openai",
				Enabled: true,
			},
		},
	}
}

// LoadConfig reads a providers file; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read provider config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse provider config: %w", err)
	}

	if cfg.DefaultProvider == "" {
		cfg.DefaultProvider = "openai"
	}
	if len(cfg.Providers) == 0 {
		cfg.Providers = DefaultConfig().Providers
	}

	return &cfg, nil
}

// Validate checks that the default provider exists and is enabled.
func (c *Config) Validate() error {
	pc, ok := c.Providers[c.DefaultProvider]
	if !ok {
		return fmt.Errorf("default provider %q is not configured", c.DefaultProvider)
	}
	if !pc.Enabled {
		return fmt.Errorf("default provider %q is disabled", c.DefaultProvider)
	}
	return nil
}
