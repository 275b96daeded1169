package config

import (
	"fmt"

	"go.uber.org/fx"
)

// NewProvider puts the configuration into the fx graph. A non-nil
// customConfig bypasses loading entirely, which is how tests run the
// application against a fixture config.
func NewProvider(customConfig *Config) fx.Option {
	return fx.Provide(func() (*Config, error) {
		if customConfig != nil {
			return customConfig, nil
		}

		cfg := &Config{}
		if err := LoadConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		return cfg, nil
	})
}
