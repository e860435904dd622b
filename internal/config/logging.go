package config

import (
	"fmt"
	"os"

	"bank-report/internal/logging"

	"gopkg.in/yaml.v3"
)

// ConfigureLogger builds the application logger from the log section.
// When log.file is set the returned close function must be called once the
// logger is no longer needed.
func ConfigureLogger(cfg *Config) (logging.Logger, func() error, error) {
	noop := func() error { return nil }
	if cfg.Log.File == "" {
		return logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format), noop, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file %s: %w", cfg.Log.File, err)
	}
	return logging.NewLogrusAdapterWithOutput(cfg.Log.Level, cfg.Log.Format, f), f.Close, nil
}

// YAML renders the effective configuration. Credentials and API keys are
// excluded by their struct tags.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
