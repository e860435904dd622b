// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Source kinds accepted by input.source.
const (
	SourceAuto   = "auto"
	SourceCSV    = "csv"
	SourceXLSX   = "xlsx"
	SourceXLS    = "xls"
	SourceSheets = "sheets"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
		File   string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"log" yaml:"log"`

	Input struct {
		Source    string `mapstructure:"source" yaml:"source"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
		Sheet     string `mapstructure:"sheet" yaml:"sheet"`
		Timezone  string `mapstructure:"timezone" yaml:"timezone"`
	} `mapstructure:"input" yaml:"input"`

	Sheets struct {
		SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
		Range           string `mapstructure:"range" yaml:"range"`
		CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
		CredentialsJSON string `mapstructure:"credentials_json" yaml:"-"` // Never serialize credentials
	} `mapstructure:"sheets" yaml:"sheets"`

	Settings struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"settings" yaml:"settings"`

	Enrichment struct {
		Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
		BaseCurrency   string `mapstructure:"base_currency" yaml:"base_currency"`
		RatesURL       string `mapstructure:"rates_url" yaml:"rates_url"`
		StocksURL      string `mapstructure:"stocks_url" yaml:"stocks_url"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		RatesAPIKey    string `mapstructure:"rates_api_key" yaml:"-"`  // Never serialize API key
		StocksAPIKey   string `mapstructure:"stocks_api_key" yaml:"-"` // Never serialize API key
	} `mapstructure:"enrichment" yaml:"enrichment"`

	Report struct {
		SnapshotFile string `mapstructure:"snapshot_file" yaml:"snapshot_file"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading.
// An empty configFile searches the standard locations for config.yaml.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.bank-report")
		v.AddConfigPath(".bank-report")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix("BANKREPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless given explicitly)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// 5. API keys keep their historical unprefixed names
	if err := v.BindEnv("enrichment.rates_api_key", "ER_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind ER_API_KEY: %w", err)
	}
	if err := v.BindEnv("enrichment.stocks_api_key", "SP_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind SP_API_KEY: %w", err)
	}
	if err := v.BindEnv("sheets.credentials_json", "GOOGLE_SERVICE_ACCOUNT_JSON"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_SERVICE_ACCOUNT_JSON: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("input.source", SourceAuto)
	v.SetDefault("input.delimiter", ",")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.timezone", "")

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.range", "A1:O")
	v.SetDefault("sheets.credentials_file", "")
	v.SetDefault("sheets.credentials_json", "")

	v.SetDefault("settings.file", "user_settings.json")

	v.SetDefault("enrichment.enabled", true)
	v.SetDefault("enrichment.base_currency", "RUB")
	v.SetDefault("enrichment.rates_url", "https://api.apilayer.com/exchangerates_data")
	v.SetDefault("enrichment.stocks_url", "https://www.alphavantage.co")
	v.SetDefault("enrichment.timeout_seconds", 30)
	v.SetDefault("enrichment.rates_api_key", "")
	v.SetDefault("enrichment.stocks_api_key", "")

	v.SetDefault("report.snapshot_file", "reports")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	switch config.Input.Source {
	case SourceAuto, SourceCSV, SourceXLSX, SourceXLS, SourceSheets:
	default:
		return fmt.Errorf("invalid input source: %s (must be one of auto, csv, xlsx, xls, sheets)", config.Input.Source)
	}

	if len([]rune(config.Input.Delimiter)) != 1 {
		return fmt.Errorf("input delimiter must be a single character, got: %s", config.Input.Delimiter)
	}

	if _, err := config.Location(); err != nil {
		return fmt.Errorf("invalid input timezone: %w", err)
	}

	if config.Enrichment.Enabled {
		if len(config.Enrichment.BaseCurrency) != 3 {
			return fmt.Errorf("enrichment.base_currency must be a 3-letter code, got: %s", config.Enrichment.BaseCurrency)
		}
		if config.Enrichment.TimeoutSeconds < 1 || config.Enrichment.TimeoutSeconds > 300 {
			return fmt.Errorf("enrichment.timeout_seconds must be between 1 and 300, got: %d", config.Enrichment.TimeoutSeconds)
		}
	}

	return nil
}

// Location returns the time zone used to interpret export dates.
// An empty input.timezone means the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Input.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Input.Timezone)
}

// Timeout returns the HTTP timeout for enrichment lookups.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Enrichment.TimeoutSeconds) * time.Second
}
