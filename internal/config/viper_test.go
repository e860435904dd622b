package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "", config.Log.File)
	assert.Equal(t, SourceAuto, config.Input.Source)
	assert.Equal(t, ",", config.Input.Delimiter)
	assert.Equal(t, "A1:O", config.Sheets.Range)
	assert.Equal(t, "user_settings.json", config.Settings.File)
	assert.True(t, config.Enrichment.Enabled)
	assert.Equal(t, "RUB", config.Enrichment.BaseCurrency)
	assert.Equal(t, "https://api.apilayer.com/exchangerates_data", config.Enrichment.RatesURL)
	assert.Equal(t, "https://www.alphavantage.co", config.Enrichment.StocksURL)
	assert.Equal(t, 30, config.Enrichment.TimeoutSeconds)
	assert.Equal(t, 30*time.Second, config.Timeout())
	assert.Equal(t, "reports", config.Report.SnapshotFile)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	testEnvVars := map[string]string{
		"BANKREPORT_LOG_LEVEL":                  "debug",
		"BANKREPORT_LOG_FORMAT":                 "json",
		"BANKREPORT_INPUT_DELIMITER":            ";",
		"BANKREPORT_INPUT_SOURCE":               "csv",
		"BANKREPORT_ENRICHMENT_BASE_CURRENCY":   "USD",
		"BANKREPORT_ENRICHMENT_TIMEOUT_SECONDS": "5",
		"BANKREPORT_REPORT_SNAPSHOT_FILE":       "spending",
		"ER_API_KEY":                            "rates-key",
		"SP_API_KEY":                            "stocks-key",
	}

	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.Input.Delimiter)
	assert.Equal(t, SourceCSV, config.Input.Source)
	assert.Equal(t, "USD", config.Enrichment.BaseCurrency)
	assert.Equal(t, 5, config.Enrichment.TimeoutSeconds)
	assert.Equal(t, "spending", config.Report.SnapshotFile)
	assert.Equal(t, "rates-key", config.Enrichment.RatesAPIKey)
	assert.Equal(t, "stocks-key", config.Enrichment.StocksAPIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "config.yaml")

	configContent := `
log:
  level: "warn"
  format: "json"
input:
  source: "xlsx"
  sheet: "Отчет"
sheets:
  spreadsheet_id: "sheet-123"
enrichment:
  enabled: false
report:
  snapshot_file: "category_report"
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))
	t.Chdir(tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, SourceXLSX, config.Input.Source)
	assert.Equal(t, "Отчет", config.Input.Sheet)
	assert.Equal(t, "sheet-123", config.Sheets.SpreadsheetID)
	assert.False(t, config.Enrichment.Enabled)
	assert.Equal(t, "category_report", config.Report.SnapshotFile)
}

func TestInitializeConfig_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	configFile := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: error\n"), 0644))

	config, err := InitializeConfig(configFile)
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)

	_, err = InitializeConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
input:
  delimiter: "|"
enrichment:
  timeout_seconds: 20
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("BANKREPORT_LOG_LEVEL", "error")
	t.Setenv("BANKREPORT_ENRICHMENT_TIMEOUT_SECONDS", "25")
	t.Setenv("ER_API_KEY", "env-api-key")
	t.Chdir(tempDir)

	config, err := InitializeConfig("")
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)         // env var wins
	assert.Equal(t, "|", config.Input.Delimiter)       // config file value
	assert.Equal(t, 25, config.Enrichment.TimeoutSeconds) // env var wins
	assert.Equal(t, "env-api-key", config.Enrichment.RatesAPIKey)
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "xml" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid input source",
			modifyConfig: func(c *Config) { c.Input.Source = "pdf" },
			expectError:  "invalid input source",
		},
		{
			name:         "invalid delimiter",
			modifyConfig: func(c *Config) { c.Input.Delimiter = "abc" },
			expectError:  "input delimiter must be a single character",
		},
		{
			name:         "invalid timezone",
			modifyConfig: func(c *Config) { c.Input.Timezone = "Mars/Olympus" },
			expectError:  "invalid input timezone",
		},
		{
			name:         "invalid base currency",
			modifyConfig: func(c *Config) { c.Enrichment.BaseCurrency = "RUBLE" },
			expectError:  "enrichment.base_currency must be a 3-letter code",
		},
		{
			name:         "invalid timeout seconds",
			modifyConfig: func(c *Config) { c.Enrichment.TimeoutSeconds = 0 },
			expectError:  "enrichment.timeout_seconds must be between 1 and 300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestValidateConfig_AcceptsEverySource(t *testing.T) {
	for _, source := range []string{SourceAuto, SourceCSV, SourceXLSX, SourceXLS, SourceSheets} {
		t.Run(source, func(t *testing.T) {
			config := validTestConfig()
			config.Input.Source = source
			assert.NoError(t, validateConfig(config))
		})
	}
}

func TestValidateConfig_DisabledEnrichmentSkipsChecks(t *testing.T) {
	config := validTestConfig()
	config.Enrichment.Enabled = false
	config.Enrichment.TimeoutSeconds = 0
	assert.NoError(t, validateConfig(config))
}

func TestConfig_Location(t *testing.T) {
	config := validTestConfig()
	loc, err := config.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	config.Input.Timezone = "Europe/Moscow"
	loc, err = config.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestConfigureLogger(t *testing.T) {
	t.Run("stderr", func(t *testing.T) {
		config := validTestConfig()
		logger, closeFn, err := ConfigureLogger(config)
		require.NoError(t, err)
		assert.NotNil(t, logger)
		assert.NoError(t, closeFn())
	})

	t.Run("log file", func(t *testing.T) {
		config := validTestConfig()
		config.Log.Format = "json"
		config.Log.File = filepath.Join(t.TempDir(), "app.log")

		logger, closeFn, err := ConfigureLogger(config)
		require.NoError(t, err)
		logger.Info("written to file")
		require.NoError(t, closeFn())

		content, err := os.ReadFile(config.Log.File)
		require.NoError(t, err)
		assert.Contains(t, string(content), "written to file")
	})

	t.Run("unwritable log file", func(t *testing.T) {
		config := validTestConfig()
		config.Log.File = filepath.Join(t.TempDir(), "missing", "app.log")
		_, _, err := ConfigureLogger(config)
		require.Error(t, err)
	})
}

func TestConfig_YAMLOmitsSecrets(t *testing.T) {
	config := validTestConfig()
	config.Enrichment.RatesAPIKey = "secret-rates"
	config.Enrichment.StocksAPIKey = "secret-stocks"
	config.Sheets.CredentialsJSON = `{"private_key":"secret"}`

	out, err := config.YAML()
	require.NoError(t, err)

	assert.Contains(t, string(out), "base_currency: RUB")
	assert.NotContains(t, string(out), "secret")
}

func validTestConfig() *Config {
	config := &Config{}
	config.Log.Level = "info"
	config.Log.Format = "text"
	config.Input.Source = SourceAuto
	config.Input.Delimiter = ","
	config.Enrichment.Enabled = true
	config.Enrichment.BaseCurrency = "RUB"
	config.Enrichment.TimeoutSeconds = 30
	return config
}

// Helper function to clear test environment variables
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"BANKREPORT_LOG_LEVEL",
		"BANKREPORT_LOG_FORMAT",
		"BANKREPORT_LOG_FILE",
		"BANKREPORT_INPUT_SOURCE",
		"BANKREPORT_INPUT_DELIMITER",
		"BANKREPORT_INPUT_SHEET",
		"BANKREPORT_INPUT_TIMEZONE",
		"BANKREPORT_SHEETS_SPREADSHEET_ID",
		"BANKREPORT_SHEETS_RANGE",
		"BANKREPORT_SHEETS_CREDENTIALS_FILE",
		"BANKREPORT_SETTINGS_FILE",
		"BANKREPORT_ENRICHMENT_ENABLED",
		"BANKREPORT_ENRICHMENT_BASE_CURRENCY",
		"BANKREPORT_ENRICHMENT_RATES_URL",
		"BANKREPORT_ENRICHMENT_STOCKS_URL",
		"BANKREPORT_ENRICHMENT_TIMEOUT_SECONDS",
		"BANKREPORT_REPORT_SNAPSHOT_FILE",
		"ER_API_KEY",
		"SP_API_KEY",
		"GOOGLE_SERVICE_ACCOUNT_JSON",
	}

	for _, envVar := range envVars {
		if err := os.Unsetenv(envVar); err != nil {
			fmt.Printf("Warning: failed to unset environment variable %s: %v\n", envVar, err)
		}
	}
}
