package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bank-report/internal/config"
	"bank-report/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Input.Source = config.SourceAuto
	cfg.Input.Delimiter = ","
	cfg.Enrichment.Enabled = false
	cfg.Enrichment.BaseCurrency = "RUB"
	cfg.Enrichment.TimeoutSeconds = 30
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func() *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func() *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config without enrichment",
			config: testConfig,
		},
		{
			name: "valid config with enrichment",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.Enrichment.Enabled = true
				cfg.Enrichment.RatesAPIKey = "er"
				cfg.Enrichment.StocksAPIKey = "sp"
				return cfg
			},
		},
		{
			name: "invalid timezone",
			config: func() *config.Config {
				cfg := testConfig()
				cfg.Input.Timezone = "Nowhere/City"
				return cfg
			},
			expectError: true,
			errorMsg:    "invalid input timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config())
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetLoader())
			assert.NotNil(t, c.GetAggregator())
			assert.NotNil(t, c.GetEnricher())
			assert.NotNil(t, c.GetBuilder())
			assert.NoError(t, c.Close())
		})
	}
}

func TestNewContainerWithLogger(t *testing.T) {
	_, err := NewContainerWithLogger(testConfig(), nil)
	require.Error(t, err)

	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(testConfig(), logger)
	require.NoError(t, err)
	assert.Same(t, logger, c.GetLogger())
	assert.True(t, logger.HasEntry("DEBUG", "Container initialized successfully"))
}

func TestContainer_LogFile(t *testing.T) {
	cfg := testConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "bank-report.log")

	c, err := NewContainer(cfg)
	require.NoError(t, err)
	c.GetLogger().Info("hello from container")
	require.NoError(t, c.Close())

	content, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello from container")
}

func TestContainer_SpendingPipeline(t *testing.T) {
	input := filepath.Join(t.TempDir(), "ops.csv")
	content := "Дата платежа,Сумма платежа,Категория\n" +
		"01.02.2022,-500,Супермаркеты\n" +
		"15.03.2022,-250,Супермаркеты\n" +
		"15.03.2022,-70,Транспорт\n"
	require.NoError(t, os.WriteFile(input, []byte(content), 0644))

	c, err := NewContainerWithLogger(testConfig(), logging.NewMockLogger())
	require.NoError(t, err)

	result, err := c.GetBuilder().Spending(context.Background(), input, "Супермаркеты", "31-03-2022")
	require.NoError(t, err)
	assert.Equal(t, "-750", result.Total.String())
}
