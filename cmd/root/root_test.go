package root_test

import (
	"os"
	"path/filepath"
	"testing"

	"bank-report/cmd/root"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	root.Init()
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "bank-report", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "spending reports")
	assert.Contains(t, root.Cmd.Long, "CSV, XLSX or Google Sheets")
	assert.NotNil(t, root.Cmd.RunE)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRunE)
}

func TestRootCommand_Flags(t *testing.T) {
	inputFlag := root.Cmd.PersistentFlags().Lookup("input")
	require.NotNil(t, inputFlag)
	assert.Equal(t, "i", inputFlag.Shorthand)

	outputFlag := root.Cmd.PersistentFlags().Lookup("output")
	require.NotNil(t, outputFlag)
	assert.Equal(t, "o", outputFlag.Shorthand)

	configFlag := root.Cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, "", configFlag.DefValue)
}

func TestCommonFlags_Structure(t *testing.T) {
	flags := root.CommonFlags{
		Input:      "operations.xlsx",
		Output:     "overview.json",
		ConfigFile: "config.yaml",
	}

	assert.Equal(t, "operations.xlsx", flags.Input)
	assert.Equal(t, "overview.json", flags.Output)
	assert.Equal(t, "config.yaml", flags.ConfigFile)
}

func TestGetters_BeforeInitialization(t *testing.T) {
	originalConfig := root.AppConfig
	originalContainer := root.AppContainer
	defer func() {
		root.AppConfig = originalConfig
		root.AppContainer = originalContainer
	}()

	root.AppConfig = nil
	root.AppContainer = nil

	assert.NotNil(t, root.GetLogger())
	assert.Nil(t, root.GetConfig())

	_, err := root.RequireContainer()
	assert.Error(t, err)
}

func TestRootCommand_PersistentHooks(t *testing.T) {
	originalConfig := root.AppConfig
	originalContainer := root.AppContainer
	originalFlags := root.SharedFlags
	originalLog := root.Log
	defer func() {
		root.AppConfig = originalConfig
		root.AppContainer = originalContainer
		root.SharedFlags = originalFlags
		root.Log = originalLog
	}()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  level: debug\nenrichment:\n  enabled: false\n"), 0644))
	root.SharedFlags.ConfigFile = configFile

	testCmd := &cobra.Command{Use: "test"}
	require.NoError(t, root.Cmd.PersistentPreRunE(testCmd, nil))

	require.NotNil(t, root.GetConfig())
	assert.Equal(t, "debug", root.GetConfig().Log.Level)
	assert.False(t, root.GetConfig().Enrichment.Enabled)
	c, err := root.RequireContainer()
	require.NoError(t, err)
	assert.Same(t, c.GetLogger(), root.GetLogger())

	require.NoError(t, root.Cmd.PersistentPostRunE(testCmd, nil))

	// Closing twice is a no-op
	assert.NoError(t, root.Cmd.PersistentPostRunE(testCmd, nil))
}

func TestRootCommand_PersistentPreRunInvalidConfig(t *testing.T) {
	originalFlags := root.SharedFlags
	defer func() { root.SharedFlags = originalFlags }()

	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("log:\n  format: xml\n"), 0644))
	root.SharedFlags.ConfigFile = configFile

	err := root.Cmd.PersistentPreRunE(&cobra.Command{Use: "test"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestFlagNameNormalization(t *testing.T) {
	normalize := root.Cmd.GlobalNormalizationFunc()
	require.NotNil(t, normalize)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var value string
	flags.StringVar(&value, "snapshot-file", "", "")
	flags.SetNormalizeFunc(normalize)

	require.NoError(t, flags.Parse([]string{"--snapshot_file", "daily"}))
	assert.Equal(t, "daily", value)
}
