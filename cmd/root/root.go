// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"

	"bank-report/internal/config"
	"bank-report/internal/container"
	"bank-report/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input      string
	Output     string
	ConfigFile string
}

var (
	// Log is the shared logger instance for commands. It is replaced by the
	// configured logger once the container is built.
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded for the running command
	AppConfig *config.Config

	// AppContainer holds the wired dependencies for the running command
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-report",
		Short: "A CLI tool to build spending reports from bank operation exports.",
		Long: `bank-report reads a bank operations export (CSV, XLSX or Google Sheets)
and builds reports from it: card totals with cashback, the top operations of
the month, category spending over the last 90 days, and live currency rates
and stock prices.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE:  initializeApp,
		PersistentPostRunE: closeApp,
	}

	// SharedFlags are the flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.SetGlobalNormalizationFunc(normalizeFlagName)
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file (CSV, XLSX) or Google Sheets spreadsheet id")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file (default: stdout)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default: config.yaml in $HOME/.bank-report, .bank-report or .)")
}

// normalizeFlagName accepts snake_case spellings of dashed flags, so
// --snapshot_file matches --snapshot-file.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func initializeApp(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadEnv(); err != nil {
		Log.WithError(err).Warn("Failed to load .env file")
	}

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	Log.Debug("Configuration loaded", logging.Field{Key: "command", Value: cmd.Name()})
	return nil
}

func closeApp(cmd *cobra.Command, args []string) error {
	if AppContainer == nil {
		return nil
	}
	err := AppContainer.Close()
	AppContainer = nil
	return err
}

// GetLogger returns the shared logger
func GetLogger() logging.Logger {
	return Log
}

// GetConfig returns the loaded configuration, or nil before initialization
func GetConfig() *config.Config {
	return AppConfig
}

// RequireContainer returns the container or an error when the application
// was not initialized
func RequireContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, fmt.Errorf("application container not initialized")
	}
	return AppContainer, nil
}
