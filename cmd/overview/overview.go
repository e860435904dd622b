// Package overview handles the main page report command
package overview

import (
	"context"
	"fmt"
	"io"

	"bank-report/cmd/common"
	"bank-report/cmd/root"
	"bank-report/internal/config"
	"bank-report/internal/container"
	"bank-report/internal/fileutils"
	"bank-report/internal/logging"
	"bank-report/internal/report"

	"github.com/spf13/cobra"
)

var (
	// EndDate is the end of the month-to-date window (dd.mm.yyyy HH:MM:SS)
	EndDate string
	// SettingsFile overrides settings.file from the configuration
	SettingsFile string
)

// Cmd represents the overview command
var Cmd = &cobra.Command{
	Use:   "overview",
	Short: "Build the main page JSON report",
	Long: `Build the main page JSON report from a bank operations export.

The report holds a greeting, spending and cashback per card, the top five
operations from the start of the month up to --date, and the currency rates
and stock prices listed in the user settings file.`,
	Example: `  bank-report overview -i operations.xlsx --date "20.05.2023 14:30:00"
  bank-report overview -i operations.csv --settings user_settings.json -o overview.json`,
	RunE: overviewFunc,
}

func init() {
	Cmd.Flags().StringVar(&EndDate, "date", "", "End of the reporting window, dd.mm.yyyy HH:MM:SS (default: now)")
	Cmd.Flags().StringVar(&SettingsFile, "settings", "", "User settings JSON with user_currencies and user_stocks")
}

func overviewFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	return Run(common.Context(cmd), cmd.OutOrStdout(), c,
		root.SharedFlags.Input, root.SharedFlags.Output, EndDate, SettingsFile)
}

// Run builds the overview for input and writes it to outputFile or w.
func Run(ctx context.Context, w io.Writer, c *container.Container, input, outputFile, endDate, settingsFile string) error {
	log := c.GetLogger()

	settings, err := loadSettings(c.GetConfig(), settingsFile, log)
	if err != nil {
		return err
	}

	overview, err := c.GetBuilder().Build(ctx, report.OverviewRequest{
		Input:      input,
		EndDate:    endDate,
		Currencies: settings.Currencies,
		Stocks:     settings.Stocks,
	})
	if err != nil {
		return fmt.Errorf("failed to build overview: %w", err)
	}

	data, err := report.Marshal(overview)
	if err != nil {
		return err
	}
	return common.WriteOutput(w, outputFile, data, log)
}

// loadSettings reads the user settings. A missing default settings file
// yields empty lists; an explicitly requested file must exist.
func loadSettings(cfg *config.Config, explicit string, log logging.Logger) (*config.UserSettings, error) {
	path := explicit
	if path == "" {
		path = cfg.Settings.File
	}

	if explicit == "" && !fileutils.FileExists(path) {
		log.Warn("User settings file not found, skipping rates and stocks",
			logging.Field{Key: logging.FieldFile, Value: path})
		return &config.UserSettings{Currencies: []string{}, Stocks: []string{}}, nil
	}

	settings, err := config.LoadUserSettings(path)
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded user settings",
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: "currencies", Value: len(settings.Currencies)},
		logging.Field{Key: "stocks", Value: len(settings.Stocks)})
	return settings, nil
}
