// Package settings handles the command that prints the effective configuration
package settings

import (
	"fmt"
	"io"

	"bank-report/cmd/root"
	"bank-report/internal/config"

	"github.com/spf13/cobra"
)

// Cmd represents the settings command
var Cmd = &cobra.Command{
	Use:   "settings",
	Short: "Print the effective configuration",
	Long: `Print the effective configuration as YAML, after defaults, the config
file and environment variables have been applied. API keys and credentials
are never printed.`,
	RunE: settingsFunc,
}

func settingsFunc(cmd *cobra.Command, args []string) error {
	cfg := root.GetConfig()
	if cfg == nil {
		return fmt.Errorf("configuration not loaded")
	}
	return Print(cmd.OutOrStdout(), cfg)
}

// Print writes cfg as YAML to w.
func Print(w io.Writer, cfg *config.Config) error {
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
