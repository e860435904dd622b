// Package spending handles the category spending report command
package spending

import (
	"context"
	"fmt"
	"io"

	"bank-report/cmd/common"
	"bank-report/cmd/root"
	"bank-report/internal/container"
	"bank-report/internal/report"

	"github.com/spf13/cobra"
)

// Options holds the spending command flags
type Options struct {
	Category string
	Date     string
	Save     bool
	Snapshot string
}

// Flags are the parsed spending command flags
var Flags = Options{}

// Cmd represents the spending command
var Cmd = &cobra.Command{
	Use:   "spending",
	Short: "Report spending in one category over 90 days",
	Long: `Report the total payment amount of one category over the 90 days
ending at --date. With --save the result is also written to a JSON snapshot
file (report.snapshot_file, "reports.json" by default).`,
	Example: `  bank-report spending -i operations.xlsx --category "Супермаркеты" --date 31-03-2022
  bank-report spending -i operations.csv --category "Кафе" --save --snapshot cafe`,
	RunE: spendingFunc,
}

func init() {
	Cmd.Flags().StringVar(&Flags.Category, "category", "", "Category name to report on (required)")
	Cmd.Flags().StringVar(&Flags.Date, "date", "", "Last day of the window, dd-mm-yyyy (default: today)")
	Cmd.Flags().BoolVar(&Flags.Save, "save", false, "Also save the result as a JSON snapshot")
	Cmd.Flags().StringVar(&Flags.Snapshot, "snapshot", "", "Snapshot file name (default: report.snapshot_file)")
	_ = Cmd.MarkFlagRequired("category")
}

func spendingFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	return Run(common.Context(cmd), cmd.OutOrStdout(), c,
		root.SharedFlags.Input, root.SharedFlags.Output, Flags)
}

// Run computes the category spending for input and writes it to outputFile
// or w, saving a snapshot when requested.
func Run(ctx context.Context, w io.Writer, c *container.Container, input, outputFile string, opts Options) error {
	if opts.Category == "" {
		return fmt.Errorf("category is required (--category)")
	}

	result, err := c.GetBuilder().Spending(ctx, input, opts.Category, opts.Date)
	if err != nil {
		return fmt.Errorf("failed to compute spending: %w", err)
	}

	if opts.Save {
		name := opts.Snapshot
		if name == "" {
			name = c.GetConfig().Report.SnapshotFile
		}
		report.SaveSnapshot(result, name, c.GetLogger())
	}

	data, err := report.MarshalSpending(result)
	if err != nil {
		return err
	}
	return common.WriteOutput(w, outputFile, data, c.GetLogger())
}
