package common

import (
	"context"

	"github.com/spf13/cobra"
)

// Context returns the command context, or context.Background when the
// command was not started through Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
