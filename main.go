package main

import (
	"fmt"
	"os"

	"bank-report/cmd/overview"
	"bank-report/cmd/root"
	"bank-report/cmd/settings"
	"bank-report/cmd/spending"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(overview.Cmd)
	root.Cmd.AddCommand(spending.Cmd)
	root.Cmd.AddCommand(settings.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
