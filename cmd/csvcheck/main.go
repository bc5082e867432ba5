package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "csvcheck",
		Short: "Validate CSV files against a column definition",
		Long: `csvcheck binds every record of a CSV file to a YAML column definition,
runs the declared conversions and constraints and prints one localized
message per failing cell.

Settings come from the environment (CSVBIND_*) and an optional .env file;
flags override them.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newValidateCmd())
	root.AddCommand(newKindsCmd())
	root.AddCommand(newConversionsCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errInvalidRows) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}
