// Package main provides the entry point for the legendlore CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0-dev"
	globalSources  []string
	globalLogLevel string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "legendlore",
		Short:         "Query and format spells and monsters from FC5e compendium files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringArrayVar(&globalSources, "source", nil, "Compendium file glob, repeatable (default: from config)")
	rootCmd.PersistentFlags().StringVar(&globalLogLevel, "log-level", "", "Log level: debug, info, warn or error (default: from config)")

	rootCmd.AddCommand(
		newSpellsCmd(),
		newMonstersCmd(),
		newFieldsCmd(),
		newExportCmd(),
		newInitCmd(),
	)

	return rootCmd
}
