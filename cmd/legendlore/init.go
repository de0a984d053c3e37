package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/legendlore/internal/application/handlers"
	"github.com/ersonp/legendlore/internal/infrastructure/logger"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a legendlore config",
		Long:  "Creates a .legendlore directory with a config file. Sources given with --source are written instead of the defaults.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	result, err := handlers.NewInitHandler(logger.ForComponent("init")).Handle(cwd, globalSources)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n", result.ConfigPath)
	fmt.Fprintf(out, "Sources %v match %d files\n", result.Sources, len(result.Files))
	fmt.Fprintln(out, "legendlore initialized successfully!")

	return nil
}
