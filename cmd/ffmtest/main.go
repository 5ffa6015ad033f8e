package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ffmtest/internal/cli"
	"ffmtest/internal/cli/commands"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "ffmtest",
		Short:   "Feature.fm API test harness",
		Long:    `A test harness for the Feature.fm marketing APIs. Runs authenticated test suites against the sandbox or production environment, with production locked to read-only operations.`,
		Version: version,
	}

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(&flags)

	// Register all commands
	cmds.Register(rootCmd, &flags)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
