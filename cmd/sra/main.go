package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sra/internal/cli"
	"sra/internal/cli/commands"
	"sra/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "sra",
		Short:   "Spec result aggregator",
		Long:    `An adapter between a legacy callback-driven test engine and a structured result schema. Replay recorded lifecycle event streams, aggregate them into run summaries and browse the failures.`,
		Version: version,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
