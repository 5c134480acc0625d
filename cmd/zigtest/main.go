package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fhunleth/zigler/internal/cli"
	"github.com/fhunleth/zigler/internal/cli/commands"
	"github.com/fhunleth/zigler/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "zigtest",
		Short:   "Embedded Zig test runner",
		Long:    `Discovers test blocks embedded in a module's Zig source, registers them under stable symbol-safe names, and runs them in parallel through the compiled test binary.`,
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
