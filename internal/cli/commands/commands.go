package commands

import (
	"github.com/spf13/cobra"

	"github.com/fhunleth/zigler/internal/cli"
	"github.com/fhunleth/zigler/internal/config"
	"github.com/fhunleth/zigler/internal/discovery"
	"github.com/fhunleth/zigler/internal/execution"
	"github.com/fhunleth/zigler/internal/storage"
	"github.com/fhunleth/zigler/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	List     *ListCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	filter := discovery.NewFilter()
	runner := execution.NewBinaryRunner(cfg)
	wrapper := execution.NewWrapper(runner)
	table := execution.NewSymbolTable()
	registrar := execution.NewRegistrar(table, wrapper)
	executor := execution.NewWorkerPool(cfg, wrapper)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter(cfg)
	errorViewer := ui.NewErrorViewer(cfg, jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, filter, registrar, executor, jsonStorage, formatter, errorViewer),
		List:     NewListCommand(cfg, filter, formatter),
		Failures: NewFailuresCommand(cfg, jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run embedded Zig tests in parallel",
		Long:  "Discover test blocks in the module's Zig source and execute them through the compiled test binary using parallel workers",
		RunE:  c.Run.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			if flags.Workers > 0 {
				cfg.Workers = flags.Workers
			}
			return nil
		},
	}
	runCmd.Flags().IntVarP(&flags.Workers, "workers", "p", config.DefaultWorkers, "Number of parallel workers to use")
	runCmd.Flags().StringVarP(&flags.SrcDir, "src-dir", "t", "", "Directory holding the module's test sources (overrides the default code directory)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by title pattern (supports wildcards, e.g. 'registry*' or '*overflow*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop dispatching tests after the first failure")
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only tests that failed in the last run")
	runCmd.Flags().BoolVar(&flags.OpenFailures, "open-failures", false, "Open the failures viewer when the run finishes with failures")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered tests",
		Long:  "Discover and list all embedded test blocks without executing them",
		RunE:  c.List.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by title pattern (supports wildcards)")
	listCmd.Flags().StringVarP(&flags.SrcDir, "src-dir", "t", "", "Directory holding the module's test sources")
	listCmd.Flags().BoolVarP(&flags.Symbols, "symbols", "s", false, "Show compiled symbols and fallback identifiers")
	rootCmd.AddCommand(listCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:   "failures",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last test run in an interactive viewer",
		RunE:  c.Failures.Execute,
	}
	rootCmd.AddCommand(failuresCmd)
}
