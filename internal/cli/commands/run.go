package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fhunleth/zigler/internal/config"
	"github.com/fhunleth/zigler/internal/discovery"
	"github.com/fhunleth/zigler/internal/domain"
	"github.com/fhunleth/zigler/internal/execution"
	"github.com/fhunleth/zigler/internal/storage"
	"github.com/fhunleth/zigler/internal/ui"
)

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	registrar *execution.Registrar
	executor  *execution.WorkerPool
	storage   storage.Storage
	formatter *ui.Formatter
	viewer    *ui.ErrorViewer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	registrar *execution.Registrar,
	executor *execution.WorkerPool,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer *ui.ErrorViewer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		filter:    filter,
		registrar: registrar,
		executor:  executor,
		storage:   st,
		formatter: formatter,
		viewer:    viewer,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	mod := buildModule(rc.config)

	// Discovery failures abort the whole run with file+offset context.
	tests, err := discovery.Discover(domain.BuildContext{Module: mod})
	if err != nil {
		return err
	}

	tests = rc.filter.ResolvedByTitle(tests, rc.config.Flags.NameFilter)

	if rc.config.Flags.OnlyFailed {
		tests, err = rc.keepLastFailures(tests)
		if err != nil {
			return err
		}
	}

	if len(tests) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	// Registration completes in full before the pool may schedule any
	// invocation.
	cases, err := rc.registrar.Register(tests, nil)
	if err != nil {
		return err
	}

	progressBar := ui.NewProgressBar(len(cases))
	rc.executor.SetProgress(progressBar)

	results, duration, runErr := rc.executor.ExecuteWithOptions(cases, rc.config.Flags.FailFast)

	var failures []domain.TestFailure
	for _, result := range results {
		if result.Success || result.Error != nil {
			continue
		}
		failures = append(failures, domain.TestFailure{
			Title:   result.Title,
			Symbol:  result.Symbol,
			Origin:  result.Origin,
			Message: execution.FailureMessage,
			Trace:   splitLines(result.Output),
		})
	}

	if err := rc.storage.Save(mod, results, failures, duration, rc.config.Workers); err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if runErr != nil {
		// An unclassified foreign error is not a per-test failure; the
		// run terminates abnormally.
		return fmt.Errorf("test run aborted: %w", runErr)
	}

	if err := rc.formatter.PrintRunStats(); err != nil {
		return err
	}

	if rc.config.Flags.OpenFailures && len(failures) > 0 {
		output, err := rc.storage.Load()
		if err != nil {
			return err
		}
		return rc.viewer.View(output)
	}
	return nil
}

// keepLastFailures narrows tests to the titles that failed in the last
// persisted run.
func (rc *RunCommand) keepLastFailures(tests []domain.ResolvedTest) ([]domain.ResolvedTest, error) {
	output, err := rc.storage.Load()
	if err != nil {
		return nil, fmt.Errorf("no previous run to select failures from: %w", err)
	}

	failedTitles := make(map[string]struct{}, len(output.Details))
	for _, failure := range output.Details {
		failedTitles[failure.Title] = struct{}{}
	}

	var kept []domain.ResolvedTest
	for _, rt := range tests {
		if _, ok := failedTitles[rt.Title]; ok {
			kept = append(kept, rt)
		}
	}
	return kept, nil
}

// buildModule assembles the build inputs for one discovery pass from the
// effective configuration.
func buildModule(cfg *config.Config) domain.Module {
	mod := domain.Module{
		Name:             cfg.AppName(),
		CodeDir:          cfg.GetSrcDir(),
		ToolchainVersion: os.Getenv("ZIG_VERSION"),
	}
	if root := cfg.GetRootSource(); fileExists(root) {
		mod.SourcePath = root
	}
	return mod
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	return strings.Split(output, "\n")
}
