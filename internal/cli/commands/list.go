package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/fhunleth/zigler/internal/config"
	"github.com/fhunleth/zigler/internal/discovery"
	"github.com/fhunleth/zigler/internal/domain"
	"github.com/fhunleth/zigler/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	filter    *discovery.Filter
	formatter *ui.Formatter
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	filter *discovery.Filter,
	formatter *ui.Formatter,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		filter:    filter,
		formatter: formatter,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	mod := buildModule(lc.config)

	tests, err := discovery.Discover(domain.BuildContext{Module: mod})
	if err != nil {
		return err
	}

	tests = lc.filter.ResolvedByTitle(tests, lc.config.Flags.NameFilter)

	if len(tests) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	return lc.formatter.PrintTestList(tests, lc.config.Flags.Symbols)
}
