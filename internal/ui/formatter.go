package ui

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"

	"github.com/fhunleth/zigler/internal/config"
	"github.com/fhunleth/zigler/internal/domain"
)

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config) *Formatter {
	return &Formatter{config: cfg}
}

// PrintRunStats reads and displays meta statistics from the JSON results file
func (f *Formatter) PrintRunStats() error {
	outputPath := f.config.GetOutputPath()

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	meta := output.Meta

	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                    Test Execution Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	f.printRow("Application", func() { color.White("%-27s │\n", meta.App) })
	if meta.Toolchain != "" {
		f.printRow("Toolchain", func() { color.White("%-27s │\n", meta.Toolchain) })
	}
	f.printRow("Total Tests", func() { color.White("%-27d │\n", meta.TotalTests) })
	f.printRow("Passed Tests", func() { color.Green("%-27d │\n", meta.PassedTests) })
	f.printRow("Failed Tests", func() { color.Red("%-27d │\n", meta.FailedTests) })
	f.printRow("Duration", func() { color.White("%-27s │\n", fmt.Sprintf("%.2fs", meta.DurationSeconds)) })
	f.printRow("Workers", func() { color.White("%-27d │\n", meta.Workers) })

	fmt.Printf("│ %-31s │ ", "Timestamp")
	color.White("%-27s │\n", meta.Timestamp)
	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	if meta.FailedTests == 0 {
		color.Green("✓ All tests passed!")
	} else {
		color.Red("✗ %d test(s) failed", meta.FailedTests)
		fmt.Println()
		f.printFailures(output.Details)
	}

	return nil
}

func (f *Formatter) printRow(label string, value func()) {
	fmt.Printf("│ %-31s │ ", label)
	value()
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")
}

// printFailures lists failed tests grouped by origin fragment.
func (f *Formatter) printFailures(failures []domain.TestFailure) {
	byOrigin := make(map[string][]domain.TestFailure)
	for _, failure := range failures {
		byOrigin[failure.Origin] = append(byOrigin[failure.Origin], failure)
	}

	origins := make([]string, 0, len(byOrigin))
	for origin := range byOrigin {
		origins = append(origins, origin)
	}
	sort.Strings(origins)

	for i, origin := range origins {
		isLastOrigin := i == len(origins)-1
		if isLastOrigin {
			color.Cyan("└── %s", f.relPath(origin))
		} else {
			color.Cyan("├── %s", f.relPath(origin))
		}

		group := byOrigin[origin]
		for j, failure := range group {
			var prefix string
			switch {
			case isLastOrigin && j == len(group)-1:
				prefix = "    └── "
			case isLastOrigin:
				prefix = "    ├── "
			case j == len(group)-1:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			fmt.Printf("%s%s\n", prefix, color.RedString(failure.Title))
		}
	}
}

// PrintTestList prints discovered tests grouped by origin fragment,
// optionally with their callable names.
func (f *Formatter) PrintTestList(tests []domain.ResolvedTest, showSymbols bool) error {
	color.Green("Found %d test(s):\n", len(tests))

	// Keep source order within fragments and first-seen order across them.
	var origins []string
	byOrigin := make(map[string][]domain.ResolvedTest)
	for _, rt := range tests {
		if _, ok := byOrigin[rt.Origin]; !ok {
			origins = append(origins, rt.Origin)
		}
		byOrigin[rt.Origin] = append(byOrigin[rt.Origin], rt)
	}

	for i, origin := range origins {
		isLastOrigin := i == len(origins)-1
		if isLastOrigin {
			color.Cyan("└── %s", f.relPath(origin))
		} else {
			color.Cyan("├── %s", f.relPath(origin))
		}

		group := byOrigin[origin]
		for j, rt := range group {
			var prefix string
			switch {
			case isLastOrigin && j == len(group)-1:
				prefix = "    └── "
			case isLastOrigin:
				prefix = "    ├── "
			case j == len(group)-1:
				prefix = "│   └── "
			default:
				prefix = "│   ├── "
			}
			if showSymbols {
				fmt.Printf("%s%s  %s\n", prefix, color.YellowString(rt.Title),
					color.WhiteString("(%s, %s)", rt.Symbol, rt.FallbackID))
			} else {
				fmt.Printf("%s%s\n", prefix, color.YellowString(rt.Title))
			}
		}

		if i < len(origins)-1 {
			fmt.Println()
		}
	}

	return nil
}

func (f *Formatter) relPath(path string) string {
	rel, err := filepath.Rel(f.config.ProjectPath, path)
	if err != nil {
		return path
	}
	return rel
}
