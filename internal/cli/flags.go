package cli

import "github.com/fhunleth/zigler/internal/config"

// Flags holds command-line flags
type Flags struct {
	Workers      int
	SrcDir       string
	NameFilter   string
	Symbols      bool
	FailFast     bool
	OnlyFailed   bool
	OpenFailures bool
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Workers:      f.Workers,
		SrcDir:       f.SrcDir,
		NameFilter:   f.NameFilter,
		Symbols:      f.Symbols,
		FailFast:     f.FailFast,
		OnlyFailed:   f.OnlyFailed,
		OpenFailures: f.OpenFailures,
	}
}
