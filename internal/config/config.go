package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	SrcDir      string
	TestBinary  string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Workers int

	// Command flags
	Flags Flags
}

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

// New creates a new Config with defaults, applying .env and environment
// overrides (ZIGTEST_PROJECT, ZIGTEST_SRC, ZIGTEST_BIN).
func New() *Config {
	// .env is optional; plain environment variables still apply
	_ = godotenv.Load()

	cfg := &Config{
		ProjectPath:    DefaultProjectPath,
		SrcDir:         DefaultSrcDir,
		TestBinary:     DefaultTestBinary,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Workers:        DefaultWorkers,
		Flags:          Flags{Workers: DefaultWorkers},
	}
	if v := os.Getenv("ZIGTEST_PROJECT"); v != "" {
		cfg.ProjectPath = v
	}
	if v := os.Getenv("ZIGTEST_SRC"); v != "" {
		cfg.SrcDir = v
	}
	if v := os.Getenv("ZIGTEST_BIN"); v != "" {
		cfg.TestBinary = v
	}
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags

	if flags.Workers > 0 {
		cfg.Workers = flags.Workers
	}
	return cfg
}

// AppName returns the target application identifier: the project
// directory's base name.
func (c *Config) AppName() string {
	if abs, err := filepath.Abs(c.ProjectPath); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(c.ProjectPath)
}

// GetSrcDir returns the source directory, using the flag override when
// provided.
func (c *Config) GetSrcDir() string {
	if c.Flags.SrcDir != "" {
		if filepath.IsAbs(c.Flags.SrcDir) {
			return c.Flags.SrcDir
		}
		return filepath.Join(c.ProjectPath, c.Flags.SrcDir)
	}
	return filepath.Join(c.ProjectPath, c.SrcDir)
}

// GetRootSource returns the path of the declared root source file.
func (c *Config) GetRootSource() string {
	return filepath.Join(c.GetSrcDir(), DefaultRootSource)
}

// GetTestBinaryPath returns the path to the compiled test binary.
func (c *Config) GetTestBinaryPath() string {
	if filepath.IsAbs(c.TestBinary) {
		return c.TestBinary
	}
	return filepath.Join(c.ProjectPath, c.TestBinary)
}

// GetOutputPath returns the full path to the output JSON file, resolved to
// an absolute path so run and failures always read/write the same file
// regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ProjectPath, c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
