package config

import (
	"path/filepath"
	"testing"
)

func TestConfig_GetSrcDir(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name: "default src dir under project",
			config: &Config{
				ProjectPath: "/project",
				SrcDir:      "src",
				Flags:       Flags{},
			},
			expected: "/project/src",
		},
		{
			name: "relative flag override",
			config: &Config{
				ProjectPath: "/project",
				SrcDir:      "src",
				Flags: Flags{
					SrcDir: "lib/tests",
				},
			},
			expected: "/project/lib/tests",
		},
		{
			name: "absolute flag override",
			config: &Config{
				ProjectPath: "/project",
				SrcDir:      "src",
				Flags: Flags{
					SrcDir: "/absolute/path",
				},
			},
			expected: "/absolute/path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetSrcDir()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestNew(t *testing.T) {
	t.Setenv("ZIGTEST_PROJECT", "")
	t.Setenv("ZIGTEST_SRC", "")
	t.Setenv("ZIGTEST_BIN", "")

	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected ProjectPath %s, got %s", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.SrcDir != DefaultSrcDir {
		t.Errorf("expected SrcDir %s, got %s", DefaultSrcDir, cfg.SrcDir)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("ZIGTEST_PROJECT", "/tmp/proj")
	t.Setenv("ZIGTEST_SRC", "tests")
	t.Setenv("ZIGTEST_BIN", "/tmp/proj/runner")

	cfg := New()

	if cfg.ProjectPath != "/tmp/proj" {
		t.Errorf("expected ProjectPath /tmp/proj, got %s", cfg.ProjectPath)
	}
	if cfg.SrcDir != "tests" {
		t.Errorf("expected SrcDir tests, got %s", cfg.SrcDir)
	}
	if got := cfg.GetTestBinaryPath(); got != "/tmp/proj/runner" {
		t.Errorf("expected absolute binary path, got %s", got)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("ZIGTEST_PROJECT", "")

	cfg := Load(Flags{Workers: 9, NameFilter: "reg*"})

	if cfg.Workers != 9 {
		t.Errorf("expected workers flag to apply, got %d", cfg.Workers)
	}
	if cfg.Flags.NameFilter != "reg*" {
		t.Errorf("expected flags to be kept, got %q", cfg.Flags.NameFilter)
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := &Config{
		ProjectPath:    "/project",
		SrcDir:         "src",
		TestBinary:     DefaultTestBinary,
		OutputJSONDir:  DefaultOutputJSONDir,
		OutputJSONFile: DefaultOutputJSONFile,
	}

	if got := cfg.GetRootSource(); got != filepath.Join("/project/src", DefaultRootSource) {
		t.Errorf("unexpected root source: %s", got)
	}
	if got := cfg.GetTestBinaryPath(); got != "/project/zig-out/bin/test-runner" {
		t.Errorf("unexpected test binary path: %s", got)
	}
	if got := cfg.GetOutputPath(); got != "/project/zig-out/test-results.json" {
		t.Errorf("unexpected output path: %s", got)
	}
	if got := cfg.AppName(); got != "project" {
		t.Errorf("unexpected app name: %s", got)
	}
}
