package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultSrcDir is the default source directory within the project
	DefaultSrcDir = "src"
	// DefaultRootSource is the default root source file name
	DefaultRootSource = "main.zig"
	// DefaultTestBinary is the default compiled test binary, relative to the project
	DefaultTestBinary = "zig-out/bin/test-runner"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "test-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "zig-out"
	// DefaultWorkers is the default number of workers
	DefaultWorkers = 4
)
