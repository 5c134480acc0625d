package domain

import "time"

// TestResult represents the outcome of executing one registered test case.
type TestResult struct {
	Title    string        // Test title
	Symbol   string        // Compiled symbol that was invoked
	Origin   string        // Fragment the test came from
	Success  bool          // Whether the test passed
	Output   string        // Raw output from the native invocation
	Error    error         // Error if invocation failed abnormally
	Duration time.Duration // Time taken to execute
}

// RunMeta contains metadata about a test run.
type RunMeta struct {
	App             string  `json:"app"`
	Toolchain       string  `json:"toolchain,omitempty"`
	TotalTests      int     `json:"total_tests"`
	PassedTests     int     `json:"passed_tests"`
	FailedTests     int     `json:"failed_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Workers         int     `json:"workers"`
	Timestamp       string  `json:"timestamp"`
}

// RunOutput is the complete persisted structure for one test run.
type RunOutput struct {
	Meta    RunMeta       `json:"meta"`
	Details []TestFailure `json:"details"`
}
