package execution

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fhunleth/zigler/internal/config"
)

// fakeTestBinary mimics the compiled test runner: clean exit for a known
// passing symbol, exit 1 with a trace for an asserting one, exit 2
// otherwise.
const fakeTestBinary = `#!/bin/sh
case "$1" in
  test_ok) exit 0 ;;
  test_fail)
    echo "assertion failed"
    echo "at main.zig:7"
    exit 1 ;;
  *)
    echo "unreachable code reached"
    exit 2 ;;
esac
`

func TestBinaryRunner_Invoke(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "zigtest-bin-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	binPath := filepath.Join(tmpDir, "test-runner")
	if err := os.WriteFile(binPath, []byte(fakeTestBinary), 0755); err != nil {
		t.Fatalf("failed to write fake binary: %v", err)
	}

	cfg := &config.Config{ProjectPath: tmpDir, TestBinary: binPath}
	runner := NewBinaryRunner(cfg)

	t.Run("clean exit is success", func(t *testing.T) {
		if err := runner.Invoke("test_ok"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("exit 1 is a native fault with the output as trace", func(t *testing.T) {
		err := runner.Invoke("test_fail")
		var fault *NativeFault
		if !errors.As(err, &fault) {
			t.Fatalf("expected *NativeFault, got %v", err)
		}
		if len(fault.Trace) != 2 || fault.Trace[0] != "assertion failed" || fault.Trace[1] != "at main.zig:7" {
			t.Errorf("unexpected trace: %v", fault.Trace)
		}
	})

	t.Run("other exit codes are not recovered as faults", func(t *testing.T) {
		err := runner.Invoke("test_crash")
		if err == nil {
			t.Fatal("expected an error")
		}
		var fault *NativeFault
		if errors.As(err, &fault) {
			t.Errorf("exit 2 must not be classified as a native fault: %v", err)
		}
	})

	t.Run("missing binary is not recovered as a fault", func(t *testing.T) {
		missing := NewBinaryRunner(&config.Config{
			ProjectPath: tmpDir,
			TestBinary:  filepath.Join(tmpDir, "does-not-exist"),
		})
		err := missing.Invoke("test_ok")
		if err == nil {
			t.Fatal("expected an error")
		}
		var fault *NativeFault
		if errors.As(err, &fault) {
			t.Errorf("exec failure must not be classified as a native fault: %v", err)
		}
	})
}
