package execution

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/fhunleth/zigler/internal/config"
)

// BinaryRunner invokes compiled test functions through the externally
// built test binary, one process per test. The binary takes the symbol to
// run as its single argument and exits 1 on a native assertion fault.
type BinaryRunner struct {
	config *config.Config
}

// NewBinaryRunner creates a new BinaryRunner
func NewBinaryRunner(cfg *config.Config) *BinaryRunner {
	return &BinaryRunner{config: cfg}
}

// Invoke implements Invoker. A clean exit is success; exit status 1 is the
// native fault class, with the process output as the execution trace. Any
// other failure is returned as-is and is not recovered downstream.
func (r *BinaryRunner) Invoke(symbol string) error {
	cmd := exec.Command(r.config.GetTestBinaryPath(), symbol)
	cmd.Dir = r.config.ProjectPath
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return &NativeFault{Trace: splitTrace(output)}
	}
	return err
}

func splitTrace(output []byte) []string {
	text := strings.TrimRight(string(output), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
