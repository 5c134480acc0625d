// Package zigler turns test blocks embedded in a module's Zig source into
// individually runnable, individually reported test cases.
//
// The CLI (cmd/zigtest) discovers and runs tests headlessly through a
// compiled test binary. This package is the live-mode integration: it
// registers every discovered test against a *testing.T session and runs
// each as its own subtest.
package zigler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fhunleth/zigler/internal/discovery"
	"github.com/fhunleth/zigler/internal/domain"
	"github.com/fhunleth/zigler/internal/execution"
)

// Module describes one embedded-test module: where its source lives and
// the build metadata passed through from the enclosing build.
type Module struct {
	// Name is the target application identifier.
	Name string
	// SourcePath is the declared root source file. The code directory
	// defaults to the directory containing it.
	SourcePath string
	// CodeDir optionally overrides the code directory. Only fragments
	// directly in the code directory are scanned for tests.
	CodeDir string
	// Fragments lists the incorporated source files in insertion order.
	// Empty means the code directory is enumerated.
	Fragments []string
	// ToolchainVersion and Resources are opaque build metadata.
	ToolchainVersion string
	Resources        []string
}

func (m Module) toDomain() domain.Module {
	return domain.Module{
		Name:             m.Name,
		SourcePath:       m.SourcePath,
		CodeDir:          m.CodeDir,
		Fragments:        m.Fragments,
		ToolchainVersion: m.ToolchainVersion,
		Resources:        m.Resources,
	}
}

// Runtime is the loaded module's flat symbol table. The loader binds each
// compiled test function under its symbol before RunTests is called.
type Runtime struct {
	table *execution.SymbolTable
}

// NewRuntime creates an empty Runtime.
func NewRuntime() *Runtime {
	return &Runtime{table: execution.NewSymbolTable()}
}

// Bind binds a compiled zero-argument function under its flat symbol.
func (r *Runtime) Bind(symbol string, fn func() error) {
	r.table.Bind(symbol, fn)
}

// Fault builds the native runtime's assertion fault with the given
// execution trace. Bound functions return it to signal a test failure.
func Fault(trace ...string) error {
	return &execution.NativeFault{Trace: trace}
}

// RunTests discovers the module's tests, registers them against t, and
// runs each as its own subtest. Registration completes in full before any
// test runs. A native fault fails only its own subtest with the standard
// diagnostic and trace; any other error from a bound function is not
// recovered.
func RunTests(t *testing.T, mod Module, rt *Runtime) {
	t.Helper()

	tests, err := discovery.Discover(domain.BuildContext{Module: mod.toDomain()})
	if err != nil {
		t.Fatalf("test discovery failed: %v", err)
	}

	wrapper := execution.NewWrapper(rt.table)
	registrar := execution.NewRegistrar(rt.table, wrapper)
	cases, err := registrar.Register(tests, &liveSession{})
	if err != nil {
		t.Fatalf("test registration failed: %v", err)
	}

	for _, c := range cases {
		c := c
		t.Run(c.Title, func(t *testing.T) {
			fn, ok := rt.table.Lookup(c.Name)
			if !ok {
				t.Fatalf("no stub bound under %s", c.Name)
			}
			err := fn()
			if err == nil {
				return
			}
			var failure *execution.HostFailure
			if errors.As(err, &failure) {
				t.Error(failure.Error())
				return
			}
			// Unknown foreign error: terminate abnormally rather than
			// report a clean failure.
			panic(err)
		})
	}
}

// liveSession generates unique stub names for dynamically registered
// tests.
type liveSession struct {
	seq int
}

func (s *liveSession) Register(title string) (string, error) {
	s.seq++
	return fmt.Sprintf("zigtest_case_%04d", s.seq), nil
}
