package execution

import (
	"errors"
	"fmt"
	"strings"
)

// FailureMessage is the fixed diagnostic attached to every native test
// failure. Structured expression/value detail is not recoverable across
// the runtime boundary; the native trace carries what is.
const FailureMessage = "native test failed"

// NativeFault is the native runtime's generic assertion/trap fault class.
type NativeFault struct {
	Trace []string
}

func (f *NativeFault) Error() string {
	if len(f.Trace) == 0 {
		return "native fault"
	}
	return "native fault:\n" + strings.Join(f.Trace, "\n")
}

// HostFailure is the host framework's standard failure contract: a fixed
// message plus the original execution trace.
type HostFailure struct {
	Message string
	Trace   []string
}

func (e *HostFailure) Error() string {
	if len(e.Trace) == 0 {
		return e.Message
	}
	return e.Message + "\n" + strings.Join(e.Trace, "\n")
}

// Invoker calls a compiled zero-argument function by name.
type Invoker interface {
	Invoke(symbol string) error
}

// OutcomeKind classifies one invocation.
type OutcomeKind int

const (
	// Passed: the native call returned normally.
	Passed OutcomeKind = iota
	// Failed: the native call raised the runtime's assertion/trap fault.
	Failed
	// Errored: any other foreign error; not recovered here.
	Errored
)

// Outcome is the classified result of one native test invocation.
type Outcome struct {
	Kind    OutcomeKind
	Message string   // fixed diagnostic, set for Failed
	Trace   []string // native execution trace, set for Failed
	Err     error    // unclassified foreign error, set for Errored
}

// Classify maps an invocation error onto the failure contract. Only the
// native fault class is recovered; everything else stays untouched so the
// caller sees it exactly as the runtime raised it.
func Classify(err error) Outcome {
	if err == nil {
		return Outcome{Kind: Passed}
	}
	var fault *NativeFault
	if errors.As(err, &fault) {
		return Outcome{
			Kind:    Failed,
			Message: FailureMessage,
			Trace:   fault.Trace,
		}
	}
	return Outcome{Kind: Errored, Err: err}
}

// Wrapper invokes compiled test functions and classifies their results.
type Wrapper struct {
	invoker Invoker
}

// NewWrapper creates a new Wrapper
func NewWrapper(invoker Invoker) *Wrapper {
	return &Wrapper{invoker: invoker}
}

// Run invokes the compiled function behind symbol and classifies the
// result.
func (w *Wrapper) Run(symbol string) Outcome {
	return Classify(w.invoker.Invoke(symbol))
}

// Stub returns the zero-argument entry point bound for one test: it runs
// the wrapper against the compiled symbol and re-signals a native fault as
// a *HostFailure. Unknown foreign errors pass through unmodified.
func (w *Wrapper) Stub(symbol string) TestFunc {
	return func() error {
		outcome := w.Run(symbol)
		switch outcome.Kind {
		case Passed:
			return nil
		case Failed:
			return &HostFailure{Message: outcome.Message, Trace: outcome.Trace}
		default:
			return outcome.Err
		}
	}
}

// TestFunc is a zero-argument invokable entry point in the target module.
type TestFunc func() error

// SymbolTable is the target module's flat name-to-callable table. The
// loader populates compiled symbols before registration; the Registrar
// adds stub bindings. All writes complete before the first Invoke.
type SymbolTable struct {
	funcs map[string]TestFunc
}

// NewSymbolTable creates a new SymbolTable
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{funcs: make(map[string]TestFunc)}
}

// Bind binds fn under name, replacing any previous binding.
func (t *SymbolTable) Bind(name string, fn TestFunc) {
	t.funcs[name] = fn
}

// Lookup returns the callable bound under name.
func (t *SymbolTable) Lookup(name string) (TestFunc, bool) {
	fn, ok := t.funcs[name]
	return fn, ok
}

// Len returns the number of bindings.
func (t *SymbolTable) Len() int { return len(t.funcs) }

// Invoke implements Invoker over the table.
func (t *SymbolTable) Invoke(symbol string) error {
	fn, ok := t.funcs[symbol]
	if !ok {
		return fmt.Errorf("no such symbol: %s", symbol)
	}
	return fn()
}
