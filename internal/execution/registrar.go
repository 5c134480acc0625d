package execution

import (
	"fmt"

	"github.com/fhunleth/zigler/internal/domain"
)

// Session is the host framework's dynamic registration hook. Register is
// called once per discovered test, before any invocation, and returns the
// generated name the executable stub must be bound under.
type Session interface {
	Register(title string) (string, error)
}

// Registrar binds one executable stub per resolved test into the target
// module's symbol table. It is the only component that mutates the table
// after loading, and it runs exactly once per build, before any stub can
// be invoked.
type Registrar struct {
	table   *SymbolTable
	wrapper *Wrapper
}

// NewRegistrar creates a new Registrar
func NewRegistrar(table *SymbolTable, wrapper *Wrapper) *Registrar {
	return &Registrar{table: table, wrapper: wrapper}
}

// Register binds the tests in order. With a live session each stub is
// bound under the name the session generated for its title; headless
// (session nil) it is bound under the test's fallback identifier, so
// tooling can still reach it by direct invocation.
func (r *Registrar) Register(tests []domain.ResolvedTest, session Session) ([]domain.RegisteredCase, error) {
	cases := make([]domain.RegisteredCase, 0, len(tests))
	for _, rt := range tests {
		name := rt.FallbackID
		if session != nil {
			generated, err := session.Register(rt.Title)
			if err != nil {
				return nil, fmt.Errorf("register %q: %w", rt.Title, err)
			}
			name = generated
		}
		r.table.Bind(name, r.wrapper.Stub(rt.Symbol))
		cases = append(cases, domain.RegisteredCase{
			Title:      rt.Title,
			Symbol:     rt.Symbol,
			Name:       name,
			FallbackID: rt.FallbackID,
			Origin:     rt.Origin,
		})
	}
	return cases, nil
}
