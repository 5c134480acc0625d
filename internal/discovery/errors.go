package discovery

import "fmt"

// IOError reports unreadable source or an unresolvable code directory.
// It is fatal for the module's discovery pass.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unreadable source %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("unreadable source %s", e.Path)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports an unterminated or malformed test block.
// Offset is the byte offset within the origin fragment.
type ParseError struct {
	Origin string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: offset %d: %s", e.Origin, e.Offset, e.Reason)
}

// NameCollisionError reports two tests resolving to the same leaf symbol.
type NameCollisionError struct {
	Symbol string
	First  string
	Second string
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("tests %s and %s both resolve to symbol %s", e.First, e.Second, e.Symbol)
}
