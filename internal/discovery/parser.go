package discovery

import (
	"path/filepath"
	"strings"

	"github.com/fhunleth/zigler/internal/domain"
)

// Parser scans raw source text for named test blocks:
//
//	test "<title>" { <body> }
//
// The scan is a single left-to-right pass over four lexical states (plain
// code, string/character literal, multiline string line, line comment) with
// a brace-depth counter that only moves in plain code. Counting braces over
// the raw text would misfire on any brace inside a string or comment, so
// the states are the whole point.
type Parser struct{}

// NewParser creates a new Parser
func NewParser() *Parser {
	return &Parser{}
}

const (
	stateCode = iota
	stateString
	stateChar
	stateMultiline
	stateComment
)

// openBlock is a recognized test block whose closing brace has not been
// seen yet. offset is the byte position of its opening brace; depth is the
// brace depth at which it opened.
type openBlock struct {
	offset int
	depth  int
}

// Parse returns the test blocks of one fragment, in source order. The
// origin reference is used for the descriptors' namespace and for
// diagnostics. An unterminated or malformed block is a *ParseError.
func (p *Parser) Parse(source, origin string) ([]domain.TestDescriptor, error) {
	ns := namespace(origin)

	var descriptors []domain.TestDescriptor
	var open []openBlock
	state := stateCode
	depth := 0

	i := 0
	for i < len(source) {
		c := source[i]
		switch state {
		case stateString:
			switch c {
			case '\\':
				i += 2
				continue
			case '"':
				state = stateCode
			}
			i++
		case stateChar:
			switch c {
			case '\\':
				i += 2
				continue
			case '\'':
				state = stateCode
			}
			i++
		case stateMultiline, stateComment:
			// Both run to end of line; escapes have no meaning here.
			if c == '\n' {
				state = stateCode
			}
			i++
		default: // plain code
			switch {
			case c == '/' && i+1 < len(source) && source[i+1] == '/':
				state = stateComment
				i += 2
			case c == '\\' && i+1 < len(source) && source[i+1] == '\\':
				// A \\ line is one segment of a multiline string literal.
				state = stateMultiline
				i += 2
			case c == '"':
				state = stateString
				i++
			case c == '\'':
				state = stateChar
				i++
			case c == '{':
				depth++
				i++
			case c == '}':
				depth--
				if n := len(open); n > 0 && depth == open[n-1].depth {
					open = open[:n-1]
				}
				i++
			case c == 't' && keywordAt(source, i):
				desc, braceOffset, next, err := p.scanBlock(source, i, origin, ns)
				if err != nil {
					return nil, err
				}
				if next < 0 {
					// "test" keyword without a quoted title
					// (e.g. an unnamed block); not ours.
					i += len(testKeyword)
					continue
				}
				descriptors = append(descriptors, desc)
				open = append(open, openBlock{offset: braceOffset, depth: depth})
				depth++
				i = next
			default:
				i++
			}
		}
	}

	if len(open) > 0 {
		return nil, &ParseError{
			Origin: origin,
			Offset: open[0].offset,
			Reason: "unterminated test block",
		}
	}
	return descriptors, nil
}

const testKeyword = "test"

// keywordAt reports whether the test keyword starts at i as a standalone
// identifier (not part of a longer name or a field access).
func keywordAt(source string, i int) bool {
	if !strings.HasPrefix(source[i:], testKeyword) {
		return false
	}
	if i > 0 {
		prev := source[i-1]
		if isIdentByte(prev) || prev == '.' || prev == '@' {
			return false
		}
	}
	if j := i + len(testKeyword); j < len(source) && isIdentByte(source[j]) {
		return false
	}
	return true
}

// scanBlock consumes a test keyword at i and its quoted title, up to and
// including the opening brace. It returns the descriptor, the byte offset
// of the opening brace, and the scan position just past it. A next of -1
// means the keyword was not followed by a quoted title.
func (p *Parser) scanBlock(source string, i int, origin, ns string) (domain.TestDescriptor, int, int, error) {
	var none domain.TestDescriptor

	j := skipSpaceAndComments(source, i+len(testKeyword))
	if j >= len(source) || source[j] != '"' {
		return none, 0, -1, nil
	}

	var raw strings.Builder
	k := j + 1
	for {
		if k >= len(source) {
			return none, 0, 0, &ParseError{Origin: origin, Offset: j, Reason: "unterminated test title"}
		}
		c := source[k]
		if c == '"' {
			k++
			break
		}
		if c == '\\' {
			if k+1 >= len(source) {
				return none, 0, 0, &ParseError{Origin: origin, Offset: j, Reason: "unterminated test title"}
			}
			switch source[k+1] {
			case '"', '\\':
				raw.WriteByte(source[k+1])
			default:
				raw.WriteByte('\\')
				raw.WriteByte(source[k+1])
			}
			k += 2
			continue
		}
		raw.WriteByte(c)
		k++
	}

	title := strings.TrimSpace(raw.String())
	if title == "" {
		return none, 0, 0, &ParseError{Origin: origin, Offset: j, Reason: "empty test title"}
	}

	k = skipSpaceAndComments(source, k)
	if k >= len(source) || source[k] != '{' {
		return none, 0, 0, &ParseError{Origin: origin, Offset: k, Reason: "expected '{' after test title"}
	}

	qualified := leafName(title)
	if ns != "" {
		qualified = ns + "." + qualified
	}
	desc := domain.TestDescriptor{
		Title:         title,
		QualifiedName: qualified,
		Origin:        origin,
		Offset:        k,
	}
	return desc, k, k + 1, nil
}

// leafName derives the flat callable name the compiled artifact exposes
// for a test title: every run of bytes outside [A-Za-z0-9_] collapses to a
// single underscore.
func leafName(title string) string {
	var b strings.Builder
	b.WriteString("test_")
	sep := false
	for i := 0; i < len(title); i++ {
		c := title[i]
		if isIdentByte(c) {
			b.WriteByte(c)
			sep = false
		} else if !sep {
			b.WriteByte('_')
			sep = true
		}
	}
	return b.String()
}

// namespace derives a descriptor's namespace prefix from its origin
// fragment: the file base name without extension.
func namespace(origin string) string {
	if origin == "" {
		return ""
	}
	base := filepath.Base(origin)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func skipSpace(source string, i int) int {
	for i < len(source) {
		switch source[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

// skipSpaceAndComments advances past whitespace and line comments; both may
// sit between the tokens of a test declaration.
func skipSpaceAndComments(source string, i int) int {
	for {
		i = skipSpace(source, i)
		if strings.HasPrefix(source[i:], "//") {
			for i < len(source) && source[i] != '\n' {
				i++
			}
			continue
		}
		return i
	}
}

func isIdentByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}
