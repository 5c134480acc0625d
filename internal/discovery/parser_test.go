package discovery

import (
	"errors"
	"strings"
	"testing"
)

func TestParser_Parse(t *testing.T) {
	parser := NewParser()

	t.Run("finds a single test block", func(t *testing.T) {
		source := `const std = @import("std");

test "the one function returns one" {
    assert(one() == 1);
}
`
		descs, err := parser.Parse(source, "src/one.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(descs))
		}
		if descs[0].Title != "the one function returns one" {
			t.Errorf("unexpected title: %q", descs[0].Title)
		}
		if descs[0].QualifiedName != "one.test_the_one_function_returns_one" {
			t.Errorf("unexpected qualified name: %q", descs[0].QualifiedName)
		}
		if descs[0].Origin != "src/one.zig" {
			t.Errorf("unexpected origin: %q", descs[0].Origin)
		}
	})

	t.Run("yields descriptors in source order", func(t *testing.T) {
		source := `
test "first" { }
fn helper() void { if (true) { } }
test "second" { while (true) { break; } }
test "third" { }
`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		titles := make([]string, len(descs))
		for i, d := range descs {
			titles[i] = d.Title
		}
		expected := []string{"first", "second", "third"}
		if len(titles) != len(expected) {
			t.Fatalf("expected %d descriptors, got %d: %v", len(expected), len(titles), titles)
		}
		for i := range expected {
			if titles[i] != expected[i] {
				t.Errorf("descriptor %d: expected %q, got %q", i, expected[i], titles[i])
			}
		}
	})

	t.Run("brace inside a string does not end the block", func(t *testing.T) {
		source := `test "a" { x = "{"; } test "b" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 2 {
			t.Fatalf("expected 2 descriptors, got %d", len(descs))
		}
		if descs[0].Title != "a" || descs[1].Title != "b" {
			t.Errorf("expected titles a, b; got %q, %q", descs[0].Title, descs[1].Title)
		}
	})

	t.Run("brace inside a comment does not end the block", func(t *testing.T) {
		source := "test \"a\" {\n// closing } that is not real\nconst x = 1;\n}\ntest \"b\" { }\n"
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 2 {
			t.Fatalf("expected 2 descriptors, got %d", len(descs))
		}
	})

	t.Run("brace inside a multiline string does not end the block", func(t *testing.T) {
		source := "test \"a\" {\n" +
			"    const s =\n" +
			"        \\\\braces { in\n" +
			"        \\\\a } multiline string\n" +
			"    ;\n" +
			"}\n" +
			"test \"b\" { }\n"
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 2 {
			t.Fatalf("expected 2 descriptors, got %d", len(descs))
		}
		if descs[0].Title != "a" || descs[1].Title != "b" {
			t.Errorf("expected titles a, b; got %q, %q", descs[0].Title, descs[1].Title)
		}
	})

	t.Run("test keyword inside a multiline string is ignored", func(t *testing.T) {
		source := "const s =\n    \\\\test \"fake\" {\n;\ntest \"real\" { }\n"
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 || descs[0].Title != "real" {
			t.Fatalf("expected only the real test, got %v", descs)
		}
	})

	t.Run("line comment between title and brace", func(t *testing.T) {
		source := "test \"x\" // covers the slow path\n{\n    run();\n}\n"
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 || descs[0].Title != "x" {
			t.Fatalf("expected the commented declaration to parse, got %v", descs)
		}
	})

	t.Run("brace inside a character literal does not end the block", func(t *testing.T) {
		source := `test "a" { const c = '{'; const d = '}'; } test "b" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 2 {
			t.Fatalf("expected 2 descriptors, got %d", len(descs))
		}
	})

	t.Run("test keyword inside a string or comment is ignored", func(t *testing.T) {
		source := "const s = \"test \\\"fake\\\" {\";\n// test \"commented out\" { }\ntest \"real\" { }\n"
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 || descs[0].Title != "real" {
			t.Fatalf("expected only the real test, got %v", descs)
		}
	})

	t.Run("longer identifiers and field access are not the keyword", func(t *testing.T) {
		source := `
const testing = @import("std").testing;
fn mytest() void { }
fn run() void { foo.test ("nope"); }
test "yes" { }
`
		// foo.test is a field access, not the keyword; mytest and testing
		// contain the keyword as a substring only.
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 || descs[0].Title != "yes" {
			t.Fatalf("expected only \"yes\", got %v", descs)
		}
	})

	t.Run("unnamed test blocks are skipped", func(t *testing.T) {
		source := `test { expect(true); } test "named" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 || descs[0].Title != "named" {
			t.Fatalf("expected only the named test, got %v", descs)
		}
	})

	t.Run("titles keep punctuation and unicode", func(t *testing.T) {
		source := `test "caché: überflow & friends!" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if descs[0].Title != "caché: überflow & friends!" {
			t.Errorf("unexpected title: %q", descs[0].Title)
		}
	})

	t.Run("escaped quotes inside the title", func(t *testing.T) {
		source := `test "edge: quotes \" and braces { }" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 1 {
			t.Fatalf("expected 1 descriptor, got %d", len(descs))
		}
		if descs[0].Title != `edge: quotes " and braces { }` {
			t.Errorf("unexpected title: %q", descs[0].Title)
		}
	})

	t.Run("title whitespace is trimmed", func(t *testing.T) {
		source := `test "  padded title  " { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if descs[0].Title != "padded title" {
			t.Errorf("expected trimmed title, got %q", descs[0].Title)
		}
	})

	t.Run("deeply nested braces in the body", func(t *testing.T) {
		source := `test "nested" { if (a) { if (b) { while (c) { } } } } test "after" { }`
		descs, err := parser.Parse(source, "t.zig")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(descs) != 2 {
			t.Fatalf("expected 2 descriptors, got %d", len(descs))
		}
	})
}

func TestParser_ParseErrors(t *testing.T) {
	parser := NewParser()

	t.Run("unterminated block reports the opening brace offset", func(t *testing.T) {
		source := `test "x" { `
		_, err := parser.Parse(source, "broken.zig")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if parseErr.Origin != "broken.zig" {
			t.Errorf("unexpected origin: %q", parseErr.Origin)
		}
		if want := strings.Index(source, "{"); parseErr.Offset != want {
			t.Errorf("expected offset %d, got %d", want, parseErr.Offset)
		}
	})

	t.Run("unterminated nested body still points at the test block", func(t *testing.T) {
		source := `test "x" { if (a) { }`
		_, err := parser.Parse(source, "broken.zig")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if want := strings.Index(source, "{"); parseErr.Offset != want {
			t.Errorf("expected offset %d, got %d", want, parseErr.Offset)
		}
	})

	t.Run("empty title after trimming", func(t *testing.T) {
		_, err := parser.Parse(`test "   " { }`, "t.zig")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("unterminated title string", func(t *testing.T) {
		_, err := parser.Parse(`test "runs off the end`, "t.zig")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})

	t.Run("missing block after title", func(t *testing.T) {
		_, err := parser.Parse(`test "x" const y = 1;`, "t.zig")
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
	})
}

func TestLeafName(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"adds small numbers", "test_adds_small_numbers"},
		{"already_safe", "test_already_safe"},
		{"punct: a, b & c!", "test_punct_a_b_c_"},
		{"42 starts with digits", "test_42_starts_with_digits"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := leafName(tt.title); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
