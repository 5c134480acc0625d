package domain

// Fragment is one source fragment physically incorporated into a module.
type Fragment struct {
	Path   string // Full path to the fragment on disk
	Source string // Raw source text
}

// Module describes the build inputs for one embedded-test module.
// Name, ToolchainVersion and Resources come from the enclosing build and are
// passed through unchanged.
type Module struct {
	Name             string   // Target application identifier
	SourcePath       string   // Declared root source file
	CodeDir          string   // Optional code directory override
	Fragments        []string // Declared fragment paths, in insertion order
	ToolchainVersion string   // Native toolchain version
	Resources        []string // Resource list
}

// TestDescriptor represents one discovered test block.
type TestDescriptor struct {
	Title         string // Quoted title text, whitespace-trimmed
	QualifiedName string // Dotted namespace path ending in the leaf callable name
	Origin        string // Fragment the block was found in
	Offset        int    // Byte offset of the opening brace
}

// ResolvedTest is a TestDescriptor plus its derived names.
type ResolvedTest struct {
	TestDescriptor
	Symbol     string // Leaf callable name in the compiled artifact
	FallbackID string // Content-addressed identifier for headless binding
}

// RegisteredCase is a live binding between a discovered test and an
// invokable entry point in the target module.
type RegisteredCase struct {
	Title      string
	Symbol     string
	Name       string // Name the stub is bound under (generated or FallbackID)
	FallbackID string
	Origin     string
}

// BuildContext threads one build's module metadata through discovery and
// registration. It carries no state across builds.
type BuildContext struct {
	Module Module
}
