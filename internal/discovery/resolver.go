package discovery

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/fhunleth/zigler/internal/domain"
)

// Resolver derives the callable names for discovered tests.
type Resolver struct{}

// NewResolver creates a new Resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve derives one descriptor's symbol and fallback identifier. The
// symbol is the last segment of the qualified name: the compiled artifact
// only exposes flat, unqualified function names.
func (r *Resolver) Resolve(desc domain.TestDescriptor) domain.ResolvedTest {
	symbol := desc.QualifiedName
	if idx := strings.LastIndex(symbol, "."); idx >= 0 {
		symbol = symbol[idx+1:]
	}
	return domain.ResolvedTest{
		TestDescriptor: desc,
		Symbol:         symbol,
		FallbackID:     FallbackID(desc.Title),
	}
}

// ResolveAll resolves descriptors in order. Two tests whose qualified names
// differ only in their namespace prefix collapse to the same symbol; that
// is a *NameCollisionError rather than a silent alias, so the second test
// cannot shadow the first.
func (r *Resolver) ResolveAll(descs []domain.TestDescriptor) ([]domain.ResolvedTest, error) {
	resolved := make([]domain.ResolvedTest, 0, len(descs))
	seen := make(map[string]string, len(descs))
	for _, desc := range descs {
		rt := r.Resolve(desc)
		if first, ok := seen[rt.Symbol]; ok {
			return nil, &NameCollisionError{
				Symbol: rt.Symbol,
				First:  first,
				Second: rt.QualifiedName,
			}
		}
		seen[rt.Symbol] = rt.QualifiedName
		resolved = append(resolved, rt)
	}
	return resolved, nil
}

// fallbackPrefix keeps fallback identifiers letter-initial and clearly
// test-owned in the target module's flat namespace.
const fallbackPrefix = "test_"

// FallbackID returns the content-addressed identifier for a test title:
// the SHA-1 of its UTF-8 bytes in lowercase hex, prefixed. The same title
// always yields the same identifier, and the output is a valid bare
// identifier no matter what the title contains.
func FallbackID(title string) string {
	sum := sha1.Sum([]byte(title))
	return fallbackPrefix + hex.EncodeToString(sum[:])
}
