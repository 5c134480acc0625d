package discovery

import "github.com/fhunleth/zigler/internal/domain"

// Discover runs one full discovery pass for the module in ctx: collect the
// eligible source fragments, parse them for test blocks, and resolve the
// callable names. It runs synchronously and leaves no state behind; the
// returned tests are in source order across fragments.
func Discover(ctx domain.BuildContext) ([]domain.ResolvedTest, error) {
	set, err := NewCollector().Collect(ctx.Module)
	if err != nil {
		return nil, err
	}

	parser := NewParser()
	var descs []domain.TestDescriptor
	for _, frag := range set.Fragments {
		found, err := parser.Parse(frag.Source, frag.Path)
		if err != nil {
			return nil, err
		}
		descs = append(descs, found...)
	}

	return NewResolver().ResolveAll(descs)
}
