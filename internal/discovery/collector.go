package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fhunleth/zigler/internal/domain"
)

// Collector gathers the accumulated source text of a module.
//
// Only fragments residing directly in the resolved code directory are
// eligible; files reachable only through subdirectories are compiled-in
// dependencies, not test sources.
type Collector struct{}

// NewCollector creates a new Collector
func NewCollector() *Collector {
	return &Collector{}
}

// SourceSet is the collected source of one module: the resolved code
// directory and the eligible fragments in insertion order.
type SourceSet struct {
	Dir       string
	Fragments []domain.Fragment
}

// Combined returns the concatenated source text of all fragments.
func (s *SourceSet) Combined() string {
	var b strings.Builder
	for _, f := range s.Fragments {
		b.WriteString(f.Source)
		if !strings.HasSuffix(f.Source, "\n") {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// Collect resolves the module's code directory and reads every eligible
// fragment. The code directory defaults to the directory containing the
// declared source file; an explicit CodeDir overrides it. A directory that
// cannot be resolved, or a fragment that cannot be read, is an *IOError.
func (c *Collector) Collect(mod domain.Module) (*SourceSet, error) {
	dir := mod.CodeDir
	if dir == "" {
		if mod.SourcePath == "" {
			return nil, &IOError{Path: "", Err: os.ErrNotExist}
		}
		dir = filepath.Dir(mod.SourcePath)
	}
	dir = filepath.Clean(dir)

	info, err := os.Stat(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &IOError{Path: dir, Err: os.ErrInvalid}
	}

	// Eligibility compares absolute paths so a fragment spelled relative
	// is scoped the same as its absolute form.
	absDir := dir
	if abs, err := filepath.Abs(dir); err == nil {
		absDir = abs
	}

	paths := mod.Fragments
	if len(paths) == 0 {
		paths, err = c.enumerate(absDir, mod.SourcePath)
		if err != nil {
			return nil, err
		}
	} else if mod.SourcePath != "" && !contains(paths, mod.SourcePath) {
		paths = append([]string{mod.SourcePath}, paths...)
	}

	set := &SourceSet{Dir: dir}
	for _, path := range paths {
		if fragmentDir(path) != absDir {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, &IOError{Path: path, Err: err}
		}
		set.Fragments = append(set.Fragments, domain.Fragment{
			Path:   path,
			Source: string(content),
		})
	}
	return set, nil
}

// enumerate lists the .zig files directly in dir, root source first, the
// rest in name order so repeated passes see the same insertion order.
func (c *Collector) enumerate(dir, rootSource string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}

	root := ""
	if rootSource != "" {
		root = filepath.Clean(rootSource)
		if abs, err := filepath.Abs(root); err == nil {
			root = abs
		}
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".zig") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if path == root {
			continue
		}
		paths = append(paths, path)
	}
	sort.Strings(paths)

	if root != "" && filepath.Dir(root) == dir {
		paths = append([]string{root}, paths...)
	}
	return paths, nil
}

// fragmentDir returns the absolute parent directory of a fragment path.
func fragmentDir(path string) string {
	path = filepath.Clean(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return filepath.Dir(path)
}

func contains(paths []string, path string) bool {
	for _, p := range paths {
		if p == path {
			return true
		}
	}
	return false
}
