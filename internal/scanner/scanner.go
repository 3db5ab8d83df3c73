// Package scanner enumerates candidate agent directories under a root path.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// skipNames are directory names that are never agent packages.
var skipNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
}

// Candidate is a directory treated as a prospective agent package.
type Candidate struct {
	Name string
	Path string
}

// Scan lists the immediate subdirectories of root in lexicographic order.
// Non-directories, hidden entries, and known cache directories are skipped.
// A missing or non-directory root is an error that aborts the whole run,
// not an empty result.
func Scan(fsys afero.Fs, root string) ([]Candidate, error) {
	info, err := fsys.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("agents directory not found: %s", root)
	}
	if err != nil {
		return nil, fmt.Errorf("reading agents directory %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	entries, err := afero.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("reading agents directory %s: %w", root, err)
	}

	var candidates []Candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "__") || skipNames[name] {
			continue
		}
		candidates = append(candidates, Candidate{
			Name: name,
			Path: filepath.Join(root, name),
		})
	}

	// ReadDir already sorts by name; the sort is kept explicit because the
	// ordering is part of the contract.
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	return candidates, nil
}
