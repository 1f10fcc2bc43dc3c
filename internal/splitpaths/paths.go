// Package splitpaths derives a source file's stem and lists the sibling
// filenames already present in its directory, the inputs Build needs to
// plan collision-free bucket names.
package splitpaths

import (
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file stem Build uses to name siblings: the filename
// without its extension. "src/lib.rs" -> "lib".
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ExistingNames lists the stems of every .rs file already present in dir,
// excluding path itself, for Build's collision-avoidance pass.
func ExistingNames(dir string, exclude string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	excludeBase := filepath.Base(exclude)
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == excludeBase {
			continue
		}
		if filepath.Ext(name) != ".rs" {
			continue
		}
		names = append(names, Stem(name))
	}
	return names, nil
}

// NormalizePath converts path to forward slashes for platform-independent
// comparisons and module declarations.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}
