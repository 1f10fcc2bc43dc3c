// Package splittestutil provides the golden-fixture harness the splitcore
// and splitemit tests drive end-to-end scenarios through.
package splittestutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Fixture is one scenario under testdata/fixtures: a single source file plus
// its expected/ directory of golden outputs.
type Fixture struct {
	Name        string
	Root        string
	SourcePath  string
	ExpectedDir string
}

// LoadFixture loads the named scenario, failing the test if its source file
// is missing.
func LoadFixture(t *testing.T, name string) *Fixture {
	t.Helper()

	root := filepath.Join(fixturesRoot(t), name)
	sourcePath := filepath.Join(root, "main.rs")
	if _, err := os.Stat(sourcePath); os.IsNotExist(err) {
		t.Fatalf("fixture source not found: %s", sourcePath)
	}

	expectedDir := filepath.Join(root, "expected")
	if _, err := os.Stat(expectedDir); os.IsNotExist(err) {
		if err := os.MkdirAll(expectedDir, 0o755); err != nil {
			t.Fatalf("failed to create expected dir: %v", err)
		}
	}

	return &Fixture{Name: name, Root: root, SourcePath: sourcePath, ExpectedDir: expectedDir}
}

// Source reads the fixture's source file.
func (f *Fixture) Source(t *testing.T) []byte {
	t.Helper()
	b, err := os.ReadFile(f.SourcePath)
	if err != nil {
		t.Fatalf("failed to read fixture source: %v", err)
	}
	return b
}

// ExpectedPath returns the golden file path for name within this fixture.
func (f *Fixture) ExpectedPath(name string) string {
	return filepath.Join(f.ExpectedDir, name+".json")
}

func fixturesRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to get caller information")
	}
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(thisFile)))
	root := filepath.Join(projectRoot, "testdata", "fixtures")
	if _, err := os.Stat(root); os.IsNotExist(err) {
		t.Fatalf("fixtures root not found: %s", root)
	}
	return root
}
