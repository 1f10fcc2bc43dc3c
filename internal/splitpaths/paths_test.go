package splitpaths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStem(t *testing.T) {
	assert.Equal(t, "lib", Stem("src/lib.rs"))
	assert.Equal(t, "main", Stem("main.rs"))
	assert.Equal(t, "mod", Stem("mod.rs"))
}

func TestExistingNamesExcludesSelfAndNonRust(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"main.rs", "types.rs", "helpers.rs", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte(""), 0644))
	}

	names, err := ExistingNames(dir, filepath.Join(dir, "main.rs"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"types", "helpers"}, names)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "a/b/c.rs", NormalizePath(filepath.FromSlash("a/b/c.rs")))
}
