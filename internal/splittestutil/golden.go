package splittestutil

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"
	"testing"

	"splitc/internal/splitoutput"
)

// updateGolden controls whether golden files should be updated.
// Use: go test ./... -run TestBucketRenderingMatchesGolden -update
var updateGolden = flag.Bool("update", false, "update golden files")

// ShouldUpdate returns true if golden files should be written instead of
// compared against.
func ShouldUpdate() bool {
	return *updateGolden
}

// CompareGolden deterministically encodes got and compares it against the
// golden file name within fixture, failing with a diff on mismatch. With
// -update, it writes got in place of comparing.
func CompareGolden(t *testing.T, fixture *Fixture, name string, got any) {
	t.Helper()

	encoded, err := splitoutput.DeterministicEncodeIndented(got, "  ")
	if err != nil {
		t.Fatalf("failed to encode golden data: %v", err)
	}

	goldenPath := fixture.ExpectedPath(name)

	if *updateGolden {
		if err := os.MkdirAll(fixture.ExpectedDir, 0o755); err != nil {
			t.Fatalf("failed to create expected dir: %v", err)
		}
		if err := os.WriteFile(goldenPath, encoded, 0o644); err != nil {
			t.Fatalf("failed to write golden file: %v", err)
		}
		t.Logf("updated golden: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("golden file missing: %s\n\ngot:\n%s\n\nrun with -update to create:\n  go test ./... -run %s -update",
				goldenPath, string(encoded), t.Name())
		}
		t.Fatalf("failed to read golden file: %v", err)
	}

	if !bytes.Equal(encoded, expected) {
		t.Fatalf("golden mismatch for %s:\n%s\n\nrun with -update to refresh:\n  go test ./... -run %s -update",
			name, unifiedDiff(string(expected), string(encoded), goldenPath), t.Name())
	}
}

func unifiedDiff(expected, got, path string) string {
	var buf bytes.Buffer
	expLines := strings.Split(expected, "\n")
	gotLines := strings.Split(got, "\n")
	fmt.Fprintf(&buf, "--- %s (expected)\n+++ %s (got)\n", path, path)
	max := len(expLines)
	if len(gotLines) > max {
		max = len(gotLines)
	}
	for i := 0; i < max; i++ {
		var e, g string
		if i < len(expLines) {
			e = expLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if e != g {
			fmt.Fprintf(&buf, "-%s\n+%s\n", e, g)
		}
	}
	return buf.String()
}
