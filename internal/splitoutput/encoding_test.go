package splitoutput

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicEncodeSortsKeysAndDropsEmpty(t *testing.T) {
	r := Report{
		Stem:  "main",
		Files: []FileOutput{{Filename: "main.rs", Content: "shim"}},
	}

	got, err := DeterministicEncode(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"files":[{"filename":"main.rs","content":"shim"}],"stem":"main"}`, string(got))
}

func TestDeterministicEncodeIsStableAcrossCalls(t *testing.T) {
	r := Report{
		Stem: "main",
		Diagnostics: []Diagnostic{
			{Code: "PLAN_COLLISION", Severity: SeverityWarning, Message: "renamed", ItemName: "types_1"},
		},
	}

	a, err := DeterministicEncode(r)
	require.NoError(t, err)
	b, err := DeterministicEncode(r)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
