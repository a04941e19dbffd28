package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoldenScenarios(t *testing.T) {
	for _, name := range []string{"demo_static", "demo_dynamic", "token_enums", "field_needs_name"} {
		t.Run(name, func(t *testing.T) {
			result, err := RunWithGolden(t, loadTestdata(t, name))
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot(t *testing.T) {
	r := NewResult()
	r.AddOutput("py", "x = 1")
	r.AddOutput("enums", "#define a__B 0\n")

	assert.Equal(t, "=== enums ===\n#define a__B 0\n=== py ===\nx = 1\n", string(Snapshot(r)))

	r.SchemaError = "1:1: E101: expected module"
	assert.Equal(t, "=== error ===\n1:1: E101: expected module\n", string(Snapshot(r)))
}

func TestAssertGoldenReusesResult(t *testing.T) {
	result, err := Run(loadTestdata(t, "token_enums"))
	require.NoError(t, err)
	AssertGolden(t, "token_enums", result)
}
