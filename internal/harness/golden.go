package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders a result as deterministic text: each unit in sorted
// order under a "=== unit ===" header, or a single "=== error ==="
// section when the schema was rejected.
func Snapshot(result *Result) []byte {
	var b strings.Builder

	if result.SchemaError != "" {
		b.WriteString("=== error ===\n")
		b.WriteString(result.SchemaError)
		b.WriteString("\n")
		return []byte(b.String())
	}

	for _, unit := range result.Units() {
		text := result.Outputs[unit]
		b.WriteString("=== " + unit + " ===\n")
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteString("\n")
		}
	}

	return []byte(b.String())
}

// RunWithGolden executes a scenario and compares its snapshot with a
// golden file.
//
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares the snapshot of an existing result against a
// golden file without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, Snapshot(result))
}
