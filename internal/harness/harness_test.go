package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdata(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", name+".yaml"))
	require.NoError(t, err)
	return s
}

func TestScenarios(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "scenarios", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRunRecordsSchemaError(t *testing.T) {
	result, err := Run(loadTestdata(t, "optional_simple_sum"))
	require.NoError(t, err)

	assert.True(t, result.Pass)
	assert.Equal(t, "E203", result.ErrorCode)
	assert.Contains(t, result.SchemaError, "2:6: E203: field status")
	assert.Empty(t, result.Outputs)
	assert.Nil(t, result.Module)
}

func TestRunWrongExpectedError(t *testing.T) {
	s := &Scenario{
		Name:        "wrong",
		Description: "d",
		Schema:      "module m { t = (int) }",
		Action:      ActionCheck,
		Expect:      &ExpectClause{Error: "E201"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "expected error E201, got E102")
}

func TestRunWrongErrorPosition(t *testing.T) {
	s := &Scenario{
		Name:        "pos",
		Description: "d",
		Schema:      "module m { t = (int) }",
		Action:      ActionCheck,
		Expect:      &ExpectClause{Error: "E102", Line: 1, Column: 3},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected error at 1:3, got 1:20")
}

func TestRunLexError(t *testing.T) {
	s := &Scenario{
		Name:        "lex",
		Description: "d",
		Schema:      "module m { t = (int $x) }",
		Action:      ActionCheck,
		Expect:      &ExpectClause{Error: "E010", Line: 1, Column: 21},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunExpectedErrorButResolved(t *testing.T) {
	s := &Scenario{
		Name:        "fine",
		Description: "d",
		Schema:      "module m { p = (int x) }",
		Action:      ActionCheck,
		Expect:      &ExpectClause{Error: "E102"},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected error E102, but schema m resolved")
}

func TestRunUnexpectedSchemaError(t *testing.T) {
	s := &Scenario{
		Name:        "bad",
		Description: "d",
		Schema:      "module m { p = (nope x) }",
		Action:      ActionCheck,
		Assertions:  []Assertion{{Type: AssertDeclKind, Decl: "p", Kind: "product"}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "unexpected schema error")
	assert.Equal(t, "E201", result.ErrorCode)
}

func TestRunUnitsPerAction(t *testing.T) {
	schema := "module m { color = Red | Green\n p = (color c) }"
	off := false

	tests := []struct {
		action string
		opts   *Options
		units  []string
	}{
		{ActionStaticTarget, nil, []string{UnitDefinitions, UnitDebug, UnitHeader}},
		{ActionStaticTarget, &Options{PrettyPrint: &off}, []string{UnitDebug, UnitHeader}},
		{ActionDynamicTarget, nil, []string{UnitPython}},
		{ActionEnumExport, nil, []string{UnitEnums}},
		{ActionCheck, nil, []string{UnitSummary}},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			s := &Scenario{
				Name:        "units",
				Description: "d",
				Schema:      schema,
				Action:      tt.action,
				Options:     tt.opts,
				Assertions:  []Assertion{{Type: AssertDeclKind, Decl: "color", Kind: "simple_sum"}},
			}
			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Equal(t, tt.units, result.Units())
		})
	}
}

func TestRunFileNameSelectsAppTypes(t *testing.T) {
	s := &Scenario{
		Name:        "tokens",
		Description: "d",
		Schema:      "module syntax { token = (id id, string val) }",
		FileName:    "syntax.asdl",
		Action:      ActionStaticTarget,
		Assertions: []Assertion{
			{Type: AssertOutputContains, Unit: UnitHeader, Text: "#ifndef SYNTAX_ASDL"},
			{Type: AssertOutputContains, Unit: UnitHeader, Text: "id_kind_asdl::Id_t id;"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	s.FileName = "other.asdl"
	result, err = Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Equal(t, "E201", result.ErrorCode)
}

func TestRunCompanionSplice(t *testing.T) {
	s := &Scenario{
		Name:        "abbrev",
		Description: "d",
		Schema:      "module m { p = (int x) }",
		Action:      ActionDynamicTarget,
		Companion:   "def _p(obj):\n  return None\n",
		Assertions: []Assertion{
			{Type: AssertOutputContains, Unit: UnitPython, Text: "p = _p(self)"},
			{Type: AssertOutputContains, Unit: UnitPython, Text: "# CONCATENATED FILE"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRunMissingSchemaFile(t *testing.T) {
	s := &Scenario{Name: "x", Description: "d", SchemaFile: filepath.Join(t.TempDir(), "gone.asdl"), Action: ActionCheck}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read schema file")
}
