package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/roach88/asdlc/internal/ast"
	"github.com/roach88/asdlc/internal/compiler"
	"github.com/roach88/asdlc/internal/config"
	"github.com/roach88/asdlc/internal/cppgen"
	"github.com/roach88/asdlc/internal/ir"
	"github.com/roach88/asdlc/internal/pygen"
)

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Read the schema source
// 2. Parse and resolve it with the application types of its file name
// 3. Check the expected diagnostic, or run the action
// 4. Evaluate assertions against the generated units
//
// The returned error is reserved for problems with the scenario itself,
// such as an unreadable schema file. Compiler behavior that differs from
// the scenario is reported through Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	src := scenario.Schema
	if scenario.SchemaFile != "" {
		data, err := os.ReadFile(scenario.SchemaFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
		src = string(data)
	}

	fileName := scenario.SchemaFileName()
	result := NewResult()

	mod, err := compiler.LoadSchema(strings.NewReader(src), config.AppTypesFor(fileName))
	if err != nil {
		code := ast.Code(err)
		if code == "" {
			return nil, fmt.Errorf("failed to load schema: %w", err)
		}
		result.SchemaError = err.Error()
		result.ErrorCode = code
		checkExpectedError(result, scenario.Expect, err)
		return result, nil
	}
	result.Module = mod

	if scenario.Expect != nil {
		result.AddError(fmt.Sprintf("expected error %s, but schema %s resolved", scenario.Expect.Error, mod.Name))
		return result, nil
	}

	if err := generate(result, scenario, mod, fileName); err != nil {
		return nil, err
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// checkExpectedError compares a schema error against the expect clause.
func checkExpectedError(result *Result, expect *ExpectClause, err error) {
	if expect == nil {
		result.AddError(fmt.Sprintf("unexpected schema error: %v", err))
		return
	}
	if result.ErrorCode != expect.Error {
		result.AddError(fmt.Sprintf("expected error %s, got %s (%v)", expect.Error, result.ErrorCode, err))
		return
	}
	if expect.Line == 0 && expect.Column == 0 {
		return
	}
	pos, ok := ast.Position(err)
	if !ok {
		result.AddError(fmt.Sprintf("expected error at %d:%d, error has no position", expect.Line, expect.Column))
		return
	}
	if (expect.Line != 0 && pos.Line != expect.Line) || (expect.Column != 0 && pos.Column != expect.Column) {
		result.AddError(fmt.Sprintf("expected error at %d:%d, got %s", expect.Line, expect.Column, pos))
	}
}

// generate runs the scenario's action and records every unit it produces.
func generate(result *Result, scenario *Scenario, mod *ir.Module, fileName string) error {
	var opts Options
	if scenario.Options != nil {
		opts = *scenario.Options
	}
	pretty, zero, n := enabled(opts.PrettyPrint), enabled(opts.InitZero), enabled(opts.InitN)
	ns := config.NamespaceFor(fileName)

	switch scenario.Action {
	case ActionStaticTarget:
		cppOpts := cppgen.Options{PrettyPrint: pretty, InitZero: zero, InitN: n}
		prefix := "_gen/" + fileName
		result.AddOutput(UnitHeader, cppgen.Header(mod, ns, prefix, cppOpts))
		if pretty {
			result.AddOutput(UnitDefinitions, cppgen.Definitions(mod, ns, prefix, cppOpts))
		}
		var buf bytes.Buffer
		if err := cppgen.WriteDebugInfo(&buf, ns, cppgen.DebugTable(mod, ns), false); err != nil {
			return fmt.Errorf("failed to write debug info: %w", err)
		}
		result.AddOutput(UnitDebug, buf.String())

	case ActionDynamicTarget:
		pyOpts := pygen.Options{PrettyPrint: pretty, InitZero: zero, InitN: n}
		if scenario.Companion != "" {
			pyOpts.Abbrev = pygen.NewCompanion(scenario.Name, "", scenario.Companion)
		}
		result.AddOutput(UnitPython, pygen.Generate(mod, pyOpts))

	case ActionEnumExport:
		result.AddOutput(UnitEnums, cppgen.EnumExport(mod))

	case ActionCheck:
		summary, err := ir.Summarize(mod)
		if err != nil {
			return fmt.Errorf("failed to summarize module: %w", err)
		}
		result.AddOutput(UnitSummary, summary.String()+"\n")

	default:
		return fmt.Errorf("unknown action %q", scenario.Action)
	}

	return nil
}
