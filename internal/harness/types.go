package harness

import (
	"sort"

	"github.com/roach88/asdlc/internal/ir"
)

// Output unit names. Each names one generated artifact.
const (
	UnitHeader      = "h"
	UnitDefinitions = "cc"
	UnitDebug       = "debug"
	UnitPython      = "py"
	UnitEnums       = "enums"
	UnitSummary     = "summary"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if the expect clause and every assertion hold.
	Pass bool `json:"pass"`

	// Outputs maps unit names to generated text.
	// Empty when the schema was rejected.
	Outputs map[string]string `json:"outputs,omitempty"`

	// SchemaError is the lex, parse or resolve failure, if any.
	SchemaError string `json:"schema_error,omitempty"`

	// ErrorCode is the diagnostic code of SchemaError.
	ErrorCode string `json:"error_code,omitempty"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Module is the resolved schema, nil on schema error.
	Module *ir.Module `json:"-"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Outputs: make(map[string]string),
		Errors:  []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddOutput records the text of one generated unit.
func (r *Result) AddOutput(unit, text string) {
	r.Outputs[unit] = text
}

// Units returns the recorded unit names in sorted order.
func (r *Result) Units() []string {
	units := make([]string, 0, len(r.Outputs))
	for u := range r.Outputs {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}
