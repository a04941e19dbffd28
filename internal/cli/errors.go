package cli

import (
	"fmt"

	"github.com/roach88/asdlc/internal/ast"
)

// Invocation and I/O error codes (E001-E009). Schema errors carry the
// lexer, parser or resolver code instead (E010, E1xx, E2xx).
const (
	ErrCodeGeneric   = "E001" // unclassified failure
	ErrCodeUsage     = "E002" // bad arguments or flags
	ErrCodeConfig    = "E003" // config file or option error
	ErrCodeRead      = "E004" // schema could not be read
	ErrCodeNotFound  = "E005" // schema file or directory does not exist
	ErrCodeCompanion = "E006" // companion module could not be loaded
	ErrCodeWrite     = "E007" // output file could not be written
)

// SchemaError attaches the schema path to a lex, parse or resolve error.
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if _, ok := ast.Position(e.Err); ok {
		return fmt.Sprintf("%s:%v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
