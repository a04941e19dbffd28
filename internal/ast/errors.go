package ast

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/roach88/asdlc/internal/lexer"
)

// Parse error codes (E101-E199).
const (
	ErrUnexpectedToken = "E101" // token does not fit the grammar here
	ErrFieldNeedsName  = "E102" // field written without a name
	ErrBadTypeBrackets = "E103" // [] on a non-parametric name, or parametric name without []
	ErrBadArity        = "E104" // wrong number of type arguments
	ErrBadGenerate     = "E105" // empty, malformed or unknown generate hint
)

// Resolution error codes (E201-E299).
const (
	ErrUnresolvedName    = "E201" // name is not declared, used, or builtin
	ErrOptionalInteger   = "E202" // Optional over an integer type
	ErrOptionalSimpleSum = "E203" // Optional over a simple sum type
	ErrDuplicateDecl     = "E204" // type declared twice
	ErrDuplicateVariant  = "E205" // constructor declared twice in one sum
	ErrDuplicateField    = "E206" // field declared twice in one constructor
	ErrBadSharedVariant  = "E207" // %name does not reference a usable product
	ErrGenerateNotSimple = "E208" // generate [...] on a product or compound sum
	ErrBadDictKey        = "E209" // Dict key is not string or integer
	ErrTooManyVariants   = "E210" // regular tags would collide with shared tags
	ErrNameConflict      = "E211" // declaration shadows a builtin or imported name
)

// SyntaxError is the single error type for grammar violations and for
// semantic-legality violations found during resolution. Either way the
// whole file is rejected and no output is produced.
type SyntaxError struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Pos     lexer.Pos `json:"pos"`
	Decl    string    `json:"decl,omitempty"` // containing declaration, if any
}

func (e *SyntaxError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Errorf builds a SyntaxError at pos.
func Errorf(code string, pos lexer.Pos, format string, args ...any) *SyntaxError {
	return &SyntaxError{Code: code, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// InDecl records the declaration the error was found in.
func (e *SyntaxError) InDecl(name string) *SyntaxError {
	e.Decl = name
	return e
}

// Code extracts the diagnostic code from a front-end error. It returns ""
// for errors that did not come from the lexer, parser or resolver.
func Code(err error) string {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Code
	}
	var le *lexer.LexError
	if errors.As(err, &le) {
		return lexer.ErrCodeUnexpectedChar
	}
	return ""
}

// Position extracts the source location from a front-end error.
func Position(err error) (lexer.Pos, bool) {
	var se *SyntaxError
	if errors.As(err, &se) {
		return se.Pos, se.Pos.IsValid()
	}
	var le *lexer.LexError
	if errors.As(err, &le) {
		return le.Pos(), true
	}
	return lexer.Pos{}, false
}
