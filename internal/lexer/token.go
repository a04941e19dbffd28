package lexer

import "fmt"

// Kind identifies the category of a token.
type Kind int

const (
	EOF Kind = iota

	IDENT

	// Keywords
	MODULE
	USE
	GENERATE

	// Punctuation
	LBRACE    // {
	RBRACE    // }
	LPAREN    // (
	RPAREN    // )
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	PIPE      // |
	EQUALS    // =
	QUESTION  // ?
	STAR      // *
	PERCENT   // %
	SEMICOLON // ;
)

var kindNames = map[Kind]string{
	EOF:       "EOF",
	IDENT:     "IDENT",
	MODULE:    "module",
	USE:       "use",
	GENERATE:  "generate",
	LBRACE:    "{",
	RBRACE:    "}",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	PIPE:      "|",
	EQUALS:    "=",
	QUESTION:  "?",
	STAR:      "*",
	PERCENT:   "%",
	SEMICOLON: ";",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k == MODULE || k == USE || k == GENERATE
}

var keywords = map[string]Kind{
	"module":   MODULE,
	"use":      USE,
	"generate": GENERATE,
}

// Pos is a 1-based source location. The zero Pos is "unknown".
type Pos struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid reports whether the position refers to real source text.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical atom.
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	switch t.Kind {
	case IDENT:
		return fmt.Sprintf("%q", t.Text)
	case EOF:
		return "end of input"
	default:
		return fmt.Sprintf("'%s'", t.Kind)
	}
}
