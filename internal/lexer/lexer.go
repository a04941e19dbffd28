// Package lexer tokenizes ASDL schema text.
//
// Lexing is all-or-nothing: the first unrecognized character aborts the
// whole file with a *LexError. Whitespace and "--" line comments are
// skipped and never reach the parser.
package lexer

import (
	"fmt"
	"unicode/utf8"
)

// ErrCodeUnexpectedChar is the diagnostic code carried by every LexError.
const ErrCodeUnexpectedChar = "E010"

// LexError reports a character the lexer does not recognize.
type LexError struct {
	Line   int  `json:"line"`
	Column int  `json:"column"`
	Char   rune `json:"char"`
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d:%d: %s: unexpected character %q", e.Line, e.Column, ErrCodeUnexpectedChar, e.Char)
}

// Pos returns the location of the offending character.
func (e *LexError) Pos() Pos {
	return Pos{Line: e.Line, Column: e.Column}
}

// Lexer scans schema source and produces tokens
type Lexer struct {
	src    string
	offset int
	line   int
	column int
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize scans the whole input. The returned slice always ends with an
// EOF token. A fresh Lexer over the same text yields the same sequence.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

var punctuation = map[byte]Kind{
	'{': LBRACE,
	'}': RBRACE,
	'(': LPAREN,
	')': RPAREN,
	'[': LBRACKET,
	']': RBRACKET,
	',': COMMA,
	'|': PIPE,
	'=': EQUALS,
	'?': QUESTION,
	'*': STAR,
	'%': PERCENT,
	';': SEMICOLON,
}

// Next returns the next token, or EOF once the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	l.skipSpaceAndComments()

	pos := Pos{Line: l.line, Column: l.column}
	if l.offset >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}, nil
	}

	c := l.src[l.offset]
	if kind, ok := punctuation[c]; ok {
		l.advance(1)
		return Token{Kind: kind, Text: string(c), Pos: pos}, nil
	}

	if isIdentStart(c) {
		start := l.offset
		for l.offset < len(l.src) && isIdentPart(l.src[l.offset]) {
			l.advance(1)
		}
		text := l.src[start:l.offset]
		if kw, ok := keywords[text]; ok {
			return Token{Kind: kw, Text: text, Pos: pos}, nil
		}
		return Token{Kind: IDENT, Text: text, Pos: pos}, nil
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	return Token{}, &LexError{Line: pos.Line, Column: pos.Column, Char: r}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.offset < len(l.src) {
		c := l.src[l.offset]
		switch {
		case c == '\n':
			l.offset++
			l.line++
			l.column = 1
		case c == ' ' || c == '\t' || c == '\r':
			l.advance(1)
		case c == '-' && l.offset+1 < len(l.src) && l.src[l.offset+1] == '-':
			for l.offset < len(l.src) && l.src[l.offset] != '\n' {
				l.advance(1)
			}
		default:
			return
		}
	}
}

func (l *Lexer) advance(n int) {
	l.offset += n
	l.column += n
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
