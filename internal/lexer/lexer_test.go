package lexer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenizeModule(t *testing.T) {
	tokens, err := Tokenize(`module m { t = (int? x, string* y) }`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		MODULE, IDENT, LBRACE,
		IDENT, EQUALS, LPAREN,
		IDENT, QUESTION, IDENT, COMMA,
		IDENT, STAR, IDENT,
		RPAREN, RBRACE, EOF,
	}, kinds(tokens))
	assert.Equal(t, "m", tokens[1].Text)
}

func TestTokenizeKeywords(t *testing.T) {
	tokens, err := Tokenize(`use generate module modules`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{USE, GENERATE, MODULE, IDENT, EOF}, kinds(tokens))
	assert.True(t, tokens[0].Kind.IsKeyword())
	assert.False(t, tokens[3].Kind.IsKeyword())
}

func TestTokenizeAllPunctuation(t *testing.T) {
	tokens, err := Tokenize(`{}()[],|=?*%;`)
	require.NoError(t, err)

	assert.Equal(t, []Kind{
		LBRACE, RBRACE, LPAREN, RPAREN, LBRACKET, RBRACKET,
		COMMA, PIPE, EQUALS, QUESTION, STAR, PERCENT, SEMICOLON, EOF,
	}, kinds(tokens))
}

func TestTokenizeSkipsComments(t *testing.T) {
	src := "-- leading comment\nmodule m { -- trailing\n}\n-- last line without newline"
	tokens, err := Tokenize(src)
	require.NoError(t, err)

	assert.Equal(t, []Kind{MODULE, IDENT, LBRACE, RBRACE, EOF}, kinds(tokens))
}

func TestTokenPositions(t *testing.T) {
	src := "module m {\n  point = (int x)\n}"
	tokens, err := Tokenize(src)
	require.NoError(t, err)

	assert.Equal(t, Pos{Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Pos{Line: 1, Column: 8}, tokens[1].Pos)
	// "point" starts the second line after two spaces.
	assert.Equal(t, "point", tokens[3].Text)
	assert.Equal(t, Pos{Line: 2, Column: 3}, tokens[3].Pos)
	assert.Equal(t, Pos{Line: 3, Column: 1}, tokens[len(tokens)-2].Pos)
}

func TestTokenizeIdentifiers(t *testing.T) {
	tokens, err := Tokenize(`_private Id_t uint16 CamelCase`)
	require.NoError(t, err)

	texts := []string{}
	for _, tok := range tokens[:len(tokens)-1] {
		assert.Equal(t, IDENT, tok.Kind)
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"_private", "Id_t", "uint16", "CamelCase"}, texts)
}

func TestLexErrorUnexpectedCharacter(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		char   rune
		line   int
		column int
	}{
		{"colon", "module foo { simple: integers = A | B }", ':', 1, 20},
		{"single dash", "module m {\n  - }", '-', 2, 3},
		{"digit start", "module m { 9lives = (int x) }", '9', 1, 12},
		{"non ascii", "module m { \u00e9 }", '\u00e9', 1, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.src)
			require.Error(t, err)
			assert.Nil(t, tokens)

			var lexErr *LexError
			require.True(t, errors.As(err, &lexErr))
			assert.Equal(t, tt.char, lexErr.Char)
			assert.Equal(t, tt.line, lexErr.Line)
			assert.Equal(t, tt.column, lexErr.Column)
			assert.Contains(t, err.Error(), ErrCodeUnexpectedChar)
		})
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	src := "module m { color = Red | Green generate [integers] }"

	first, err := Tokenize(src)
	require.NoError(t, err)
	second, err := Tokenize(src)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNextAfterEOFKeepsReturningEOF(t *testing.T) {
	l := New("")
	for i := 0; i < 3; i++ {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, EOF, tok.Kind)
	}
}
