package lexer

import (
	"errors"
	"testing"

	"github.com/luthersystems/smodr/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lexTok struct {
	typ  token.Type
	text string
}

func lexTokens(t *testing.T, src string) []lexTok {
	t.Helper()
	toks, err := Tokenize("test", src)
	require.NoError(t, err)
	var out []lexTok
	for _, tok := range toks {
		out = append(out, lexTok{tok.Type, tok.Text})
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []lexTok
	}{
		{"empty", "", []lexTok{{token.EOF, ""}}},
		{"comment only", "# nothing here\n   # or here", []lexTok{{token.EOF, ""}}},
		{"assignment", "x = 1", []lexTok{
			{token.IDENT, "x"},
			{token.OPERATOR, "="},
			{token.NUMBER, "1"},
			{token.EOF, ""},
		}},
		{"operators", "== != <= >= < > + - * / =", []lexTok{
			{token.OPERATOR, "=="},
			{token.OPERATOR, "!="},
			{token.OPERATOR, "<="},
			{token.OPERATOR, ">="},
			{token.OPERATOR, "<"},
			{token.OPERATOR, ">"},
			{token.OPERATOR, "+"},
			{token.OPERATOR, "-"},
			{token.OPERATOR, "*"},
			{token.OPERATOR, "/"},
			{token.OPERATOR, "="},
			{token.EOF, ""},
		}},
		{"punctuation", "f(a, b) { }", []lexTok{
			{token.IDENT, "f"},
			{token.PAREN_L, "("},
			{token.IDENT, "a"},
			{token.COMMA, ","},
			{token.IDENT, "b"},
			{token.PAREN_R, ")"},
			{token.BRACE_L, "{"},
			{token.BRACE_R, "}"},
			{token.EOF, ""},
		}},
		{"numbers", "12 3.25 007", []lexTok{
			{token.NUMBER, "12"},
			{token.NUMBER, "3.25"},
			{token.NUMBER, "007"},
			{token.EOF, ""},
		}},
		{"no signed literals", "-5", []lexTok{
			{token.OPERATOR, "-"},
			{token.NUMBER, "5"},
			{token.EOF, ""},
		}},
		{"strings", `'a "b"' "c 'd'" '# kept'`, []lexTok{
			{token.STRING, `'a "b"'`},
			{token.STRING, `"c 'd'"`},
			{token.STRING, `'# kept'`},
			{token.EOF, ""},
		}},
		{"no escapes", `'a\'`, []lexTok{
			{token.STRING, `'a\'`},
			{token.EOF, ""},
		}},
		{"keywords", "DEFINE f_1 IF THEN ELSE END WHILE DO RETURN RECURSE MODIFY", []lexTok{
			{token.KEYWORD, "DEFINE"},
			{token.IDENT, "f_1"},
			{token.KEYWORD, "IF"},
			{token.KEYWORD, "THEN"},
			{token.KEYWORD, "ELSE"},
			{token.KEYWORD, "END"},
			{token.KEYWORD, "WHILE"},
			{token.KEYWORD, "DO"},
			{token.KEYWORD, "RETURN"},
			{token.KEYWORD, "RECURSE"},
			{token.KEYWORD, "MODIFY"},
			{token.EOF, ""},
		}},
		{"stop words", "STOP WORDS OBEY Stop _STOP STOPPED", []lexTok{
			{token.KEYWORD, "STOP"},
			{token.KEYWORD, "WORDS"},
			{token.KEYWORD, "OBEY"},
			{token.IDENT, "Stop"},
			{token.IDENT, "_STOP"},
			{token.IDENT, "STOPPED"},
			{token.EOF, ""},
		}},
		{"trailing comment", "x # the value\ny", []lexTok{
			{token.IDENT, "x"},
			{token.IDENT, "y"},
			{token.EOF, ""},
		}},
		{"adjacent", "a=b+1", []lexTok{
			{token.IDENT, "a"},
			{token.OPERATOR, "="},
			{token.IDENT, "b"},
			{token.OPERATOR, "+"},
			{token.NUMBER, "1"},
			{token.EOF, ""},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.tokens, lexTokens(t, test.src))
		})
	}
}

func TestTokenize_locations(t *testing.T) {
	toks, err := Tokenize("test", "x = 1\n  y")
	require.NoError(t, err)
	require.Len(t, toks, 5)
	assert.Equal(t, "test:1:1", toks[0].Source.String())
	assert.Equal(t, "test:1:3", toks[1].Source.String())
	assert.Equal(t, "test:1:5", toks[2].Source.String())
	assert.Equal(t, "test:2:3", toks[3].Source.String())
}

func TestTokenize_errors(t *testing.T) {
	tests := []struct {
		src  string
		msg  string
		line int
		col  int
	}{
		{`x = 'abc`, "unterminated string literal", 1, 5},
		{"x = \"abc\ny\"", "unterminated string literal", 1, 5},
		{`'abc"`, "unterminated string literal", 1, 1},
		{"x = 1\n  @", "unexpected character '@'", 2, 3},
		{"!x", "unexpected character '!'", 1, 1},
		{"x = 5.", "invalid number literal: 5.", 1, 5},
		{"x = 5.a", "invalid number literal: 5.", 1, 5},
	}
	for _, test := range tests {
		toks, err := Tokenize("test", test.src)
		assert.Nil(t, toks, test.src)
		var lerr *Error
		if assert.True(t, errors.As(err, &lerr), test.src) {
			assert.Equal(t, test.msg, lerr.Msg, test.src)
			assert.Equal(t, test.line, lerr.Line(), test.src)
			assert.Equal(t, test.col, lerr.Col(), test.src)
		}
	}
}

func TestLexer_errorIsSticky(t *testing.T) {
	lex := New(token.NewScannerString("test", "a $ b"))
	assert.Equal(t, token.IDENT, lex.NextToken().Type)
	assert.NoError(t, lex.Err())
	assert.Equal(t, token.ERROR, lex.NextToken().Type)
	assert.Equal(t, token.ERROR, lex.NextToken().Type)
	if assert.Error(t, lex.Err()) {
		assert.Equal(t, "test:1:3: unexpected character '$'", lex.Err().Error())
	}
}
