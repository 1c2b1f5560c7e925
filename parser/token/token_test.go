package token

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords(t *testing.T) {
	for _, kw := range []string{DEFINE, IF, THEN, ELSE, END, WHILE, DO, RETURN, RECURSE, MODIFY} {
		assert.True(t, IsKeyword(kw), kw)
		assert.False(t, IsStopWord(kw), kw)
	}
	for _, w := range StopWords {
		assert.True(t, IsKeyword(w), w)
		assert.True(t, IsStopWord(w), w)
	}
	assert.False(t, IsKeyword("define"))
	assert.False(t, IsKeyword("Stop"))
	assert.False(t, IsStopWord("x"))
	assert.Len(t, StopWords, 12)
}

func TestToken(t *testing.T) {
	str := &Token{Type: STRING, Text: `'a "b"'`}
	assert.Equal(t, `a "b"`, str.Literal())
	assert.Equal(t, `string 'a "b"'`, str.String())

	op := &Token{Type: OPERATOR, Text: "<="}
	assert.True(t, op.Is(OPERATOR))
	assert.True(t, op.Is(OPERATOR, "<", "<="))
	assert.False(t, op.Is(OPERATOR, "<"))
	assert.False(t, op.Is(IDENT))
	assert.Equal(t, "<=", op.Literal())
	assert.Equal(t, `"<="`, op.String())

	kw := &Token{Type: KEYWORD, Text: END}
	assert.True(t, kw.IsKeyword(IF, END))
	assert.False(t, kw.IsKeyword(ELSE))

	var missing *Token
	assert.False(t, missing.Is(EOF))

	assert.Equal(t, "end of input", (&Token{Type: EOF}).String())
	assert.Equal(t, "number 12.5", (&Token{Type: NUMBER, Text: "12.5"}).String())
}

func TestLocation(t *testing.T) {
	assert.Equal(t, "prog.smodr:3:7", (&Location{File: "prog.smodr", Line: 3, Col: 7}).String())
	assert.Equal(t, "<input>:1:1", (&Location{Line: 1, Col: 1}).String())
	assert.Equal(t, "f:2", (&Location{File: "f", Line: 2}).String())
	assert.Equal(t, "f[10]", (&Location{File: "f", Pos: 10}).String())
	var loc *Location
	assert.Equal(t, "<unknown>", loc.String())
}

func TestScanner(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab\ncd"))
	assert.Equal(t, "test", s.File())

	c, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'a', c)

	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	assert.Equal(t, 'b', s.Rune())
	assert.Equal(t, "ab", s.Text())
	assert.Equal(t, &Location{File: "test", Pos: 1, Line: 1, Col: 2}, s.Loc())

	tok := s.EmitToken(IDENT)
	assert.Equal(t, "ab", tok.Text)
	assert.Equal(t, &Location{File: "test", Pos: 0, Line: 1, Col: 1}, tok.Source)

	require.NoError(t, s.ScanRune())
	s.Ignore()
	assert.Equal(t, &Location{File: "test", Pos: 3, Line: 2, Col: 1}, s.LocStart())
	require.NoError(t, s.ScanRune())
	require.NoError(t, s.ScanRune())
	tok = s.EmitToken(IDENT)
	assert.Equal(t, "cd", tok.Text)
	assert.Equal(t, 2, tok.Source.Line)

	_, ok = s.Peek()
	assert.False(t, ok)
	assert.Equal(t, io.EOF, s.ScanRune())
}

func TestScanner_invalidUTF8(t *testing.T) {
	s := NewScannerString("test", "a\xff")
	require.NoError(t, s.ScanRune())
	_, ok := s.Peek()
	assert.False(t, ok)
	err := s.ScanRune()
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "invalid utf-8")
	}
}

func TestScanner_intern(t *testing.T) {
	s := NewScannerString("test", "xx")
	require.NoError(t, s.ScanRune())
	a := s.EmitToken(IDENT)
	require.NoError(t, s.ScanRune())
	b := s.EmitToken(IDENT)
	assert.Equal(t, "x", a.Text)
	assert.Equal(t, 1, s.names.Len())
	assert.Equal(t, a.Text, b.Text)
}
