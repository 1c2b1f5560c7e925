package lexer

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/luthersystems/smodr/parser/token"
)

const operatorRunes = "=!<>+-*/"

// Error is a lexical error.  Lexing stops at the first Error.
type Error struct {
	Msg    string
	Source *token.Location
}

func (err *Error) Error() string {
	return fmt.Sprintf("%v: %s", err.Source, err.Msg)
}

// Line returns the line on which the error occurred.
func (err *Error) Line() int {
	if err.Source == nil {
		return 0
	}
	return err.Source.Line
}

// Col returns the column at which the error occurred.
func (err *Error) Col() int {
	if err.Source == nil {
		return 0
	}
	return err.Source.Col
}

type Lexer struct {
	scanner *token.Scanner
	ch      rune // current unicode rune

	// err is the first error encountered.  Once set, every call to NextToken
	// returns an ERROR token.
	err *Error
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
	}
	return lex
}

// Tokenize scans all of src and returns its tokens.  The final token in a
// successful result has type token.EOF.  Any lexical error is returned as an
// *Error.
func Tokenize(name string, src string) ([]*token.Token, error) {
	lex := New(token.NewScannerString(name, src))
	var toks []*token.Token
	for {
		tok := lex.NextToken()
		if tok.Type == token.ERROR {
			return nil, lex.Err()
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Err returns the error which stopped the lexer, if any.
func (lex *Lexer) Err() error {
	if lex.err == nil {
		return nil
	}
	return lex.err
}

func (lex *Lexer) NextToken() *token.Token {
	if lex.err != nil {
		return lex.errorToken()
	}
	err := lex.skipSpaceAndComments()
	if err == io.EOF {
		return lex.scanner.EmitToken(token.EOF)
	}
	if err != nil {
		return lex.fail(lex.scanner.LocNext(), err.Error())
	}
	if lex.readChar() != nil {
		return lex.fail(lex.scanner.LocStart(), "unexpected end of input")
	}
	switch lex.ch {
	case '(':
		return lex.charToken(token.PAREN_L)
	case ')':
		return lex.charToken(token.PAREN_R)
	case '{':
		return lex.charToken(token.BRACE_L)
	case '}':
		return lex.charToken(token.BRACE_R)
	case ',':
		return lex.charToken(token.COMMA)
	case '"', '\'':
		return lex.readString(lex.ch)
	}
	if isDigit(lex.ch) {
		return lex.readNumber()
	}
	if isWordStart(lex.ch) {
		return lex.readWord()
	}
	if strings.ContainsRune(operatorRunes, lex.ch) {
		return lex.readOperator()
	}
	return lex.fail(lex.scanner.LocStart(), fmt.Sprintf("unexpected character %q", lex.ch))
}

func (lex *Lexer) readString(quote rune) *token.Token {
	loc := lex.scanner.LocStart()
	for {
		c, ok := lex.scanner.Peek()
		if !ok || c == '\n' {
			return lex.fail(loc, "unterminated string literal")
		}
		if lex.readChar() != nil {
			return lex.fail(loc, "unterminated string literal")
		}
		if c == quote {
			return lex.scanner.EmitToken(token.STRING)
		}
	}
}

func (lex *Lexer) readNumber() *token.Token {
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.fail(lex.scanner.Loc(), err.Error())
		}
	}
	if lex.peekRune() != '.' {
		return lex.scanner.EmitToken(token.NUMBER)
	}
	if err := lex.readChar(); err != nil {
		return lex.fail(lex.scanner.Loc(), err.Error())
	}
	if !isDigit(lex.peekRune()) {
		return lex.fail(lex.scanner.LocStart(),
			fmt.Sprintf("invalid number literal: %s", lex.scanner.Text()))
	}
	for isDigit(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.fail(lex.scanner.Loc(), err.Error())
		}
	}
	return lex.scanner.EmitToken(token.NUMBER)
}

func (lex *Lexer) readWord() *token.Token {
	for isWord(lex.peekRune()) {
		if err := lex.readChar(); err != nil {
			return lex.fail(lex.scanner.Loc(), err.Error())
		}
	}
	if token.IsKeyword(lex.scanner.Text()) {
		return lex.scanner.EmitToken(token.KEYWORD)
	}
	return lex.scanner.EmitToken(token.IDENT)
}

func (lex *Lexer) readOperator() *token.Token {
	switch lex.ch {
	case '=', '!', '<', '>':
		if lex.peekRune() == '=' {
			if err := lex.readChar(); err != nil {
				return lex.fail(lex.scanner.Loc(), err.Error())
			}
			return lex.scanner.EmitToken(token.OPERATOR)
		}
		if lex.ch == '!' {
			return lex.fail(lex.scanner.LocStart(), fmt.Sprintf("unexpected character %q", lex.ch))
		}
	}
	return lex.scanner.EmitToken(token.OPERATOR)
}

func (lex *Lexer) fail(loc *token.Location, msg string) *token.Token {
	lex.err = &Error{Msg: msg, Source: loc}
	lex.scanner.Ignore()
	return lex.errorToken()
}

func (lex *Lexer) errorToken() *token.Token {
	return &token.Token{
		Type:   token.ERROR,
		Text:   lex.err.Msg,
		Source: lex.err.Source,
	}
}

func (lex *Lexer) charToken(typ token.Type) *token.Token {
	tok := lex.scanner.EmitToken(typ)
	return tok
}

// skipSpaceAndComments discards whitespace and comments preceding the next
// token.  A comment begins with '#' and extends to the end of the line.
func (lex *Lexer) skipSpaceAndComments() error {
	for {
		c, ok := lex.scanner.Peek()
		if !ok {
			lex.scanner.Ignore()
			return lex.scanner.ScanRune()
		}
		switch {
		case unicode.IsSpace(c):
			if err := lex.readChar(); err != nil {
				return err
			}
		case c == '#':
			for {
				c, ok := lex.scanner.Peek()
				if !ok || c == '\n' {
					break
				}
				if err := lex.readChar(); err != nil {
					return err
				}
			}
		default:
			lex.scanner.Ignore()
			return nil
		}
	}
}

func (lex *Lexer) peekRune() rune {
	r, _ := lex.scanner.Peek()
	return r
}

func (lex *Lexer) readChar() error {
	err := lex.scanner.ScanRune()
	if err != nil {
		return err
	}
	lex.ch = lex.scanner.Rune()
	return nil
}

func isWordStart(c rune) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWord(c rune) bool {
	return isWordStart(c) || isDigit(c)
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
