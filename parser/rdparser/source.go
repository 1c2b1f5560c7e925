package rdparser

import (
	"github.com/luthersystems/smodr/parser/lexer"
	"github.com/luthersystems/smodr/parser/token"
)

// TokenSource is a pull-style token stream with one token of lookahead.
type TokenSource struct {
	lex   *lexer.Lexer
	Token *token.Token
	Peek  *token.Token
}

// NewTokenSource initializes and returns a new TokenSource that scans tokens
// from scanner.
func NewTokenSource(scanner *token.Scanner) *TokenSource {
	lex := lexer.New(scanner)
	s := &TokenSource{
		lex: lex,
	}
	s.scan()
	return s
}

// AcceptType scans the next token if it has one of the given types.
func (s *TokenSource) AcceptType(typ ...token.Type) bool {
	for _, typ := range typ {
		if s.Peek.Type == typ {
			s.scan()
			return true
		}
	}
	return false
}

// AcceptKeyword scans the next token if it is one of the given keywords.
func (s *TokenSource) AcceptKeyword(kw ...string) bool {
	if s.Peek.IsKeyword(kw...) {
		s.scan()
		return true
	}
	return false
}

// AcceptOperator scans the next token if it is one of the given operators.
func (s *TokenSource) AcceptOperator(op ...string) bool {
	if s.Peek.Is(token.OPERATOR, op...) {
		s.scan()
		return true
	}
	return false
}

// Scan advances the stream by one token.  Scan returns false when the stream
// is already at EOF.
func (s *TokenSource) Scan() bool {
	if s.IsEOF() {
		s.Token = s.Peek
		return false
	}
	s.scan()
	return true
}

func (s *TokenSource) IsEOF() bool {
	return s.Peek.Type == token.EOF
}

// Err returns the lexical error that produced an ERROR token, if any.
func (s *TokenSource) Err() error {
	return s.lex.Err()
}

func (s *TokenSource) scan() {
	s.Token = s.Peek
	s.Peek = s.lex.NextToken()
}
