// Package parser provides the smodr parser.
//
//	program    := statement*
//	statement  := define | if | while | modify | return | stopword
//	            | name '=' expression | expression
//	define     := 'DEFINE' name ( '(' params? ')' )? block
//	if         := 'IF' expression 'THEN'? block ( 'ELSE' block )?
//	while      := 'WHILE' expression 'DO'? block
//	modify     := 'MODIFY' name expression
//	return     := 'RETURN' expression?
//	block      := '{' statement* '}' | statement* 'END'
//	expression := term ( ( '==' | '!=' | '<' | '>' | '<=' | '>=' ) term )*
//	term       := factor ( ( '+' | '-' ) factor )*
//	factor     := unary ( ( '*' | '/' ) unary )*
//	unary      := '-' unary | primary
//	primary    := number | string | name | name '(' args? ')'
//	            | 'RECURSE' '(' args? ')' | '(' expression ')'
//	number     := /[0-9]+(\.[0-9]+)?/
//	string     := /"[^"\n]*"/ | /'[^'\n]*'/
//	name       := /[A-Za-z_][A-Za-z0-9_]*/
//
// Comments begin with '#' and extend to the end of the line.
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/luthersystems/smodr/parser/ast"
	"github.com/luthersystems/smodr/parser/rdparser"
	parsec "github.com/prataprc/goparsec"
)

// Parse parses the program src.  The returned error is a *lexer.Error or an
// *rdparser.Error.
func Parse(name string, src string) (*ast.Program, error) {
	return rdparser.ParseString(name, src)
}

// ParseReader parses the program read from r.
func ParseReader(name string, r io.Reader) (*ast.Program, error) {
	return rdparser.ParseReader(name, r)
}

// NewInteractive returns a parser for line-at-a-time input.
func NewInteractive(name string) *rdparser.Interactive {
	return rdparser.NewInteractive(name)
}

// Numeric text accepted by explicit conversions.  Unlike number literals in
// source, converted text may carry a sign.
var (
	integerText = parsec.Token(`[+-]?[0-9]+`, "INTEGER")
	decimalText = parsec.Token(`[+-]?[0-9]+(?:\.[0-9]+)?`, "DECIMAL")
)

// ParseInteger parses text as a whole number.  Surrounding whitespace is
// ignored.
func ParseInteger(text string) (float64, error) {
	return parseNumeric(integerText, text, "integer")
}

// ParseNumber parses text as a number with an optional fractional part.
// Surrounding whitespace is ignored.
func ParseNumber(text string) (float64, error) {
	return parseNumeric(decimalText, text, "number")
}

func parseNumeric(p parsec.Parser, text string, what string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("invalid %s: %q", what, text)
	}
	node, rest := p(parsec.NewScanner([]byte(trimmed)))
	term, ok := node.(*parsec.Terminal)
	if !ok || term == nil || !rest.Endof() {
		return 0, fmt.Errorf("invalid %s: %q", what, text)
	}
	x, err := strconv.ParseFloat(term.GetValue(), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", what, text)
	}
	return x, nil
}
