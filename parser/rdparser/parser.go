package rdparser

import (
	"fmt"
	"io"
	"strconv"

	"github.com/luthersystems/smodr/parser/ast"
	"github.com/luthersystems/smodr/parser/token"
)

// Error is a syntax error.
type Error struct {
	Msg      string
	Expected string
	Actual   string
	Source   *token.Location

	// EOF is true when the error was caused by reaching the end of input
	// before a construct was complete.  More input may resolve the error.
	EOF bool
}

func (err *Error) Error() string {
	if err.Expected != "" {
		return fmt.Sprintf("%v: %s: expected %s but found %s",
			err.Source, err.Msg, err.Expected, err.Actual)
	}
	return fmt.Sprintf("%v: %s", err.Source, err.Msg)
}

// Parser is a recursive-descent parser for smodr programs.
type Parser struct {
	src  *TokenSource
	file string

	// defs holds the function definitions lexically enclosing the current
	// parse position, innermost last.
	defs []*ast.FunctionDef
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return &Parser{
		src:  NewTokenSource(scanner),
		file: scanner.File(),
	}
}

// ParseString parses src as a complete program.
func ParseString(name string, src string) (*ast.Program, error) {
	return New(token.NewScannerString(name, src)).ParseProgram()
}

// ParseReader parses the contents of r as a complete program.
func ParseReader(name string, r io.Reader) (*ast.Program, error) {
	return New(token.NewScanner(name, r)).ParseProgram()
}

// ParseProgram parses statements until the end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{File: p.file, Statements: ast.Block{}}
	for !p.src.IsEOF() {
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

// ParseStatement parses one statement, dispatching on its leading token.
func (p *Parser) ParseStatement() (ast.Stmt, error) {
	tok := p.Peek()
	switch {
	case tok.Type == token.ERROR:
		return nil, p.src.Err()
	case tok.IsKeyword(token.DEFINE):
		return p.ParseDefine()
	case tok.IsKeyword(token.IF):
		return p.ParseIf()
	case tok.IsKeyword(token.WHILE):
		return p.ParseWhile()
	case tok.IsKeyword(token.MODIFY):
		return p.ParseModify()
	case tok.IsKeyword(token.RETURN):
		return p.ParseReturn()
	case tok.Type == token.KEYWORD && token.IsStopWord(tok.Text):
		p.ReadToken()
		return &ast.NoOp{Source: tok.Source, Keyword: tok.Text}, nil
	case tok.Type == token.KEYWORD && !tok.IsKeyword(token.RECURSE):
		p.ReadToken()
		return nil, p.unexpected(tok, "statement")
	}
	x, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if !p.Peek().Is(token.OPERATOR, "=") {
		return &ast.ExprStmt{X: x}, nil
	}
	eq := p.ReadToken()
	id, ok := x.(*ast.Identifier)
	if !ok {
		return nil, &Error{
			Msg:    fmt.Sprintf("cannot assign to %s", x),
			Source: eq.Source,
		}
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Source: id.Source, Name: id.Name, Value: value}, nil
}

// ParseDefine parses a function definition:
//
//	DEFINE name(param, ...) block
//
// The parameter list may be omitted for a function without parameters.
func (p *Parser) ParseDefine() (ast.Stmt, error) {
	kw := p.ReadToken()
	if !p.src.AcceptType(token.IDENT) {
		return nil, p.expected("function name")
	}
	def := &ast.FunctionDef{
		Source: kw.Source,
		Name:   p.Token().Text,
		Params: []string{},
	}
	if p.src.AcceptType(token.PAREN_L) {
		params, err := p.parseParams()
		if err != nil {
			return nil, err
		}
		def.Params = params
	}
	p.defs = append(p.defs, def)
	body, _, err := p.parseBlock(token.DEFINE, false)
	p.defs = p.defs[:len(p.defs)-1]
	if err != nil {
		return nil, err
	}
	def.Body = body
	return def, nil
}

func (p *Parser) parseParams() ([]string, error) {
	params := []string{}
	if p.src.AcceptType(token.PAREN_R) {
		return params, nil
	}
	seen := make(map[string]bool)
	for {
		if !p.src.AcceptType(token.IDENT) {
			return nil, p.expected("parameter name")
		}
		name := p.Token()
		if seen[name.Text] {
			return nil, &Error{
				Msg:    fmt.Sprintf("duplicate parameter %q", name.Text),
				Source: name.Source,
			}
		}
		seen[name.Text] = true
		params = append(params, name.Text)
		if p.src.AcceptType(token.PAREN_R) {
			return params, nil
		}
		if !p.src.AcceptType(token.COMMA) {
			return nil, p.expected(`"," or ")"`)
		}
	}
}

// ParseIf parses a conditional:
//
//	IF cond [THEN] block [ELSE block]
func (p *Parser) ParseIf() (ast.Stmt, error) {
	kw := p.ReadToken()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	p.src.AcceptKeyword(token.THEN)
	braced := p.PeekType() == token.BRACE_L
	then, atElse, err := p.parseBlock(token.IF, true)
	if err != nil {
		return nil, err
	}
	stmt := &ast.If{Source: kw.Source, Cond: cond, Then: then}
	if atElse || (braced && p.Peek().IsKeyword(token.ELSE)) {
		p.ReadToken()
		stmt.Else, _, err = p.parseBlock(token.IF, false)
		if err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

// ParseWhile parses a loop:
//
//	WHILE cond [DO] block
func (p *Parser) ParseWhile() (ast.Stmt, error) {
	kw := p.ReadToken()
	cond, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	p.src.AcceptKeyword(token.DO)
	body, _, err := p.parseBlock(token.WHILE, false)
	if err != nil {
		return nil, err
	}
	return &ast.While{Source: kw.Source, Cond: cond, Body: body}, nil
}

// ParseModify parses MODIFY name expr.
func (p *Parser) ParseModify() (ast.Stmt, error) {
	kw := p.ReadToken()
	if !p.src.AcceptType(token.IDENT) {
		return nil, p.expected("modification target")
	}
	name := p.Token().Text
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Modify{Source: kw.Source, Name: name, Value: value}, nil
}

// ParseReturn parses RETURN with an optional value.  The value must begin on
// the same line as the RETURN keyword.
func (p *Parser) ParseReturn() (ast.Stmt, error) {
	kw := p.ReadToken()
	stmt := &ast.Return{Source: kw.Source}
	next := p.Peek()
	if !startsExpression(next) || next.Source.Line != kw.Source.Line {
		return stmt, nil
	}
	value, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	stmt.Value = value
	return stmt, nil
}

// parseBlock parses the body of construct in either of its forms.  A brace
// block is tried first.  Otherwise statements are read until END, which is
// consumed.  When stopAtElse is true a keyword block also ends before ELSE and
// the second return value reports that it did.
func (p *Parser) parseBlock(construct string, stopAtElse bool) (ast.Block, bool, error) {
	block := ast.Block{}
	if p.src.AcceptType(token.BRACE_L) {
		open := p.Token()
		for !p.src.AcceptType(token.BRACE_R) {
			if p.src.IsEOF() {
				err := p.unexpected(p.Peek(), `"}"`)
				err.Msg = fmt.Sprintf("unterminated %s block opened at %v", construct, open.Source)
				return nil, false, err
			}
			stmt, err := p.ParseStatement()
			if err != nil {
				return nil, false, err
			}
			block = append(block, stmt)
		}
		return block, false, nil
	}
	for {
		switch {
		case p.src.AcceptKeyword(token.END):
			return block, false, nil
		case stopAtElse && p.Peek().IsKeyword(token.ELSE):
			return block, true, nil
		case p.src.IsEOF():
			err := p.unexpected(p.Peek(), token.END)
			err.Msg = fmt.Sprintf("missing END for %s", construct)
			return nil, false, err
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, false, err
		}
		block = append(block, stmt)
	}
}

// ParseExpression parses an expression.
//
//	expression → comparison
//	comparison → term (compareOp term)*
//	term       → factor (("+" | "-") factor)*
//	factor     → unary (("*" | "/") unary)*
//	unary      → "-" unary | primary
func (p *Parser) ParseExpression() (ast.Expr, error) {
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	return p.parseBinary(p.parseTerm, "==", "!=", "<", ">", "<=", ">=")
}

func (p *Parser) parseTerm() (ast.Expr, error) {
	return p.parseBinary(p.parseFactor, "+", "-")
}

func (p *Parser) parseFactor() (ast.Expr, error) {
	return p.parseBinary(p.parseUnary, "*", "/")
}

// parseBinary parses a left-associative chain of operand separated by any of
// ops.
func (p *Parser) parseBinary(operand func() (ast.Expr, error), ops ...string) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for p.src.AcceptOperator(ops...) {
		op := p.Token()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Source: op.Source, Op: op.Text, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	if !p.src.AcceptOperator("-") {
		return p.ParsePrimary()
	}
	op := p.Token()
	x, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.Unary{Source: op.Source, Op: op.Text, X: x}, nil
}

// ParsePrimary parses a literal, variable reference, call, RECURSE, or a
// parenthesized expression.
func (p *Parser) ParsePrimary() (ast.Expr, error) {
	tok := p.Peek()
	switch {
	case tok.Type == token.ERROR:
		return nil, p.src.Err()
	case tok.Type == token.NUMBER:
		p.ReadToken()
		x, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, &Error{
				Msg:    fmt.Sprintf("invalid number literal: %s", tok.Text),
				Source: tok.Source,
			}
		}
		return &ast.Number{Source: tok.Source, Text: tok.Text, Value: x}, nil
	case tok.Type == token.STRING:
		p.ReadToken()
		return &ast.String{Source: tok.Source, Value: tok.Literal()}, nil
	case tok.Type == token.IDENT:
		p.ReadToken()
		if !p.src.AcceptType(token.PAREN_L) {
			return &ast.Identifier{Source: tok.Source, Name: tok.Text}, nil
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		return &ast.Call{Source: tok.Source, Callee: tok.Text, Args: args}, nil
	case tok.IsKeyword(token.RECURSE):
		return p.parseRecurse()
	case tok.Type == token.PAREN_L:
		p.ReadToken()
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if !p.src.AcceptType(token.PAREN_R) {
			return nil, p.expected(`")"`)
		}
		return x, nil
	default:
		return nil, p.expected("expression")
	}
}

func (p *Parser) parseRecurse() (ast.Expr, error) {
	kw := p.ReadToken()
	if len(p.defs) == 0 {
		return nil, &Error{
			Msg:    "RECURSE used outside of a function definition",
			Source: kw.Source,
		}
	}
	if !p.src.AcceptType(token.PAREN_L) {
		return nil, p.expected(`"("`)
	}
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	return &ast.Recurse{
		Source: kw.Source,
		Def:    p.defs[len(p.defs)-1],
		Args:   args,
	}, nil
}

// parseArgs parses a comma separated argument list following an opening
// parenthesis.
func (p *Parser) parseArgs() ([]ast.Expr, error) {
	args := []ast.Expr{}
	if p.src.AcceptType(token.PAREN_R) {
		return args, nil
	}
	for {
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, x)
		if p.src.AcceptType(token.PAREN_R) {
			return args, nil
		}
		if !p.src.AcceptType(token.COMMA) {
			return nil, p.expected(`"," or ")"`)
		}
	}
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) Token() *token.Token {
	return p.src.Token
}

func (p *Parser) Peek() *token.Token {
	return p.src.Peek
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek.Type
}

// expected returns an error describing the next token as unexpected.  Lexical
// errors take precedence over syntax errors.
func (p *Parser) expected(what string) error {
	if p.PeekType() == token.ERROR {
		return p.src.Err()
	}
	return p.unexpected(p.Peek(), what)
}

func (p *Parser) unexpected(tok *token.Token, what string) *Error {
	msg := "unexpected token"
	if tok.Type == token.EOF {
		msg = "unexpected end of input"
	}
	return &Error{
		Msg:      msg,
		Expected: what,
		Actual:   tok.String(),
		Source:   tok.Source,
		EOF:      tok.Type == token.EOF,
	}
}

func startsExpression(tok *token.Token) bool {
	switch tok.Type {
	case token.NUMBER, token.STRING, token.IDENT, token.PAREN_L:
		return true
	case token.OPERATOR:
		return tok.Text == "-"
	case token.KEYWORD:
		return tok.Text == token.RECURSE
	}
	return false
}
