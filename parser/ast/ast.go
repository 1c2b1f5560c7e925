// Package ast defines the syntax tree produced by the smodr parser.
package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/luthersystems/smodr/parser/token"
)

// Node is any node in the syntax tree.
type Node interface {
	Pos() *token.Location
	String() string
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Block is an ordered sequence of statements.  A Block does not introduce a
// scope.
type Block []Stmt

func (b Block) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, s := range b {
		if i > 0 {
			buf.WriteString("; ")
		} else {
			buf.WriteString(" ")
		}
		buf.WriteString(s.String())
	}
	if len(b) > 0 {
		buf.WriteString(" ")
	}
	buf.WriteString("}")
	return buf.String()
}

// Program is the root of a parsed source text.
type Program struct {
	File       string
	Statements Block
}

func (p *Program) Pos() *token.Location {
	return &token.Location{File: p.File, Line: 1, Col: 1}
}

func (p *Program) String() string {
	parts := make([]string, len(p.Statements))
	for i, s := range p.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "\n")
}

// Assignment binds Name to the value of Value in the innermost environment.
type Assignment struct {
	Source *token.Location
	Name   string
	Value  Expr
}

// Modify has the same runtime behavior as Assignment.
type Modify struct {
	Source *token.Location
	Name   string
	Value  Expr
}

// ExprStmt is an expression evaluated for its effect and value.
type ExprStmt struct {
	X Expr
}

// If executes Then when Cond is truthy and Else (which may be nil) otherwise.
type If struct {
	Source *token.Location
	Cond   Expr
	Then   Block
	Else   Block
}

// While executes Body as long as Cond is truthy.
type While struct {
	Source *token.Location
	Cond   Expr
	Body   Block
}

// FunctionDef binds Name to a function closed over the defining environment.
type FunctionDef struct {
	Source *token.Location
	Name   string
	Params []string
	Body   Block
}

// Return ends the enclosing function call.  Value may be nil.
type Return struct {
	Source *token.Location
	Value  Expr
}

// NoOp is a statement made of a single reserved stop word.
type NoOp struct {
	Source  *token.Location
	Keyword string
}

// Number is a numeric literal.
type Number struct {
	Source *token.Location
	Text   string
	Value  float64
}

// String is a string literal.
type String struct {
	Source *token.Location
	Value  string
}

// Identifier is a variable reference.
type Identifier struct {
	Source *token.Location
	Name   string
}

// Unary is a prefix operation.  The only prefix operator is "-".
type Unary struct {
	Source *token.Location
	Op     string
	X      Expr
}

// BinaryOp is an infix operation.
type BinaryOp struct {
	Source *token.Location
	Op     string
	Left   Expr
	Right  Expr
}

// Call invokes the function or builtin named Callee.
type Call struct {
	Source *token.Location
	Callee string
	Args   []Expr
}

// Recurse calls the function whose definition lexically encloses it.
type Recurse struct {
	Source *token.Location
	Def    *FunctionDef
	Args   []Expr
}

func (s *Assignment) Pos() *token.Location  { return s.Source }
func (s *Modify) Pos() *token.Location      { return s.Source }
func (s *ExprStmt) Pos() *token.Location    { return s.X.Pos() }
func (s *If) Pos() *token.Location          { return s.Source }
func (s *While) Pos() *token.Location       { return s.Source }
func (s *FunctionDef) Pos() *token.Location { return s.Source }
func (s *Return) Pos() *token.Location      { return s.Source }
func (s *NoOp) Pos() *token.Location        { return s.Source }
func (x *Number) Pos() *token.Location      { return x.Source }
func (x *String) Pos() *token.Location      { return x.Source }
func (x *Identifier) Pos() *token.Location  { return x.Source }
func (x *Unary) Pos() *token.Location       { return x.Source }
func (x *BinaryOp) Pos() *token.Location    { return x.Source }
func (x *Call) Pos() *token.Location        { return x.Source }
func (x *Recurse) Pos() *token.Location     { return x.Source }

func (*Assignment) stmtNode()  {}
func (*Modify) stmtNode()      {}
func (*ExprStmt) stmtNode()    {}
func (*If) stmtNode()          {}
func (*While) stmtNode()       {}
func (*FunctionDef) stmtNode() {}
func (*Return) stmtNode()      {}
func (*NoOp) stmtNode()        {}

func (*Number) exprNode()     {}
func (*String) exprNode()     {}
func (*Identifier) exprNode() {}
func (*Unary) exprNode()      {}
func (*BinaryOp) exprNode()   {}
func (*Call) exprNode()       {}
func (*Recurse) exprNode()    {}

func (s *Assignment) String() string { return s.Name + " = " + s.Value.String() }
func (s *Modify) String() string     { return "MODIFY " + s.Name + " " + s.Value.String() }
func (s *ExprStmt) String() string   { return s.X.String() }
func (s *NoOp) String() string       { return s.Keyword }

func (s *If) String() string {
	str := "IF " + s.Cond.String() + " " + s.Then.String()
	if s.Else != nil {
		str += " ELSE " + s.Else.String()
	}
	return str
}

func (s *While) String() string {
	return "WHILE " + s.Cond.String() + " " + s.Body.String()
}

func (s *FunctionDef) String() string {
	return "DEFINE " + s.Name + "(" + strings.Join(s.Params, ", ") + ") " + s.Body.String()
}

func (s *Return) String() string {
	if s.Value == nil {
		return "RETURN"
	}
	return "RETURN " + s.Value.String()
}

func (x *Number) String() string     { return x.Text }
func (x *String) String() string     { return strconv.Quote(x.Value) }
func (x *Identifier) String() string { return x.Name }
func (x *Unary) String() string      { return "(" + x.Op + x.X.String() + ")" }

func (x *BinaryOp) String() string {
	return "(" + x.Left.String() + " " + x.Op + " " + x.Right.String() + ")"
}

func (x *Call) String() string {
	return x.Callee + "(" + joinExprs(x.Args) + ")"
}

func (x *Recurse) String() string {
	return "RECURSE(" + joinExprs(x.Args) + ")"
}

func joinExprs(xs []Expr) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = x.String()
	}
	return strings.Join(parts, ", ")
}
