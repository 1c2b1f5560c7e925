package lang

import (
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/smodr/parser"
	"github.com/luthersystems/smodr/parser/ast"
	"github.com/luthersystems/smodr/parser/token"
)

// Signal reports how execution of a statement completed.
type Signal int

// Possible Signal values
const (
	// Normal means execution continues with the next statement.
	Normal Signal = iota
	// Returned means a RETURN was executed.  Enclosing blocks stop
	// executing and propagate the signal to the function call.
	Returned
)

func (s Signal) String() string {
	if s == Returned {
		return "returned"
	}
	return "normal"
}

// Interpreter evaluates smodr programs by walking their syntax trees.  An
// Interpreter owns a root Env which persists across calls to Eval until Reset
// is called.  An Interpreter must not be used by concurrent goroutines.
type Interpreter struct {
	Runtime  *Runtime
	Builtins *Builtins
	root     *Env
}

// New initializes and returns a new Interpreter with a fresh root Env.
func New(configs ...Config) (*Interpreter, error) {
	in := &Interpreter{
		Runtime:  StandardRuntime(),
		Builtins: NewBuiltins(),
		root:     NewEnv(nil),
	}
	for _, config := range configs {
		if err := config(in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

// Root returns the root (global) environment.
func (in *Interpreter) Root() *Env {
	return in.root
}

// Reset discards all global bindings by replacing the root environment.
func (in *Interpreter) Reset() {
	in.root = NewEnv(nil)
	in.Runtime.Stack.Frames = nil
}

// EvalString parses src and evaluates it in the root environment.
func (in *Interpreter) EvalString(name string, src string) (Value, error) {
	prog, err := parser.Parse(name, src)
	if err != nil {
		return Nil(), err
	}
	v, _, err := in.Eval(prog, in.root)
	return v, err
}

// Load parses the program read from r and evaluates it in the root
// environment.
func (in *Interpreter) Load(name string, r io.Reader) (Value, error) {
	prog, err := parser.ParseReader(name, r)
	if err != nil {
		return Nil(), err
	}
	v, _, err := in.Eval(prog, in.root)
	return v, err
}

// Eval executes the statements of prog in env as a block.  The returned value
// is the value of the last statement executed, or the returned value when the
// Signal is Returned.  Eval stops at the first error.
func (in *Interpreter) Eval(prog *ast.Program, env *Env) (Value, Signal, error) {
	if env == nil {
		env = in.root
	}
	height := in.Runtime.Stack.Height()
	v, sig, err := in.execBlock(prog.Statements, env)
	if err != nil {
		// Unwind any frames left by the failed statement.
		for in.Runtime.Stack.Height() > height {
			in.Runtime.Stack.Pop()
		}
	}
	return v, sig, err
}

func (in *Interpreter) execBlock(block ast.Block, env *Env) (Value, Signal, error) {
	last := Nil()
	for _, stmt := range block {
		v, sig, err := in.exec(stmt, env)
		if err != nil {
			return Nil(), Normal, err
		}
		if sig == Returned {
			return v, Returned, nil
		}
		last = v
	}
	return last, Normal, nil
}

func (in *Interpreter) exec(stmt ast.Stmt, env *Env) (Value, Signal, error) {
	switch stmt := stmt.(type) {
	case *ast.ExprStmt:
		v, err := in.evalExpr(stmt.X, env)
		return v, Normal, err
	case *ast.Assignment:
		return in.assign(stmt.Name, stmt.Value, env)
	case *ast.Modify:
		return in.assign(stmt.Name, stmt.Value, env)
	case *ast.If:
		cond, err := in.evalCondition(stmt.Cond, env)
		if err != nil {
			return Nil(), Normal, err
		}
		if cond {
			return in.execBranch(stmt.Then, env)
		}
		if stmt.Else != nil {
			return in.execBranch(stmt.Else, env)
		}
		return Nil(), Normal, nil
	case *ast.While:
		for {
			cond, err := in.evalCondition(stmt.Cond, env)
			if err != nil {
				return Nil(), Normal, err
			}
			if !cond {
				return Nil(), Normal, nil
			}
			v, sig, err := in.execBlock(stmt.Body, env)
			if err != nil || sig == Returned {
				return v, sig, err
			}
		}
	case *ast.FunctionDef:
		fn := &Function{
			Name:   stmt.Name,
			Params: stmt.Params,
			Body:   stmt.Body,
			Env:    env,
			Def:    stmt,
		}
		env.Put(stmt.Name, Func(fn))
		return Nil(), Normal, nil
	case *ast.Return:
		if stmt.Value == nil {
			return Nil(), Returned, nil
		}
		v, err := in.evalExpr(stmt.Value, env)
		if err != nil {
			return Nil(), Normal, err
		}
		return v, Returned, nil
	case *ast.NoOp:
		return Nil(), Normal, nil
	default:
		return Nil(), Normal, fmt.Errorf("%v: unknown statement type %T", stmt.Pos(), stmt)
	}
}

// execBranch executes the taken branch of an If.  Only a RETURN makes the
// branch produce a value.
func (in *Interpreter) execBranch(block ast.Block, env *Env) (Value, Signal, error) {
	v, sig, err := in.execBlock(block, env)
	if err != nil || sig == Returned {
		return v, sig, err
	}
	return Nil(), Normal, nil
}

func (in *Interpreter) assign(name string, x ast.Expr, env *Env) (Value, Signal, error) {
	v, err := in.evalExpr(x, env)
	if err != nil {
		return Nil(), Normal, err
	}
	env.Put(name, v)
	return v, Normal, nil
}

// evalCondition evaluates x and reports its truth.  Numbers are true when
// nonzero, strings when nonempty, and Nil is false.  Functions have no truth
// value.
func (in *Interpreter) evalCondition(x ast.Expr, env *Env) (bool, error) {
	v, err := in.evalExpr(x, env)
	if err != nil {
		return false, err
	}
	switch v.Type {
	case VNumber:
		return v.Num != 0, nil
	case VString:
		return v.Str != "", nil
	case VNil:
		return false, nil
	default:
		return false, in.errorf(TypeError, x.Pos(), "%s used as a condition", v.Type)
	}
}

func (in *Interpreter) evalExpr(x ast.Expr, env *Env) (Value, error) {
	switch x := x.(type) {
	case *ast.Number:
		return Number(x.Value), nil
	case *ast.String:
		return String(x.Value), nil
	case *ast.Identifier:
		v, ok := env.Get(x.Name)
		if !ok {
			err := in.errorf(UndefinedVariable, x.Source, "undefined variable: %s", x.Name)
			err.Name = x.Name
			return Nil(), err
		}
		return v, nil
	case *ast.Unary:
		v, err := in.evalExpr(x.X, env)
		if err != nil {
			return Nil(), err
		}
		if v.Type != VNumber {
			return Nil(), in.errorf(TypeError, x.Source, "bad operand type for unary %s: %s", x.Op, v.Type)
		}
		return Number(-v.Num), nil
	case *ast.BinaryOp:
		left, err := in.evalExpr(x.Left, env)
		if err != nil {
			return Nil(), err
		}
		right, err := in.evalExpr(x.Right, env)
		if err != nil {
			return Nil(), err
		}
		return in.binaryOp(x, left, right)
	case *ast.Call:
		args, err := in.evalArgs(x.Args, env)
		if err != nil {
			return Nil(), err
		}
		return in.call(x, args, env)
	case *ast.Recurse:
		args, err := in.evalArgs(x.Args, env)
		if err != nil {
			return Nil(), err
		}
		return in.recurse(x, args)
	default:
		return Nil(), fmt.Errorf("%v: unknown expression type %T", x.Pos(), x)
	}
}

func (in *Interpreter) evalArgs(xs []ast.Expr, env *Env) ([]Value, error) {
	args := make([]Value, len(xs))
	for i, x := range xs {
		v, err := in.evalExpr(x, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// call resolves the callee of x.  A function value bound in the environment
// takes precedence over a builtin of the same name.
func (in *Interpreter) call(x *ast.Call, args []Value, env *Env) (Value, error) {
	v, bound := env.Get(x.Callee)
	if bound && v.Type == VFunction {
		return in.Call(v.Fun, x.Callee, args, x.Source)
	}
	if b := in.Builtins.Get(x.Callee); b != nil {
		return in.callBuiltin(b, args, x.Source)
	}
	if bound {
		err := in.errorf(TypeError, x.Source, "%s is not callable: %s", x.Callee, v.Type)
		err.Name = x.Callee
		return Nil(), err
	}
	err := in.errorf(UndefinedFunction, x.Source, "undefined function: %s", x.Callee)
	err.Name = x.Callee
	return Nil(), err
}

// recurse calls the function executing on top of the stack, which is always
// the one whose definition lexically encloses x.
func (in *Interpreter) recurse(x *ast.Recurse, args []Value) (Value, error) {
	top := in.Runtime.Stack.Top()
	if top == nil || top.Fun == nil || top.Fun.Def != x.Def {
		return Nil(), in.errorf(UndefinedFunction, x.Source, "RECURSE outside of a call to %s", x.Def.Name)
	}
	return in.Call(top.Fun, top.Fun.Name, args, x.Source)
}

// Call invokes fn with args in a new environment whose parent is the
// environment fn was defined in.  The result is the value of the first
// RETURN executed, or Nil if the body completes without one.
func (in *Interpreter) Call(fn *Function, name string, args []Value, source *token.Location) (Value, error) {
	if len(args) != len(fn.Params) {
		err := in.errorf(ArityMismatch, source, "%s expects %d argument%s (got %d)",
			name, len(fn.Params), plural(len(fn.Params)), len(args))
		err.Name = name
		err.Expected = len(fn.Params)
		err.Actual = len(args)
		return Nil(), err
	}
	stack := in.Runtime.Stack
	err := stack.Push(CallFrame{Name: name, Fun: fn, Source: source})
	if err != nil {
		return Nil(), err
	}
	in.Runtime.logf("call %s %v (height %d)", name, args, stack.Height())
	env := NewEnv(fn.Env)
	for i, param := range fn.Params {
		env.Put(param, args[i])
	}
	v, sig, err := in.execBlock(fn.Body, env)
	if err != nil {
		return Nil(), err
	}
	stack.Pop()
	if sig != Returned {
		v = Nil()
	}
	in.Runtime.logf("return %s %v", name, v.GoString())
	return v, nil
}

func (in *Interpreter) callBuiltin(b *Builtin, args []Value, source *token.Location) (Value, error) {
	if expected, ok := b.checkArity(len(args)); !ok {
		err := in.errorf(ArityMismatch, source, "%s expects %d argument%s (got %d)",
			b.Name, expected, plural(expected), len(args))
		err.Name = b.Name
		err.Expected = expected
		err.Actual = len(args)
		return Nil(), err
	}
	stack := in.Runtime.Stack
	err := stack.Push(CallFrame{Name: b.Name, Source: source})
	if err != nil {
		return Nil(), err
	}
	v, err := b.Fun(in, args)
	if err != nil {
		var rerr *RuntimeError
		if errors.As(err, &rerr) && rerr.Source == nil {
			rerr.Source = source
		}
		return Nil(), err
	}
	stack.Pop()
	return v, nil
}

func (in *Interpreter) binaryOp(x *ast.BinaryOp, left, right Value) (Value, error) {
	switch x.Op {
	case "==":
		return Bool(left.Equal(right)), nil
	case "!=":
		return Bool(!left.Equal(right)), nil
	case "+":
		if left.Type == VString && right.Type == VString {
			return String(left.Str + right.Str), nil
		}
	}
	if left.Type != VNumber || right.Type != VNumber {
		return Nil(), in.errorf(TypeError, x.Source, "unsupported operand types for %s: %s and %s",
			x.Op, left.Type, right.Type)
	}
	a, b := left.Num, right.Num
	switch x.Op {
	case "+":
		return Number(a + b), nil
	case "-":
		return Number(a - b), nil
	case "*":
		return Number(a * b), nil
	case "/":
		if b == 0 {
			return Nil(), in.errorf(DivisionByZero, x.Source, "division by zero")
		}
		return Number(a / b), nil
	case "<":
		return Bool(a < b), nil
	case ">":
		return Bool(a > b), nil
	case "<=":
		return Bool(a <= b), nil
	case ">=":
		return Bool(a >= b), nil
	default:
		return Nil(), fmt.Errorf("%v: unknown operator %s", x.Source, x.Op)
	}
}

func (in *Interpreter) errorf(kind ErrorKind, source *token.Location, format string, v ...interface{}) *RuntimeError {
	return &RuntimeError{
		Kind:   kind,
		Msg:    fmt.Sprintf(format, v...),
		Source: source,
		Stack:  in.Runtime.Stack.Copy(),
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
