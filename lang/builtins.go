package lang

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/luthersystems/smodr/parser"
)

// BuiltinFunc implements a builtin function.  Arguments have been evaluated
// and their count checked against the Builtin's limits.
type BuiltinFunc func(in *Interpreter, args []Value) (Value, error)

// Builtin is a named function implemented in Go.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int // VarArgs for no limit
	Fun     BuiltinFunc
}

// VarArgs is the MaxArgs of a Builtin accepting any number of arguments.
const VarArgs = -1

var langBuiltins = []*Builtin{
	{"print", 0, VarArgs, builtinPrint},
	{"input", 0, 1, builtinInput},
	{"str", 1, 1, builtinStr},
	{"int", 1, 1, builtinInt},
	{"float", 1, 1, builtinFloat},
}

// DefaultBuiltins returns the builtins available to every program.
func DefaultBuiltins() []*Builtin {
	defs := make([]*Builtin, len(langBuiltins))
	copy(defs, langBuiltins)
	return defs
}

// Builtins is a registry of builtin functions keyed by name.
type Builtins struct {
	byName map[string]*Builtin
}

// NewBuiltins returns a registry containing defs.  When called with no
// arguments NewBuiltins returns a registry of the DefaultBuiltins.
func NewBuiltins(defs ...*Builtin) *Builtins {
	if len(defs) == 0 {
		defs = DefaultBuiltins()
	}
	r := &Builtins{byName: make(map[string]*Builtin, len(defs))}
	for _, def := range defs {
		r.byName[def.Name] = def
	}
	return r
}

// Register adds def to r, replacing any builtin with the same name.
func (r *Builtins) Register(def *Builtin) error {
	if def == nil || def.Name == "" || def.Fun == nil {
		return fmt.Errorf("invalid builtin definition")
	}
	if def.MaxArgs != VarArgs && def.MaxArgs < def.MinArgs {
		return fmt.Errorf("builtin %s: maximum argument count less than minimum", def.Name)
	}
	r.byName[def.Name] = def
	return nil
}

// Get returns the builtin named name or nil if there is none.
func (r *Builtins) Get(name string) *Builtin {
	return r.byName[name]
}

// Names returns the sorted names of the registered builtins.
func (r *Builtins) Names() []string {
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkArity returns the argument count expected by b when n arguments is not
// acceptable.
func (b *Builtin) checkArity(n int) (expected int, ok bool) {
	if n < b.MinArgs {
		return b.MinArgs, false
	}
	if b.MaxArgs != VarArgs && n > b.MaxArgs {
		return b.MaxArgs, false
	}
	return n, true
}

func builtinPrint(in *Interpreter, args []Value) (Value, error) {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.String()
	}
	_, err := io.WriteString(in.Runtime.Stdout, strings.Join(parts, " ")+"\n")
	if err != nil {
		return Nil(), fmt.Errorf("print: %w", err)
	}
	return Nil(), nil
}

func builtinInput(in *Interpreter, args []Value) (Value, error) {
	var (
		line string
		err  error
	)
	pr, ok := in.Runtime.Stdin.(PromptLineReader)
	switch {
	case len(args) > 0 && ok:
		line, err = pr.ReadlinePrompt(args[0].String())
	case len(args) > 0:
		_, err = io.WriteString(in.Runtime.Stdout, args[0].String())
		if err != nil {
			return Nil(), fmt.Errorf("input: %w", err)
		}
		line, err = in.Runtime.Stdin.Readline()
	default:
		line, err = in.Runtime.Stdin.Readline()
	}
	if err == io.EOF {
		return Nil(), nil
	}
	if err != nil {
		return Nil(), fmt.Errorf("input: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	return String(line), nil
}

func builtinStr(in *Interpreter, args []Value) (Value, error) {
	return String(args[0].String()), nil
}

func builtinInt(in *Interpreter, args []Value) (Value, error) {
	v := args[0]
	switch v.Type {
	case VNumber:
		return Number(math.Trunc(v.Num)), nil
	case VString:
		x, err := parser.ParseInteger(v.Str)
		if err != nil {
			return Nil(), in.conversionError("int", v, err)
		}
		return Number(x), nil
	default:
		return Nil(), in.conversionError("int", v, nil)
	}
}

func builtinFloat(in *Interpreter, args []Value) (Value, error) {
	v := args[0]
	switch v.Type {
	case VNumber:
		return v, nil
	case VString:
		x, err := parser.ParseNumber(v.Str)
		if err != nil {
			return Nil(), in.conversionError("float", v, err)
		}
		return Number(x), nil
	default:
		return Nil(), in.conversionError("float", v, nil)
	}
}

func (in *Interpreter) conversionError(name string, v Value, cause error) error {
	msg := fmt.Sprintf("%s: cannot convert %s to a number", name, v.Type)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", name, cause)
	}
	return &RuntimeError{
		Kind:  TypeConversionError,
		Msg:   msg,
		Name:  name,
		Stack: in.Runtime.Stack.Copy(),
	}
}
