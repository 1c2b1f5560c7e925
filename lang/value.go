package lang

import (
	"math"
	"strconv"

	"github.com/luthersystems/smodr/parser/ast"
)

// ValueType is the type of a Value
type ValueType uint

// Possible ValueType values
const (
	VNil ValueType = iota
	VNumber
	VString
	VFunction
)

var valueTypeStrings = []string{
	VNil:      "nil",
	VNumber:   "number",
	VString:   "string",
	VFunction: "function",
}

func (t ValueType) String() string {
	if int(t) >= len(valueTypeStrings) {
		return "INVALID"
	}
	return valueTypeStrings[t]
}

// Value is a smodr runtime value.  The zero Value is Nil.
type Value struct {
	Type ValueType
	Num  float64
	Str  string
	Fun  *Function
}

// Function is a user defined function together with the environment in
// which it was defined.
type Function struct {
	Name   string
	Params []string
	Body   ast.Block
	Env    *Env

	// Def is the definition the function was created from.  RECURSE
	// expressions are resolved against it.
	Def *ast.FunctionDef
}

// Nil returns the value representing the absence of a value.
func Nil() Value {
	return Value{}
}

// Number returns a Value representing the number x.
func Number(x float64) Value {
	return Value{Type: VNumber, Num: x}
}

// String returns a Value representing the string s.
func String(s string) Value {
	return Value{Type: VString, Str: s}
}

// Bool returns the Number 1 if b is true and 0 otherwise.
func Bool(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

// Func returns a Value wrapping fn.
func Func(fn *Function) Value {
	return Value{Type: VFunction, Fun: fn}
}

// IsNil returns true if v is Nil.
func (v Value) IsNil() bool {
	return v.Type == VNil
}

// Equal returns true if v and other are the same variant with the same
// content.  Functions are equal only to themselves.
func (v Value) Equal(other Value) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case VNumber:
		return v.Num == other.Num
	case VString:
		return v.Str == other.Str
	case VFunction:
		return v.Fun == other.Fun
	default:
		return true
	}
}

// String returns the display form of v, as written by print.
func (v Value) String() string {
	switch v.Type {
	case VNumber:
		return formatNumber(v.Num)
	case VString:
		return v.Str
	case VFunction:
		return "<function " + v.Fun.Name + ">"
	default:
		return "nil"
	}
}

// GoString returns a representation of v suitable for diagnostics, with
// strings quoted.
func (v Value) GoString() string {
	if v.Type == VString {
		return strconv.Quote(v.Str)
	}
	return v.String()
}

// formatNumber formats whole numbers without a fractional part and other
// numbers with the shortest representation that round trips.
func formatNumber(x float64) string {
	if x == 0 {
		return "0"
	}
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strconv.FormatFloat(x, 'f', -1, 64)
}
