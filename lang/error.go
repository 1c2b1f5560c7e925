package lang

import (
	"errors"
	"fmt"

	"github.com/luthersystems/smodr/parser/token"
)

// ErrorKind classifies a RuntimeError
type ErrorKind int

// Possible ErrorKind values
const (
	ErrInvalid ErrorKind = iota
	UndefinedVariable
	UndefinedFunction
	ArityMismatch
	TypeError
	DivisionByZero
	TypeConversionError
	RecursionLimitExceeded
)

var errorKindStrings = []string{
	ErrInvalid:             "invalid-error",
	UndefinedVariable:      "undefined-variable",
	UndefinedFunction:      "undefined-function",
	ArityMismatch:          "arity-mismatch",
	TypeError:              "type-error",
	DivisionByZero:         "division-by-zero",
	TypeConversionError:    "type-conversion-error",
	RecursionLimitExceeded: "recursion-limit-exceeded",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(errorKindStrings) {
		return errorKindStrings[ErrInvalid]
	}
	return errorKindStrings[k]
}

// RuntimeError is an error raised while evaluating a program.  Evaluation of
// the current top-level statement stops when a RuntimeError is raised.
type RuntimeError struct {
	Kind ErrorKind
	Msg  string

	// Name is the variable or function the error concerns, if any.
	Name string

	// Expected and Actual hold argument counts for ArityMismatch errors.
	Expected int
	Actual   int

	Source *token.Location
	Stack  *CallStack
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Source == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	return fmt.Sprintf("%v: %s: %s", e.Source, e.Kind, e.Msg)
}

// IsKind returns true if err is, or wraps, a RuntimeError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var rerr *RuntimeError
	return errors.As(err, &rerr) && rerr.Kind == kind
}
