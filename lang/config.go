package lang

import (
	"fmt"
	"io"
	"log"
)

// Config is a function that configures an Interpreter or its runtime.
type Config func(in *Interpreter) error

// WithMaximumStackHeight returns a Config that prevents the call stack from
// growing beyond n frames.  Calls that would exceed the limit fail with a
// RecursionLimitExceeded error.  The limit must be between 1 and
// MaxStackHeightLimit.
func WithMaximumStackHeight(n int) Config {
	return func(in *Interpreter) error {
		if err := CheckStackHeight(n); err != nil {
			return err
		}
		in.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// CheckStackHeight returns an error if n is not a valid maximum stack height.
func CheckStackHeight(n int) error {
	if n < 1 || n > MaxStackHeightLimit {
		return fmt.Errorf("maximum stack height must be between 1 and %d (got %d)", MaxStackHeightLimit, n)
	}
	return nil
}

// WithStdout returns a Config that makes the interpreter write program output
// to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(in *Interpreter) error {
		if w == nil {
			return fmt.Errorf("nil stdout")
		}
		in.Runtime.Stdout = w
		return nil
	}
}

// WithStdin returns a Config that makes the interpreter read program input
// from r instead of the default, os.Stdin.
func WithStdin(r LineReader) Config {
	return func(in *Interpreter) error {
		if r == nil {
			return fmt.Errorf("nil stdin")
		}
		in.Runtime.Stdin = r
		return nil
	}
}

// WithStderr returns a Config that makes the interpreter write debugging
// output to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(in *Interpreter) error {
		if w == nil {
			return fmt.Errorf("nil stderr")
		}
		in.Runtime.Stderr = w
		return nil
	}
}

// WithLogger returns a Config that traces function calls to logger.
func WithLogger(logger *log.Logger) Config {
	return func(in *Interpreter) error {
		in.Runtime.Logger = logger
		return nil
	}
}

// WithBuiltins returns a Config that adds the given builtins to the
// interpreter, replacing any default builtin with the same name.
func WithBuiltins(defs ...*Builtin) Config {
	return func(in *Interpreter) error {
		for _, def := range defs {
			if err := in.Builtins.Register(def); err != nil {
				return err
			}
		}
		return nil
	}
}
