// Package smodrtest runs smodr programs and sequences of statements for
// tests.
package smodrtest

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/smodr/lang"
	"github.com/luthersystems/smodr/parser/lexer"
	"github.com/luthersystems/smodr/parser/rdparser"
)

// Runner is a test runner.
type Runner struct {
	// Configs are applied to every Interpreter created by the Runner.
	Configs []lang.Config
}

// NewInterpreter returns an Interpreter writing to stdout and reading lines
// from stdin.
func (r *Runner) NewInterpreter(stdout *bytes.Buffer, stdin string) (*lang.Interpreter, error) {
	configs := []lang.Config{
		lang.WithStdout(stdout),
		lang.WithStderr(stdout),
		lang.WithStdin(lang.NewLineReader(strings.NewReader(stdin))),
	}
	configs = append(configs, r.Configs...)
	in, err := lang.New(configs...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize interpreter: %w", err)
	}
	return in, nil
}

// RunTestFile runs the program at path and compares its output with the
// contents of the file with the same name and the extension ".out".  If a
// file with the extension ".in" exists it is used as the program's input.
func (r *Runner) RunTestFile(t *testing.T, path string) {
	t.Helper()
	source, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("Unable to read test file: %v", err)
		return
	}
	base := strings.TrimSuffix(path, filepath.Ext(path))
	expect, err := os.ReadFile(base + ".out")
	if err != nil {
		t.Errorf("Unable to read expected output: %v", err)
		return
	}
	stdin, err := os.ReadFile(base + ".in")
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Unable to read test input: %v", err)
		return
	}
	var out bytes.Buffer
	in, err := r.NewInterpreter(&out, string(stdin))
	if err != nil {
		t.Error(err)
		return
	}
	_, err = in.Load(filepath.Base(path), bytes.NewReader(source))
	if err != nil {
		fmt.Fprintf(&out, "error: %s\n", ErrorString(err))
		var rerr *lang.RuntimeError
		if errors.As(err, &rerr) && rerr.Stack != nil && rerr.Stack.Height() > 0 {
			var buf bytes.Buffer
			rerr.Stack.DebugPrint(&buf)
			t.Log(buf.String())
		}
	}
	if out.String() != string(expect) {
		t.Errorf("%s: unexpected output\n--- expected\n%s--- got\n%s", path, expect, out.String())
	}
}

// TestSequence is a sequence of smodr source fragments which are evaluated
// sequentially by one Interpreter, as in a REPL session.
type TestSequence []struct {
	Expr   string // smodr source
	Result string // the evaluated result or error
	Output string // text written to stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated Interpreters.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	var r Runner
	r.RunTestSuite(t, tests)
}

// RunTestSuite runs each TestSequence in tests on isolated Interpreters
// configured by r.
func (r *Runner) RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		var out bytes.Buffer
		in, err := r.NewInterpreter(&out, "")
		if err != nil {
			t.Fatal(err)
		}
		for j, expr := range test.TestSequence {
			out.Reset()
			result := Eval(in, expr.Expr)
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			if out.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, out.String())
			}
		}
	}
}

// Eval evaluates src in the root environment of in and returns the result
// formatted for comparison: the value's GoString, or the ErrorString of any
// error.
func Eval(in *lang.Interpreter, src string) string {
	v, err := in.EvalString("test", src)
	if err != nil {
		return ErrorString(err)
	}
	return v.GoString()
}

// ErrorString formats err without its source location so that expected
// errors can be written independent of layout.
func ErrorString(err error) string {
	var (
		lerr *lexer.Error
		perr *rdparser.Error
		rerr *lang.RuntimeError
	)
	switch {
	case errors.As(err, &lerr):
		return "lex-error: " + lerr.Msg
	case errors.As(err, &perr):
		if perr.Expected != "" {
			return fmt.Sprintf("parse-error: %s: expected %s but found %s", perr.Msg, perr.Expected, perr.Actual)
		}
		return "parse-error: " + perr.Msg
	case errors.As(err, &rerr):
		return rerr.Kind.String() + ": " + rerr.Msg
	default:
		return err.Error()
	}
}
