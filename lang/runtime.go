package lang

import (
	"bufio"
	"io"
	"log"
	"os"
	"strings"
)

// LineReader is the input sink used by the input builtin.  Readline returns
// one line of text without its line terminator, or io.EOF at the end of input.
// A *readline.Instance satisfies LineReader.
type LineReader interface {
	Readline() (string, error)
}

// PromptLineReader is a LineReader that displays a prompt itself.  The input
// builtin passes its prompt to a PromptLineReader instead of writing it to
// Stdout.
type PromptLineReader interface {
	LineReader
	ReadlinePrompt(prompt string) (string, error)
}

// Runtime holds the process resources used by an Interpreter.
type Runtime struct {
	Stdout io.Writer
	Stdin  LineReader
	Stderr io.Writer
	Stack  *CallStack
	Logger *log.Logger
}

// StandardRuntime returns a Runtime using the process's standard streams.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stdout: os.Stdout,
		Stdin:  NewLineReader(os.Stdin),
		Stderr: os.Stderr,
		Stack:  &CallStack{MaxHeight: DefaultMaxStackHeight},
	}
}

func (rt *Runtime) logf(format string, v ...interface{}) {
	if rt.Logger != nil {
		rt.Logger.Printf(format, v...)
	}
}

type bufLineReader struct {
	r *bufio.Reader
}

// NewLineReader returns a LineReader that reads lines from r.
func NewLineReader(r io.Reader) LineReader {
	return &bufLineReader{bufio.NewReader(r)}
}

func (r *bufLineReader) Readline() (string, error) {
	line, err := r.r.ReadString('\n')
	if err == io.EOF && line != "" {
		err = nil
	}
	if err != nil {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}
