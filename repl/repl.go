package repl

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/luthersystems/smodr/lang"
	"github.com/luthersystems/smodr/parser"
	"github.com/luthersystems/smodr/parser/rdparser"
)

// ErrExit is returned by Session.Feed when the user asks to leave the REPL.
var ErrExit = errors.New("exit")

// Option configures RunRepl.
type Option func(*replConfig)

type replConfig struct {
	historyFile string
	configs     []lang.Config
	trace       bool
}

// WithHistoryFile persists line history to path.
func WithHistoryFile(path string) Option {
	return func(c *replConfig) {
		c.historyFile = path
	}
}

// WithInterpreter applies configs to the session's interpreter.
func WithInterpreter(configs ...lang.Config) Option {
	return func(c *replConfig) {
		c.configs = append(c.configs, configs...)
	}
}

// WithStackTrace prints the call stack of runtime errors.
func WithStackTrace(trace bool) Option {
	return func(c *replConfig) {
		c.trace = trace
	}
}

// RunRepl runs a simple repl
func RunRepl(prompt string, opts ...Option) error {
	var c replConfig
	for _, opt := range opts {
		opt(&c)
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     c.historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	session, err := newReadlineSession(rl, prompt, c)
	if err != nil {
		return err
	}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			session.Interrupt()
			rl.SetPrompt(session.Prompt())
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		err = session.Feed(line)
		if err == ErrExit {
			return nil
		}
		rl.SetPrompt(session.Prompt())
	}
}

func newReadlineSession(rl *readline.Instance, prompt string, c replConfig) (*Session, error) {
	stdin := &readlineInput{rl: rl}
	configs := []lang.Config{
		lang.WithStdout(rl.Stdout()),
		lang.WithStderr(rl.Stderr()),
		lang.WithStdin(stdin),
	}
	in, err := lang.New(append(configs, c.configs...)...)
	if err != nil {
		return nil, err
	}
	session := NewSession(in, rl.Stdout(), rl.Stderr())
	session.Parser.PrimaryPrompt = prompt
	session.Parser.ContinuePrompt = strings.Repeat(" ", len(prompt)) // prompt had better be ascii...
	session.StackTrace = c.trace
	stdin.session = session
	return session, nil
}

// readlineInput reads program input through the REPL's line editor so that
// input() calls share the terminal with the prompt.
type readlineInput struct {
	rl      *readline.Instance
	session *Session
}

func (r *readlineInput) Readline() (string, error) {
	return r.ReadlinePrompt("")
}

func (r *readlineInput) ReadlinePrompt(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	defer r.rl.SetPrompt(r.session.Prompt())
	return r.rl.Readline()
}

// Session evaluates REPL input a line at a time.  Definitions and variables
// persist in the interpreter's root environment between inputs.
type Session struct {
	Interp *lang.Interpreter
	Parser *rdparser.Interactive
	Stdout io.Writer
	Stderr io.Writer

	// StackTrace causes the call stack of runtime errors to be printed.
	StackTrace bool
}

// NewSession returns a Session evaluating input with in.
func NewSession(in *lang.Interpreter, stdout, stderr io.Writer) *Session {
	return &Session{
		Interp: in,
		Parser: parser.NewInteractive("stdin"),
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Prompt returns the prompt to display before reading the next line.
func (s *Session) Prompt() string {
	return s.Parser.Prompt()
}

// Interrupt discards any partially entered statement.
func (s *Session) Interrupt() {
	s.Parser.Reset()
}

// Feed handles one line of input.  Once the buffered lines form complete
// statements they are evaluated and a non-nil result is printed.  Errors are
// reported to Stderr and the session continues.  Feed returns ErrExit when the
// line is the exit command.
func (s *Session) Feed(line string) error {
	if !s.Parser.IsParsing() {
		switch strings.TrimSpace(line) {
		case "exit":
			return ErrExit
		case "":
			return nil
		}
	}
	prog, err := s.Parser.Feed(line)
	if err != nil {
		s.errln(err)
		return nil
	}
	if prog == nil {
		return nil
	}
	v, _, err := s.Interp.Eval(prog, nil)
	if err != nil {
		s.errln(err)
		var rerr *lang.RuntimeError
		if s.StackTrace && errors.As(err, &rerr) && rerr.Stack.Height() > 0 {
			rerr.Stack.DebugPrint(s.Stderr)
		}
		return nil
	}
	if !v.IsNil() {
		fmt.Fprintln(s.Stdout, v)
	}
	return nil
}

func (s *Session) errln(v ...interface{}) {
	fmt.Fprintln(s.Stderr, v...)
}
