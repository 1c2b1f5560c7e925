package rdparser

import (
	"errors"
	"strings"
	"sync"

	"github.com/luthersystems/smodr/parser/ast"
)

// Interactive implements a parser that accumulates source a line at a time
// and parses it once a complete sequence of statements has been read.
type Interactive struct {
	Name string

	// PrimaryPrompt and ContinuePrompt are returned by Prompt.
	PrimaryPrompt  string
	ContinuePrompt string

	mut     sync.RWMutex
	buf     strings.Builder
	parsing bool
}

// NewInteractive initializes and returns a new Interactive parser.  Name is
// used as the file name in source locations.
func NewInteractive(name string) *Interactive {
	return &Interactive{
		Name:           name,
		PrimaryPrompt:  "> ",
		ContinuePrompt: "  ",
	}
}

// Prompt returns a simple prompt that can be used by a REPL line reader.
func (p *Interactive) Prompt() string {
	if p.IsParsing() {
		return p.ContinuePrompt
	}
	return p.PrimaryPrompt
}

// IsParsing returns true if p is in the middle of parsing a statement.
// IsParsing can be called at any time, potentially by concurrent goroutines or
// when p is nil.
func (p *Interactive) IsParsing() bool {
	if p == nil {
		// definitely not parsing right now
		return false
	}
	p.mut.RLock()
	defer p.mut.RUnlock()
	return p.parsing
}

// Feed appends line to the pending source and attempts to parse it.  When the
// pending source is complete the parsed program is returned and the pending
// source is cleared.  When the source ends inside an unfinished construct Feed
// returns a nil program and a nil error and IsParsing reports true.  If a
// syntax error is encountered the pending source is discarded so corrected
// source can be re-read.
func (p *Interactive) Feed(line string) (*ast.Program, error) {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.buf.WriteString(line)
	if !strings.HasSuffix(line, "\n") {
		p.buf.WriteString("\n")
	}
	prog, err := ParseString(p.Name, p.buf.String())
	if err == nil {
		p.reset()
		return prog, nil
	}
	var perr *Error
	if errors.As(err, &perr) && perr.EOF {
		p.parsing = true
		return nil, nil
	}
	p.reset()
	return nil, err
}

// Pending returns the source accumulated since the last complete parse.
func (p *Interactive) Pending() string {
	p.mut.RLock()
	defer p.mut.RUnlock()
	return p.buf.String()
}

// Reset discards any pending source.
func (p *Interactive) Reset() {
	p.mut.Lock()
	defer p.mut.Unlock()
	p.reset()
}

func (p *Interactive) reset() {
	p.buf.Reset()
	p.parsing = false
}
