package token

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/luthersystems/smodr/parser/internal/interntoken"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The entire stream is read when the Scanner is created.
type Scanner struct {
	file    string
	buf     []byte
	readErr error
	names   *interntoken.Table

	start     int // start of the current token
	startLine int
	startCol  int

	pos  int // index of c, a utf-8 rune in input
	next int // index of the rune following c
	line int // line of the rune at next
	col  int // column of the rune at next
	cLoc Location
	c    Rune
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	s := &Scanner{
		file:      file,
		buf:       buf,
		readErr:   err,
		names:     interntoken.NewTable(),
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
	return s
}

// NewScannerString returns a Scanner over the text src.
func NewScannerString(file string, src string) *Scanner {
	return &Scanner{
		file:      file,
		buf:       []byte(src),
		names:     interntoken.NewTable(),
		line:      1,
		col:       1,
		startLine: 1,
		startCol:  1,
	}
}

// File returns the name of the file being scanned.
func (s *Scanner) File() string {
	return s.file
}

// EmitToken returns a token containing the text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	text := s.Text()
	if typ == IDENT || typ == KEYWORD {
		text = s.names.Get(text)
	}
	tok := &Token{
		Type:   typ,
		Text:   text,
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.next
	s.startLine = s.line
	s.startCol = s.col
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// Rune returns the current unicode rune that is being scanned.  The rune
// returned by Rune is the last rune in a token returned by EmitToken.
func (s *Scanner) Rune() rune {
	return s.c.C
}

// Peek returns the next rune to be scanned, if there are any.  If an invalid
// utf-8 sequence or EOF prevents futher runes from being scanned Peek returns
// a false second value.
func (s *Scanner) Peek() (rune, bool) {
	if s.next >= len(s.buf) {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	if (Rune{c, n}).IsRuneError() {
		return utf8.RuneError, false
	}
	return c, true
}

// ScanRune attempts to scan a utf-8 rune from the input for inclusion in the
// current token.  At the end of input ScanRune returns io.EOF, or the error
// that interrupted reading the input.
func (s *Scanner) ScanRune() error {
	if s.next >= len(s.buf) {
		if s.readErr != nil {
			return s.readErr
		}
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	r := Rune{c, n}
	if r.IsRuneError() {
		return fmt.Errorf("%s: invalid utf-8 sequence in source text starting with byte %q",
			s.Loc(), s.buf[s.next])
	}
	s.cLoc = Location{File: s.file, Pos: s.next, Line: s.line, Col: s.col}
	s.c = r
	s.pos = s.next
	s.next += n
	if c == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return nil
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Pos:  s.start,
		Line: s.startLine,
		Col:  s.startCol,
	}
}

// Loc returns a Location referencing the current scanner position, the last
// position of the current token.
func (s *Scanner) Loc() *Location {
	if s.c.N == 0 {
		return s.LocStart()
	}
	loc := s.cLoc
	return &loc
}

// LocNext returns a Location referencing the rune that will be scanned next.
func (s *Scanner) LocNext() *Location {
	return &Location{
		File: s.file,
		Pos:  s.next,
		Line: s.line,
		Col:  s.col,
	}
}

// Rune contains a rune that read by Scanner during peeking operations.
type Rune struct {
	C rune
	N int
}

// IsRuneError returns true if Rune represents an invalid utf-8 sequence read
// by utf8.DecodeRune.
func (r Rune) IsRuneError() bool {
	return r.C == utf8.RuneError && r.N == 1
}
