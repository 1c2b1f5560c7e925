package lang

import (
	"fmt"
	"io"

	"github.com/luthersystems/smodr/parser/token"
)

// DefaultMaxStackHeight is the call depth allowed when no other limit is
// configured.
const DefaultMaxStackHeight = 2000

// MaxStackHeightLimit is the largest configurable call depth.  Deeper
// evaluation would exhaust the goroutine stack.
const MaxStackHeightLimit = 100000

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame

	// MaxHeight is the number of frames allowed on the stack.  A MaxHeight
	// of zero or less means DefaultMaxStackHeight.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name   string
	Fun    *Function // nil for builtins
	Source *token.Location
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.  If the stack is already at its
// maximum height Push returns a RecursionLimitExceeded error and the stack is
// unchanged.
func (s *CallStack) Push(f CallFrame) error {
	limit := s.MaxHeight
	if limit <= 0 {
		limit = DefaultMaxStackHeight
	}
	if len(s.Frames) >= limit {
		return &RuntimeError{
			Kind:   RecursionLimitExceeded,
			Msg:    fmt.Sprintf("maximum call depth of %d exceeded calling %s", limit, f.Name),
			Name:   f.Name,
			Source: f.Source,
			Stack:  s.Copy(),
		}
	}
	s.Frames = append(s.Frames, f)
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics
// if the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		kind := ""
		if f.Fun == nil {
			kind = " [builtin]"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s called at %v\n", indent, i, f.Name, kind, f.Source)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
