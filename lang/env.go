package lang

import (
	"fmt"
	"sync/atomic"
)

var envCount uint64

func getEnvID() uint {
	return uint(atomic.AddUint64(&envCount, 1))
}

// Env is a lexical environment.  Env contains local variable bindings and a
// parent environment.  Env is in the scope of its parent's bindings.
//
// An Env never references its descendants, so environments linked by Parent
// always form a tree.
type Env struct {
	ID     uint
	Parent *Env
	scope  map[string]Value
}

// NewEnv initializes and returns a new Env.  If parent is nil a root Env is
// returned.
func NewEnv(parent *Env) *Env {
	return &Env{
		ID:     getEnvID(),
		Parent: parent,
		scope:  make(map[string]Value),
	}
}

// Get returns the value bound to name in env or its nearest ancestor that
// binds name.
func (env *Env) Get(name string) (Value, bool) {
	for e := env; e != nil; e = e.Parent {
		v, ok := e.scope[name]
		if ok {
			return v, true
		}
	}
	return Nil(), false
}

// GetLocal returns the value bound to name in env itself, ignoring ancestors.
func (env *Env) GetLocal(name string) (Value, bool) {
	v, ok := env.scope[name]
	return v, ok
}

// Put binds name to v in env.  Put never modifies an ancestor of env, a
// binding in env shadows any binding of name in an ancestor.
func (env *Env) Put(name string, v Value) {
	env.scope[name] = v
}

func (env *Env) String() string {
	return fmt.Sprintf("env%d", env.ID)
}
