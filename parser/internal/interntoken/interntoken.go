// Package interntoken deduplicates the text of name tokens so that repeated
// identifiers in a source file share one string.
package interntoken

import "sync"

type Table struct {
	mut    sync.RWMutex
	intern map[string]string
}

func NewTable() *Table {
	return &Table{
		intern: make(map[string]string),
	}
}

// Len returns the number of distinct strings held by tab.
func (tab *Table) Len() int {
	if tab == nil {
		return 0
	}
	tab.mut.RLock()
	defer tab.mut.RUnlock()
	return len(tab.intern)
}

// Get returns a string that equals s.  Strings returned by Get for equal
// arguments share storage.
func (tab *Table) Get(s string) string {
	if tab == nil {
		return s
	}
	tab.mut.RLock()
	p, ok := tab.intern[s]
	tab.mut.RUnlock()
	if ok {
		return p
	}
	return tab.insert(s)
}

func (tab *Table) insert(s string) string {
	tab.mut.Lock()
	p, ok := tab.intern[s]
	if !ok {
		p = s
		tab.intern[s] = p
	}
	tab.mut.Unlock()
	return p
}
