package vm

import (
	"strings"

	"github.com/rookscript/rookscript/value"
	"golang.org/x/exp/slices"
)

// scopeEntry is a single (name, value) binding in a Scope.
type scopeEntry struct {
	name     string // lowercased, for ordering and lookup
	orig     string // original-case name, for diagnostics
	value    value.Value
	readOnly bool
}

// Scope is the Instance Stack's local or global variable store (spec.md
// section 4.2). Entries are kept sorted case-insensitively in a dynamic
// array; reads binary-search it, writes insertion-sort into place. This
// trades O(log n) lookup for zero hash overhead, which the spec calls out
// as justified for the typically small (<32 name) scopes a script frame
// holds.
type Scope struct {
	entries []scopeEntry
}

// NewScope returns an empty Scope.
func NewScope() *Scope { return &Scope{} }

func (s *Scope) find(lowered string) (int, bool) {
	return slices.BinarySearchFunc(s.entries, lowered, func(e scopeEntry, key string) int {
		return strings.Compare(e.name, key)
	})
}

// Get returns the value bound to name and whether it was found.
func (s *Scope) Get(name string) (value.Value, bool) {
	i, ok := s.find(strings.ToLower(name))
	if !ok {
		return value.NullValue, false
	}
	return s.entries[i].value, true
}

// Set assigns name to v, inserting a new entry in sorted order if name is
// not already bound. Read-only entries silently ignore the write (spec.md
// section 4.2).
func (s *Scope) Set(name string, v value.Value) {
	lowered := strings.ToLower(name)
	i, ok := s.find(lowered)
	if ok {
		if s.entries[i].readOnly {
			return
		}
		s.entries[i].value = v
		return
	}
	s.entries = slices.Insert(s.entries, i, scopeEntry{name: lowered, orig: name, value: v})
}

// SetReadOnly assigns name to v and marks it read-only; further Set calls on
// the same name are silently dropped.
func (s *Scope) SetReadOnly(name string, v value.Value) {
	lowered := strings.ToLower(name)
	i, ok := s.find(lowered)
	if ok {
		s.entries[i].value = v
		s.entries[i].readOnly = true
		return
	}
	s.entries = slices.Insert(s.entries, i, scopeEntry{name: lowered, orig: name, value: v, readOnly: true})
}

// Contains reports whether name is bound in this scope.
func (s *Scope) Contains(name string) bool {
	_, ok := s.find(strings.ToLower(name))
	return ok
}

// Len returns the number of bound names.
func (s *Scope) Len() int { return len(s.entries) }

// reset clears every binding, returning the Scope to empty.
func (s *Scope) reset() { s.entries = s.entries[:0] }
