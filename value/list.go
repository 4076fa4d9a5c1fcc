package value

import "strings"

// ListValue is the backing store for a List Value: an ordered, zero-indexed
// sequence. Out-of-range reads return null; out-of-range writes are no-ops,
// per spec.md section 3.
type ListValue struct {
	elems []Value
}

func newListValue(elems []Value) *ListValue {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return &ListValue{elems: cp}
}

// Len returns the number of elements.
func (l *ListValue) Len() int { return len(l.elems) }

// Get returns the element at i, or null if i is out of range.
func (l *ListValue) Get(i int) Value {
	if i < 0 || i >= len(l.elems) {
		return NullValue
	}
	return l.elems[i]
}

// Set assigns v to index i. Out-of-range indices are silently ignored.
func (l *ListValue) Set(i int, v Value) {
	if i < 0 || i >= len(l.elems) {
		return
	}
	l.elems[i] = v
}

// Append adds v to the end of the list.
func (l *ListValue) Append(v Value) {
	l.elems = append(l.elems, v)
}

// Elems returns the underlying slice. Callers must not retain it across a
// mutation of the list.
func (l *ListValue) Elems() []Value { return l.elems }

// String renders the list as a bracketed, comma-separated sequence.
func (l *ListValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		if e.Kind() == String {
			sb.WriteByte('"')
			sb.WriteString(e.Str())
			sb.WriteByte('"')
		} else {
			sb.WriteString(e.String())
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

// Equal reports element-wise value equality with another list, used by
// strict-equality comparisons of reference types that are value-typed.
func (l *ListValue) Equal(o *ListValue) bool {
	if l == o {
		return true
	}
	if o == nil || len(l.elems) != len(o.elems) {
		return false
	}
	for i := range l.elems {
		if !StrictEqual(l.elems[i], o.elems[i]) {
			return false
		}
	}
	return true
}
