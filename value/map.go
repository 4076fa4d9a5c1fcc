package value

import (
	"strings"

	"github.com/dolthub/swiss"
)

// MapValue is the backing store for a Map Value: a case-sensitive,
// string-keyed mapping whose iteration order is insertion order (spec.md
// section 3). It is grounded on the teacher's swiss-table-backed machine.Map
// (lang/machine/map.go), extended with a parallel key slice because a bare
// swiss table does not preserve insertion order.
type MapValue struct {
	m    *swiss.Map[string, Value]
	keys []string
}

func newMapValue() *MapValue {
	return &MapValue{m: swiss.NewMap[string, Value](8)}
}

// Len returns the number of entries.
func (m *MapValue) Len() int { return m.m.Count() }

// Get returns the value for key and whether it was present.
func (m *MapValue) Get(key string) (Value, bool) {
	v, ok := m.m.Get(key)
	return v, ok
}

// Set inserts or overwrites the value for key, appending key to the
// insertion-order list only the first time it is seen.
func (m *MapValue) Set(key string, v Value) {
	if _, ok := m.m.Get(key); !ok {
		m.keys = append(m.keys, key)
	}
	m.m.Put(key, v)
}

// Keys returns the keys in insertion order. Callers must not modify the
// returned slice.
func (m *MapValue) Keys() []string { return m.keys }

// String renders the map as a braced, comma-separated sequence of key:value
// pairs in insertion order.
func (m *MapValue) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		v, _ := m.m.Get(k)
		if v.Kind() == String {
			sb.WriteByte('"')
			sb.WriteString(v.Str())
			sb.WriteByte('"')
		} else {
			sb.WriteString(v.String())
		}
	}
	sb.WriteByte('}')
	return sb.String()
}

// Equal reports key/value equality with another map, ignoring order,
// used by strict-equality comparisons.
func (m *MapValue) Equal(o *MapValue) bool {
	if m == o {
		return true
	}
	if o == nil || m.Len() != o.Len() {
		return false
	}
	for _, k := range m.keys {
		v1, _ := m.m.Get(k)
		v2, ok := o.Get(k)
		if !ok || !StrictEqual(v1, v2) {
			return false
		}
	}
	return true
}

// mapIterator yields (key, value) pairs in insertion order.
type mapIterator struct {
	m *MapValue
	i int
}

func (it *mapIterator) HasNext() bool { return it.i < len(it.m.keys) }

func (it *mapIterator) Next() (Value, Value) {
	k := it.m.keys[it.i]
	it.i++
	v, _ := it.m.Get(k)
	return NewString(k), v
}

// Iterate returns an Iterator over the map's (key, value) pairs.
func (m *MapValue) Iterate() Iterator {
	return &mapIterator{m: m}
}
