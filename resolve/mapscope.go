package resolve

import (
	"strings"

	"github.com/rookscript/rookscript/value"
)

// MapVariables is a simple, in-memory VariableResolver backed by a Go map,
// with case-insensitive lookups. It is the reference implementation hosts
// reach for when exposing a fixed set of named variables (spec.md section
// 4.5).
type MapVariables struct {
	values   map[string]value.Value
	readOnly bool
}

// NewMapVariables returns a MapVariables seeded from values. If readOnly is
// true, Set is a silent no-op.
func NewMapVariables(values map[string]value.Value, readOnly bool) *MapVariables {
	lowered := make(map[string]value.Value, len(values))
	for k, v := range values {
		lowered[strings.ToLower(k)] = v
	}
	return &MapVariables{values: lowered, readOnly: readOnly}
}

func (m *MapVariables) Get(name string) (value.Value, bool) {
	v, ok := m.values[strings.ToLower(name)]
	return v, ok
}

func (m *MapVariables) Set(name string, v value.Value) {
	if m.readOnly {
		return
	}
	m.values[strings.ToLower(name)] = v
}

func (m *MapVariables) Contains(name string) bool {
	_, ok := m.values[strings.ToLower(name)]
	return ok
}

func (m *MapVariables) IsReadOnly() bool { return m.readOnly }
func (m *MapVariables) Size() int        { return len(m.values) }
func (m *MapVariables) IsEmpty() bool    { return len(m.values) == 0 }

// Scopes is a simple, in-memory ScopeResolver backed by a Go map of named
// VariableResolvers, with case-insensitive scope-name lookups.
type Scopes map[string]VariableResolver

func (s Scopes) GetScope(name string) (VariableResolver, bool) {
	for k, v := range s {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func (s Scopes) ContainsScope(name string) bool {
	_, ok := s.GetScope(name)
	return ok
}
