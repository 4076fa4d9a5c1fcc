package textfn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/hostlib/textfn"
	"github.com/rookscript/rookscript/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	fns := textfn.Functions()
	fn, ok := fns.Get("", name)
	require.True(t, ok)
	m := &fakeMachine{stack: append([]value.Value(nil), args...)}
	var out value.Value
	_, err := fn.Execute(m, &out)
	require.NoError(t, err)
	return out
}

func needleList(ss ...string) value.Value {
	elems := make([]value.Value, len(ss))
	for i, s := range ss {
		elems[i] = value.NewString(s)
	}
	return value.NewListValue(elems...)
}

func TestFindAny(t *testing.T) {
	out := call(t, "find_any", value.NewString("the quick brown fox"), needleList("quick", "slow", "fox"))
	require.Equal(t, value.List, out.Kind())
	l := out.ListRef()
	var found []string
	for i := 0; i < l.Len(); i++ {
		found = append(found, l.Get(i).Str())
	}
	require.ElementsMatch(t, []string{"quick", "fox"}, found)
}

func TestCountAny(t *testing.T) {
	out := call(t, "count_any", value.NewString("abcabcabc"), needleList("a", "b"))
	require.Equal(t, value.Int, out.Kind())
	require.Equal(t, int64(6), out.IntValue())
}

type fakeMachine struct {
	stack []value.Value
}

func (m *fakeMachine) Pop() (value.Value, error) {
	if len(m.stack) == 0 {
		return value.NullValue, errEmpty
	}
	v := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return v, nil
}

func (m *fakeMachine) Push(v value.Value) error {
	m.stack = append(m.stack, v)
	return nil
}

func (m *fakeMachine) Peek(n int) (value.Value, error) {
	idx := len(m.stack) - 1 - n
	if idx < 0 {
		return value.NullValue, errEmpty
	}
	return m.stack[idx], nil
}

var errEmpty = emptyErr{}

type emptyErr struct{}

func (emptyErr) Error() string { return "stack empty" }
