package regexfn_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/hostlib/regexfn"
	"github.com/rookscript/rookscript/value"
)

func call(t *testing.T, name string, args ...value.Value) value.Value {
	t.Helper()
	fns := regexfn.Functions()
	fn, ok := fns.Get("", name)
	require.True(t, ok)
	m := &fakeMachine{stack: append([]value.Value(nil), args...)}
	var out value.Value
	_, err := fn.Execute(m, &out)
	require.NoError(t, err)
	return out
}

func TestMatch(t *testing.T) {
	out := call(t, "match", value.NewString("^[0-9]+$"), value.NewString("1234"))
	require.True(t, out.BoolValue())
}

func TestFindNoMatch(t *testing.T) {
	out := call(t, "find", value.NewString("[0-9]+"), value.NewString("abc"))
	require.Equal(t, value.Null, out.Kind())
}

func TestReplace(t *testing.T) {
	out := call(t, "replace", value.NewString("o"), value.NewString("foo"), value.NewString("0"))
	require.Equal(t, "f00", out.Str())
}

func TestSplit(t *testing.T) {
	out := call(t, "split", value.NewString(","), value.NewString("a,b,c"))
	require.Equal(t, value.List, out.Kind())
	l := out.ListRef()
	require.Equal(t, 3, l.Len())
	require.Equal(t, "a", l.Get(0).Str())
	require.Equal(t, "c", l.Get(2).Str())
}

// fakeMachine is a minimal resolve.Machine stub: Execute pops arguments in
// reverse off the backing slice, matching NativeFunction.Execute's protocol.
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
