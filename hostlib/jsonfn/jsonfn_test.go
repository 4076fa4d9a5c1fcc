package jsonfn_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/hostlib/jsonfn"
	"github.com/rookscript/rookscript/value"
)

func call(t *testing.T, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	fns := jsonfn.Functions()
	fn, ok := fns.Get("", name)
	require.True(t, ok)
	m := &fakeMachine{stack: append([]value.Value(nil), args...)}
	var out value.Value
	_, err := fn.Execute(m, &out)
	return out, err
}

func TestParsePreservesObjectOrder(t *testing.T) {
	out, err := call(t, "parse", value.NewString(`{"b":1,"a":2,"c":[3,4]}`))
	require.NoError(t, err)
	require.Equal(t, value.Map, out.Kind())
	snaps.MatchSnapshot(t, out.MapRef().Keys())
}

func TestParseInvalidDocument(t *testing.T) {
	_, err := call(t, "parse", value.NewString(`{not json`))
	require.Error(t, err)
	ev, ok := err.(*value.ErrorValue)
	require.True(t, ok)
	require.Equal(t, "JSON", ev.Kind)
}

func TestGetMissingPathReturnsNull(t *testing.T) {
	out, err := call(t, "get", value.NewString(`{"a":1}`), value.NewString("b"))
	require.NoError(t, err)
	require.Equal(t, value.Null, out.Kind())
}

func TestSetRoundTrip(t *testing.T) {
	out, err := call(t, "set", value.NewString(`{"a":1}`), value.NewString("b"), value.NewInt(2))
	require.NoError(t, err)
	snaps.MatchSnapshot(t, out.Str())
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
