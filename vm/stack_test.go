package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/value"
)

func TestStackPushPopOrder(t *testing.T) {
	s := NewStack(4, 4)
	require.NoError(t, s.Push(value.NewInt(1)))
	require.NoError(t, s.Push(value.NewInt(2)))

	v, err := s.Pop()
	require.NoError(t, err)
	require.Equal(t, int64(2), v.IntValue())

	v, err = s.Pop()
	require.NoError(t, err)
	require.Equal(t, int64(1), v.IntValue())
}

func TestStackUnderflowAtFrameBase(t *testing.T) {
	s := NewStack(4, 4)
	require.NoError(t, s.Push(value.NewInt(1)))
	require.NoError(t, s.PushFrame(0))

	_, err := s.Pop()
	require.Error(t, err)
	var f *Fault
	require.ErrorAs(t, err, &f)
	require.Equal(t, StackUnderflow, f.Kind)
}

func TestStackOverflow(t *testing.T) {
	s := NewStack(4, 2)
	require.NoError(t, s.Push(value.NewInt(1)))
	require.NoError(t, s.Push(value.NewInt(2)))

	_, err := s.Peek(0)
	require.NoError(t, err)

	err = s.Push(value.NewInt(3))
	require.Error(t, err)
	var f *Fault
	require.ErrorAs(t, err, &f)
	require.Equal(t, StackOverflow, f.Kind)
}

func TestActivationOverflow(t *testing.T) {
	s := NewStack(1, 8)
	require.NoError(t, s.PushFrame(0))

	err := s.PushFrame(0)
	require.Error(t, err)
	var f *Fault
	require.ErrorAs(t, err, &f)
	require.Equal(t, StackOverflow, f.Kind)
}

func TestSetVarTargetsLocalUnlessGlobalAlreadyBound(t *testing.T) {
	s := NewStack(4, 8)
	s.Global().Set("g", value.NewInt(1))
	require.NoError(t, s.PushFrame(0))

	// "g" is already global: SetVar must update the global, not shadow it.
	s.SetVar("g", value.NewInt(2))
	v, ok := s.Global().Get("g")
	require.True(t, ok)
	require.Equal(t, int64(2), v.IntValue())

	// "x" is new: SetVar binds it in the current (local) scope only.
	s.SetVar("x", value.NewInt(9))
	require.False(t, s.Global().Contains("x"))
	v, ok = s.GetVar("x")
	require.True(t, ok)
	require.Equal(t, int64(9), v.IntValue())

	_, err := s.PopFrame()
	require.NoError(t, err)
	_, ok = s.GetVar("x")
	require.False(t, ok, "local binding must not leak past its frame")
}

func TestReturnedFrameClearsOrphanedOperands(t *testing.T) {
	s := NewStack(4, 8)
	require.NoError(t, s.PushFrame(0))
	require.NoError(t, s.Push(value.NewInt(1)))
	require.NoError(t, s.Push(value.NewInt(2)))

	returnPC, err := s.PopFrame()
	require.NoError(t, err)
	require.Equal(t, 0, returnPC)
	require.Equal(t, 0, s.OperandDepth())
}

func TestScopeCaseInsensitiveLookup(t *testing.T) {
	sc := NewScope()
	sc.Set("Count", value.NewInt(1))
	v, ok := sc.Get("count")
	require.True(t, ok)
	require.Equal(t, int64(1), v.IntValue())
}

func TestScopeReadOnlyRejectsWrites(t *testing.T) {
	sc := NewScope()
	sc.SetReadOnly("pi", value.NewFloat(3.14))
	sc.Set("pi", value.NewFloat(0))
	v, ok := sc.Get("pi")
	require.True(t, ok)
	require.Equal(t, 3.14, v.FloatValue())
}
