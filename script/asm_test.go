package script_test

import (
	"testing"

	"github.com/rookscript/rookscript/script"
	"github.com/stretchr/testify/require"
)

const arithSrc = `
entry: main 0 L0
L0:
    PUSH 2
    PUSH 3
    PUSH 4
    MULTIPLY
    ADD
    RETURN
`

func TestAssembleAndDisassembleRoundTrip(t *testing.T) {
	s, err := script.Assemble(arithSrc)
	require.NoError(t, err)
	require.Equal(t, 6, s.Len())

	e, ok := s.EntryPoint("main")
	require.True(t, ok)
	require.Equal(t, 0, e.ParamCount)
	require.Equal(t, 0, e.Index)

	idx := s.LabelIndex("L0")
	require.Equal(t, 0, idx)
	require.Equal(t, -1, s.LabelIndex("nope"))

	out := script.Disassemble(s)
	s2, err := script.Assemble(out)
	require.NoError(t, err)
	require.Equal(t, s.Len(), s2.Len())
}

func TestAssembleUnknownLabel(t *testing.T) {
	_, err := script.Assemble("entry: main 0 missing\nL0:\n  RETURN\n")
	require.Error(t, err)
}

func TestAssembleUnknownOpcode(t *testing.T) {
	_, err := script.Assemble("entry: main 0 L0\nL0:\n  FROBNICATE\n")
	require.Error(t, err)
}
