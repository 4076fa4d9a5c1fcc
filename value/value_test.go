package value_test

import (
	"math"
	"testing"

	"github.com/rookscript/rookscript/value"
	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want bool
	}{
		{"null", value.NewNull(), false},
		{"false", value.NewBool(false), false},
		{"true", value.NewBool(true), true},
		{"zero int", value.NewInt(0), false},
		{"nonzero int", value.NewInt(-1), true},
		{"zero float", value.NewFloat(0), false},
		{"nan float", value.NewFloat(math.NaN()), false},
		{"nonzero float", value.NewFloat(0.1), true},
		{"empty string", value.NewString(""), false},
		{"nonempty string", value.NewString("x"), true},
		{"empty list", value.NewListValue(), false},
		{"nonempty list", value.NewListValue(value.NewInt(1)), true},
		{"empty map", value.NewMapValue(), false},
		{"error", value.NewErrorValue("E", "m"), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.v.Truth())
		})
	}
}

func TestArithmeticPromotion(t *testing.T) {
	sum := value.Add(value.NewInt(2), value.Mul(value.NewInt(3), value.NewInt(4)))
	require.Equal(t, value.Int, sum.Kind())
	require.Equal(t, int64(14), sum.IntValue())

	concat := value.Add(value.NewString("a"), value.NewInt(1))
	require.Equal(t, "a1", concat.Str())

	or := value.Add(value.NewBool(true), value.NewBool(false))
	require.True(t, or.BoolValue())

	and := value.Mul(value.NewBool(true), value.NewBool(false))
	require.False(t, and.BoolValue())

	sub := value.Sub(value.NewBool(true), value.NewBool(false))
	require.True(t, sub.BoolValue())
}

func TestDivModByZero(t *testing.T) {
	d := value.Div(value.NewInt(1), value.NewInt(0))
	require.Equal(t, value.Float, d.Kind())
	require.True(t, math.IsNaN(d.FloatValue()))

	m := value.Mod(value.NewInt(5), value.NewInt(0))
	require.Equal(t, value.Float, m.Kind())
	require.True(t, math.IsNaN(m.FloatValue()))

	fd := value.Div(value.NewFloat(1), value.NewFloat(0))
	require.True(t, math.IsInf(fd.FloatValue(), 1))
}

func TestNaNEquality(t *testing.T) {
	n1 := value.NewFloat(math.NaN())
	n2 := value.NewFloat(math.Float64frombits(math.Float64bits(math.NaN()) ^ 1))
	require.False(t, value.Equal(n1, n1))
	require.False(t, value.StrictEqual(n1, n1))
	require.False(t, value.StrictEqual(n1, n2))
}

func TestLogicalNoOp(t *testing.T) {
	for _, v := range []value.Value{value.NewInt(0), value.NewInt(5), value.NewString(""), value.NewString("x")} {
		once := value.Logical(v)
		twice := value.Logical(once)
		require.Equal(t, once, twice)
	}
}

func TestNotEqualsLogicalNot(t *testing.T) {
	for _, v := range []value.Value{value.NewInt(0), value.NewInt(5), value.NewBool(true), value.NewString("")} {
		b, _ := value.CoerceTo(v, value.Bool)
		require.Equal(t, value.Not(v), value.Not(b))
	}
}

func TestRoundTripCoercion(t *testing.T) {
	i := value.NewInt(42)
	s, err := value.CoerceTo(i, value.String)
	require.NoError(t, err)
	require.Equal(t, "42", s.Str())
	back, err := value.CoerceTo(s, value.Int)
	require.NoError(t, err)
	require.Equal(t, int64(42), back.IntValue())

	f := value.NewFloat(3.5)
	fs, _ := value.CoerceTo(f, value.String)
	fback, _ := value.CoerceTo(fs, value.Float)
	require.Equal(t, 3.5, fback.FloatValue())
}

func TestListStrictEqualComparesElements(t *testing.T) {
	l1 := value.NewListValue(value.NewInt(1), value.NewInt(2))
	l2 := value.NewListValue(value.NewInt(1), value.NewInt(2))
	require.True(t, value.StrictEqual(l1, l2))
	l2.ListRef().Set(0, value.NewInt(9))
	require.False(t, value.StrictEqual(l1, l2))
}

func TestListOutOfRange(t *testing.T) {
	l := value.NewListValue(value.NewInt(1))
	require.True(t, l.ListRef().Get(5).IsNull())
	l.ListRef().Set(5, value.NewInt(9)) // no-op, must not panic
	require.Equal(t, 1, l.ListRef().Len())
}

func TestBufferBoundsError(t *testing.T) {
	b := value.NewBufferValue(4)
	r := b.BufferRef().ReadByte(10, false)
	require.Equal(t, value.Error, r.Kind())
	require.Equal(t, "BufferBounds", r.ErrorRef().Kind)

	ok := b.BufferRef().WriteByte(0, false, 0xFF)
	require.True(t, ok.IsNull())
	require.Equal(t, int64(0xFF), b.BufferRef().ReadByte(0, false).IntValue())
}
