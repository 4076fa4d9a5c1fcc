package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/value"
)

func TestBufferTypedAccessorsRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		size  int
		write func(b *value.BufferValue)
		read  func(b *value.BufferValue) value.Value
		want  value.Value
	}{
		{
			name: "short",
			size: 2,
			write: func(b *value.BufferValue) { b.WriteShort(0, false, -1234) },
			read:  func(b *value.BufferValue) value.Value { return b.ReadShort(0, false) },
			want:  value.NewInt(-1234),
		},
		{
			name: "int",
			size: 4,
			write: func(b *value.BufferValue) { b.WriteInt(0, false, -123456789) },
			read:  func(b *value.BufferValue) value.Value { return b.ReadInt(0, false) },
			want:  value.NewInt(-123456789),
		},
		{
			name: "long",
			size: 8,
			write: func(b *value.BufferValue) { b.WriteLong(0, false, -123456789012345) },
			read:  func(b *value.BufferValue) value.Value { return b.ReadLong(0, false) },
			want:  value.NewInt(-123456789012345),
		},
		{
			name: "float",
			size: 4,
			write: func(b *value.BufferValue) { b.WriteFloat(0, false, 3.5) },
			read:  func(b *value.BufferValue) value.Value { return b.ReadFloat(0, false) },
			want:  value.NewFloat(3.5),
		},
		{
			name: "double",
			size: 8,
			write: func(b *value.BufferValue) { b.WriteDouble(0, false, 3.14159265) },
			read:  func(b *value.BufferValue) value.Value { return b.ReadDouble(0, false) },
			want:  value.NewFloat(3.14159265),
		},
		{
			name: "string",
			size: 5,
			write: func(b *value.BufferValue) { b.WriteString(0, false, "hello") },
			read:  func(b *value.BufferValue) value.Value { return b.ReadString(0, 5, false) },
			want:  value.NewString("hello"),
		},
	}

	for _, endian := range []value.Endian{value.LittleEndian, value.BigEndian} {
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				buf := value.NewBufferValue(tc.size)
				b := buf.BufferRef()
				b.SetEndian(endian)
				tc.write(b)
				got := tc.read(b)
				require.True(t, value.StrictEqual(tc.want, got))
			})
		}
	}
}

func TestBufferCursorAdvancesByAccessorSize(t *testing.T) {
	buf := value.NewBufferValue(8)
	b := buf.BufferRef()

	b.WriteInt(0, true, 7)
	require.Equal(t, 4, b.Cursor())
	b.WriteInt(0, true, 9)
	require.Equal(t, 8, b.Cursor())

	b.SeekCursor(0)
	require.Equal(t, int64(7), b.ReadInt(0, true).IntValue())
	require.Equal(t, 4, b.Cursor())
	require.Equal(t, int64(9), b.ReadInt(0, true).IntValue())
	require.Equal(t, 8, b.Cursor())
}

func TestBufferEndianessAffectsByteOrder(t *testing.T) {
	little := value.NewBufferValue(2)
	little.BufferRef().SetEndian(value.LittleEndian)
	little.BufferRef().WriteShort(0, false, 0x0102)

	big := value.NewBufferValue(2)
	big.BufferRef().SetEndian(value.BigEndian)
	big.BufferRef().WriteShort(0, false, 0x0102)

	require.NotEqual(t, little.BufferRef().Bytes(), big.BufferRef().Bytes())
}
