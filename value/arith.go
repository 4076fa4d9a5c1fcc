package value

import "math"

// promote returns the Kind both operands should be co-promoted to before an
// arithmetic or bitwise operation runs, per spec.md section 3's ladder
// bool < int < float < string. Non-scalar kinds (list/map/buffer/error/
// object/iterator/null) are never the promoted type for arithmetic; callers
// fall back to Float NaN for those, per the open question in spec.md's
// design notes about "list + list".
func promote(x, y Value) Kind {
	rx, ry := rank(x.Kind()), rank(y.Kind())
	if rx < 0 || ry < 0 {
		return -1
	}
	if rx >= ry {
		return x.Kind()
	}
	return y.Kind()
}

// Add implements the ADD opcode: co-promoted arithmetic, string
// concatenation, or boolean OR, per spec.md section 4.1.
func Add(x, y Value) Value {
	switch promote(x, y) {
	case Bool:
		return NewBool(x.Truth() || y.Truth())
	case Int:
		xi, _ := CoerceTo(x, Int)
		yi, _ := CoerceTo(y, Int)
		return NewInt(xi.IntValue() + yi.IntValue())
	case Float:
		return NewFloat(toFloat(x) + toFloat(y))
	case String:
		return NewString(x.String() + y.String())
	default:
		return NewFloat(math.NaN())
	}
}

// Sub implements the SUBTRACT opcode: co-promoted subtraction, or boolean
// "a and not b", per spec.md section 4.1.
func Sub(x, y Value) Value {
	switch promote(x, y) {
	case Bool:
		return NewBool(x.Truth() && !y.Truth())
	case Int:
		return NewInt(toInt(x) - toInt(y))
	case Float, String:
		return NewFloat(toFloat(x) - toFloat(y))
	default:
		return NewFloat(math.NaN())
	}
}

// Mul implements the MULTIPLY opcode: co-promoted multiplication, or boolean
// AND, per spec.md section 4.1.
func Mul(x, y Value) Value {
	switch promote(x, y) {
	case Bool:
		return NewBool(x.Truth() && y.Truth())
	case Int:
		return NewInt(toInt(x) * toInt(y))
	case Float, String:
		return NewFloat(toFloat(x) * toFloat(y))
	default:
		return NewFloat(math.NaN())
	}
}

// Div implements the DIVIDE opcode. Integer division by zero yields Float
// NaN rather than an exception; float division by 0.0 yields IEEE infinity
// (the asymmetry is intentional, per spec.md section 4.1 and the design
// notes' open question).
func Div(x, y Value) Value {
	switch promote(x, y) {
	case Bool, Int:
		xi, yi := toInt(x), toInt(y)
		if yi == 0 {
			return NewFloat(math.NaN())
		}
		if xi%yi == 0 {
			return NewInt(xi / yi)
		}
		return NewFloat(float64(xi) / float64(yi))
	case Float, String:
		return NewFloat(toFloat(x) / toFloat(y))
	default:
		return NewFloat(math.NaN())
	}
}

// Mod implements the MODULO opcode, with the same zero-divisor asymmetry as
// Div.
func Mod(x, y Value) Value {
	switch promote(x, y) {
	case Bool, Int:
		xi, yi := toInt(x), toInt(y)
		if yi == 0 {
			return NewFloat(math.NaN())
		}
		return NewInt(xi % yi)
	case Float, String:
		return NewFloat(math.Mod(toFloat(x), toFloat(y)))
	default:
		return NewFloat(math.NaN())
	}
}

// And implements the AND opcode: logical AND on bools, 64-bit bitwise AND on
// ints, bit-pattern AND (reinterpreted) on floats.
func And(x, y Value) Value { return bitwise(x, y, func(a, b int64) int64 { return a & b }, func(a, b bool) bool { return a && b }) }

// Or implements the OR opcode.
func Or(x, y Value) Value { return bitwise(x, y, func(a, b int64) int64 { return a | b }, func(a, b bool) bool { return a || b }) }

// Xor implements the XOR opcode.
func Xor(x, y Value) Value {
	return bitwise(x, y, func(a, b int64) int64 { return a ^ b }, func(a, b bool) bool { return a != b })
}

func bitwise(x, y Value, intOp func(a, b int64) int64, boolOp func(a, b bool) bool) Value {
	switch promote(x, y) {
	case Bool:
		return NewBool(boolOp(x.Truth(), y.Truth()))
	case Int:
		return NewInt(intOp(toInt(x), toInt(y)))
	case Float:
		bits := intOp(int64(math.Float64bits(toFloat(x))), int64(math.Float64bits(toFloat(y))))
		return NewFloat(math.Float64frombits(uint64(bits)))
	default:
		return NewFloat(math.NaN())
	}
}

// Shl implements the LEFT_SHIFT opcode. Shifts are defined only for ints and
// floats (truncated to int64); any other promoted type yields Float NaN.
func Shl(x, y Value) Value {
	if p := promote(x, y); p != Int && p != Float {
		return NewFloat(math.NaN())
	}
	return NewInt(toInt(x) << (uint(toInt(y)) % 64))
}

// Shr implements the RIGHT_SHIFT opcode (arithmetic, sign-extending).
func Shr(x, y Value) Value {
	if p := promote(x, y); p != Int && p != Float {
		return NewFloat(math.NaN())
	}
	return NewInt(toInt(x) >> (uint(toInt(y)) % 64))
}

// ShrPadded implements the RIGHT_SHIFT_PADDED opcode (logical/unsigned
// shift).
func ShrPadded(x, y Value) Value {
	if p := promote(x, y); p != Int && p != Float {
		return NewFloat(math.NaN())
	}
	return NewInt(int64(uint64(toInt(x)) >> (uint(toInt(y)) % 64)))
}

// Not implements both the NOT and LOGICAL_NOT opcodes: boolean negation of
// the coerced truth value. Testable property 3 in spec.md section 8 requires
// that NOT on any value equal LOGICAL_NOT on its boolean coercion, so the two
// opcodes share this single implementation.
func Not(x Value) Value { return NewBool(!x.Truth()) }

// Negate implements the NEGATE opcode: arithmetic negation, preserving the
// operand's int/float-ness.
func Negate(x Value) Value {
	switch x.Kind() {
	case Int:
		return NewInt(-x.IntValue())
	case Bool:
		return NewInt(-toInt(x))
	default:
		return NewFloat(-toFloat(x))
	}
}

// Absolute implements the ABSOLUTE opcode.
func Absolute(x Value) Value {
	switch x.Kind() {
	case Int:
		i := x.IntValue()
		if i < 0 {
			i = -i
		}
		return NewInt(i)
	case Bool:
		return NewInt(toInt(x))
	default:
		return NewFloat(math.Abs(toFloat(x)))
	}
}

// Logical implements the LOGICAL opcode: canonicalize to a Bool Value.
// Applying it twice is a no-op (spec.md section 8, testable property 3).
func Logical(x Value) Value { return NewBool(x.Truth()) }
