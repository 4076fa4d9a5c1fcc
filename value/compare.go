package value

import (
	"math"
	"strings"
)

func isNaN(v Value) bool {
	return v.Kind() == Float && math.IsNaN(v.FloatValue())
}

// Compare implements the three-valued ordering used by LESS, LESS_OR_EQUAL,
// GREATER and GREATER_OR_EQUAL. Numeric ordering promotes to the wider of
// the two operand types (bool < int < float < string); any pairing that
// does not land on that ladder (lists, maps, buffers, errors, objects,
// iterators, null, or a mix with one of the above) falls back to comparing
// the String() representations, per spec.md section 3's rule for mixed
// string/object comparisons, generalized to every non-scalar pairing.
//
// comparable is false when either operand is a float NaN: NaN participates
// in no ordering relation (spec.md section 8, testable property 4).
func Compare(x, y Value) (cmp int, comparable bool) {
	if isNaN(x) || isNaN(y) {
		return 0, false
	}
	switch promote(x, y) {
	case Bool:
		return int(toInt(x) - toInt(y)), true
	case Int:
		xi, yi := toInt(x), toInt(y)
		switch {
		case xi < yi:
			return -1, true
		case xi > yi:
			return 1, true
		default:
			return 0, true
		}
	case Float:
		xf, yf := toFloat(x), toFloat(y)
		switch {
		case xf < yf:
			return -1, true
		case xf > yf:
			return 1, true
		default:
			return 0, true
		}
	default:
		return strings.Compare(x.String(), y.String()), true
	}
}

// Equal implements value-equality (used by ==/!=): collection and reference
// kinds compare structurally when both operands share that kind; scalar
// kinds coerce per Compare; a NaN operand never equals anything.
func Equal(x, y Value) bool {
	if x.Kind() == Null || y.Kind() == Null {
		return x.Kind() == Null && y.Kind() == Null
	}
	if x.Kind() == List && y.Kind() == List {
		return x.ListRef().Equal(y.ListRef())
	}
	if x.Kind() == Map && y.Kind() == Map {
		return x.MapRef().Equal(y.MapRef())
	}
	if x.Kind() == Buffer && y.Kind() == Buffer {
		return x.BufferRef() == y.BufferRef()
	}
	if x.Kind() == Error && y.Kind() == Error {
		e1, e2 := x.ErrorRef(), y.ErrorRef()
		return e1.Kind == e2.Kind && e1.Message == e2.Message
	}
	if x.Kind() == Object && y.Kind() == Object {
		return x.ObjectRef() == y.ObjectRef()
	}
	if x.Kind() == IteratorKind || y.Kind() == IteratorKind {
		return false
	}
	if isNaN(x) || isNaN(y) {
		return false
	}
	cmp, ok := Compare(x, y)
	return ok && cmp == 0
}

// StrictEqual implements === (and, negated, !==): differing type tags are
// never equal; no coercion is performed. Reference kinds that are
// value-typed (list/map) compare element-wise; opaque objects compare by
// identity. A NaN never strict-equals anything, including another NaN with a
// different bit pattern, and not even itself (spec.md section 8, testable
// property 4).
func StrictEqual(x, y Value) bool {
	if x.Kind() != y.Kind() {
		return false
	}
	switch x.Kind() {
	case Null:
		return true
	case Bool:
		return x.BoolValue() == y.BoolValue()
	case Int:
		return x.IntValue() == y.IntValue()
	case Float:
		xf, yf := x.FloatValue(), y.FloatValue()
		if math.IsNaN(xf) || math.IsNaN(yf) {
			return false
		}
		return xf == yf
	case String:
		return x.Str() == y.Str()
	case List:
		return x.ListRef().Equal(y.ListRef())
	case Map:
		return x.MapRef().Equal(y.MapRef())
	case Buffer:
		return x.BufferRef() == y.BufferRef()
	case Error:
		e1, e2 := x.ErrorRef(), y.ErrorRef()
		return e1 == e2 || (e1.Kind == e2.Kind && e1.Message == e2.Message)
	case Object:
		return x.ObjectRef() == y.ObjectRef()
	case IteratorKind:
		return x.IteratorRef() == y.IteratorRef()
	default:
		return false
	}
}
