// Package value implements the tagged Value representation shared by every
// component of the RookScript runtime: the operand stack, the variable
// scopes, the instruction set and the host-function ABI all pass Values
// around rather than language-specific Go types.
//
// Value is a closed sum type, not an interface hierarchy: a single struct
// holds a Kind tag plus either a 64-bit raw payload (bool/int/float, bit-cast)
// or a reference to a heap-allocated body (string/list/map/buffer/error/
// object/iterator). Dispatch is a switch on Kind, which keeps the hot
// interpreter loop free of interface-method indirection.
package value

import (
	"fmt"
	"math"
)

// Kind identifies which variant of Value is active.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	List
	Map
	Buffer
	Error
	Object
	IteratorKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	case Buffer:
		return "buffer"
	case Error:
		return "error"
	case Object:
		return "objectref"
	case IteratorKind:
		return "iterator"
	default:
		return "unknown"
	}
}

// Value is the tagged union manipulated by the machine. The zero Value is
// Null. Values are copied by value; Set replaces the active variant and
// drops any previously held reference.
type Value struct {
	kind Kind
	num  uint64 // raw payload for Bool/Int/Float
	ref  any    // string / *ListValue / *MapValue / *BufferValue / *ErrorValue / object / Iterator
}

// NullValue is the canonical null Value.
var NullValue = Value{kind: Null}

// NewNull returns the null Value.
func NewNull() Value { return NullValue }

// NewBool returns a boolean Value.
func NewBool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{kind: Bool, num: n}
}

// NewInt returns an integer Value.
func NewInt(i int64) Value {
	return Value{kind: Int, num: uint64(i)}
}

// NewFloat returns a floating-point Value.
func NewFloat(f float64) Value {
	return Value{kind: Float, num: math.Float64bits(f)}
}

// NewString returns a string Value.
func NewString(s string) Value {
	return Value{kind: String, ref: s}
}

// NewObject wraps an opaque host reference as an object Value. Two object
// Values are strict-equal only if they wrap the identical reference.
func NewObject(ref any) Value {
	return Value{kind: Object, ref: ref}
}

// NewIteratorValue wraps an Iterator as an iterator Value.
func NewIteratorValue(it Iterator) Value {
	return Value{kind: IteratorKind, ref: it}
}

// Kind reports which variant is active.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == Null }

// BoolValue returns the raw boolean payload; only meaningful when Kind()==Bool.
func (v Value) BoolValue() bool { return v.num != 0 }

// IntValue returns the raw integer payload; only meaningful when Kind()==Int.
func (v Value) IntValue() int64 { return int64(v.num) }

// FloatValue returns the raw float payload; only meaningful when Kind()==Float.
func (v Value) FloatValue() float64 { return math.Float64frombits(v.num) }

// Str returns the string payload; only meaningful when Kind()==String.
func (v Value) Str() string {
	s, _ := v.ref.(string)
	return s
}

// ListRef returns the backing *ListValue; only meaningful when Kind()==List.
func (v Value) ListRef() *ListValue {
	l, _ := v.ref.(*ListValue)
	return l
}

// MapRef returns the backing *MapValue; only meaningful when Kind()==Map.
func (v Value) MapRef() *MapValue {
	m, _ := v.ref.(*MapValue)
	return m
}

// BufferRef returns the backing *BufferValue; only meaningful when
// Kind()==Buffer.
func (v Value) BufferRef() *BufferValue {
	b, _ := v.ref.(*BufferValue)
	return b
}

// ErrorRef returns the backing *ErrorValue; only meaningful when
// Kind()==Error.
func (v Value) ErrorRef() *ErrorValue {
	e, _ := v.ref.(*ErrorValue)
	return e
}

// ObjectRef returns the opaque host reference; only meaningful when
// Kind()==Object.
func (v Value) ObjectRef() any { return v.ref }

// IteratorRef returns the backing Iterator; only meaningful when
// Kind()==IteratorKind.
func (v Value) IteratorRef() Iterator {
	it, _ := v.ref.(Iterator)
	return it
}

// NewListValue returns a Value wrapping a new list holding a copy of elems
// (empty when none are given).
func NewListValue(elems ...Value) Value {
	return Value{kind: List, ref: newListValue(elems)}
}

// NewMapValue returns a Value wrapping a new, empty map.
func NewMapValue() Value {
	return Value{kind: Map, ref: newMapValue()}
}

// NewBufferValue returns a Value wrapping a fixed-size buffer of n zeroed
// octets.
func NewBufferValue(n int) Value {
	return Value{kind: Buffer, ref: newBufferValue(n)}
}

// NewErrorValue returns an Error Value with the given kind tag and message.
func NewErrorValue(kind, message string) Value {
	return Value{kind: Error, ref: &ErrorValue{Kind: kind, Message: message}}
}

// Truth implements the coercion-to-boolean rules of spec.md section 3:
// null is false; bool is itself; numeric is (!=0 && !NaN); string/list/map/
// buffer are (size>0); object/iterator are true; error is true.
func (v Value) Truth() bool {
	switch v.kind {
	case Null:
		return false
	case Bool:
		return v.BoolValue()
	case Int:
		return v.IntValue() != 0
	case Float:
		f := v.FloatValue()
		return f != 0 && !math.IsNaN(f)
	case String:
		return len(v.Str()) > 0
	case List:
		return v.ListRef().Len() > 0
	case Map:
		return v.MapRef().Len() > 0
	case Buffer:
		return v.BufferRef().Len() > 0
	case Error, Object, IteratorKind:
		return true
	default:
		return false
	}
}

// String renders a human-readable representation of v, used for debugging,
// string coercion and string concatenation.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		if v.BoolValue() {
			return "true"
		}
		return "false"
	case Int:
		return fmt.Sprintf("%d", v.IntValue())
	case Float:
		f := v.FloatValue()
		if math.IsNaN(f) {
			return "NaN"
		}
		return formatFloat(f)
	case String:
		return v.Str()
	case List:
		return v.ListRef().String()
	case Map:
		return v.MapRef().String()
	case Buffer:
		return v.BufferRef().String()
	case Error:
		e := v.ErrorRef()
		return fmt.Sprintf("ERROR[%s]: %s", e.Kind, e.Message)
	case Object:
		return fmt.Sprintf("object(%p)", v.ref)
	case IteratorKind:
		return "iterator"
	default:
		return "?"
	}
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return fmt.Sprintf("%g", f)
}

// Len reports the spec's "size" semantics used by truthiness and by the
// host-exposed length operation: string byte length, list/map element count,
// buffer capacity, 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case String:
		return len(v.Str())
	case List:
		return v.ListRef().Len()
	case Map:
		return v.MapRef().Len()
	case Buffer:
		return v.BufferRef().Len()
	default:
		return 0
	}
}
