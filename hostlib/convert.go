// Package hostlib holds the reference host-function libraries that exercise
// the resolve.HostFunctionResolver contract spec.md §4.5 defines but leaves
// unimplemented in the core: a standard host-function library itself is an
// explicit non-goal of the core, per spec.md §1. The sub-packages
// (regexfn, textfn, jsonfn, yamlfn) are one example host embedding's worth
// of functions, each grounded on a domain library surfaced by the retrieval
// pack.
package hostlib

import "github.com/rookscript/rookscript/value"

// ToAny converts a Value into the closest plain Go representation
// (map[string]any, []any, string, float64, bool, nil), the shape
// encoding/json-adjacent libraries such as gjson/sjson and go-yaml expect.
func ToAny(v value.Value) any {
	switch v.Kind() {
	case value.Null:
		return nil
	case value.Bool:
		return v.BoolValue()
	case value.Int:
		return float64(v.IntValue())
	case value.Float:
		return v.FloatValue()
	case value.String:
		return v.Str()
	case value.List:
		l := v.ListRef()
		out := make([]any, l.Len())
		for i := 0; i < l.Len(); i++ {
			out[i] = ToAny(l.Get(i))
		}
		return out
	case value.Map:
		m := v.MapRef()
		out := make(map[string]any, m.Len())
		for _, k := range m.Keys() {
			vv, _ := m.Get(k)
			out[k] = ToAny(vv)
		}
		return out
	default:
		return v.String()
	}
}

// FromAny converts a plain Go value (as produced by a JSON/YAML decoder)
// into a Value.
func FromAny(a any) value.Value {
	switch x := a.(type) {
	case nil:
		return value.NullValue
	case bool:
		return value.NewBool(x)
	case float64:
		return value.NewFloat(x)
	case int:
		return value.NewInt(int64(x))
	case int64:
		return value.NewInt(x)
	case uint64:
		return value.NewInt(int64(x))
	case string:
		return value.NewString(x)
	case []any:
		elems := make([]value.Value, len(x))
		for i, e := range x {
			elems[i] = FromAny(e)
		}
		return value.NewListValue(elems...)
	case map[string]any:
		m := value.NewMapValue()
		for k, v := range x {
			m.MapRef().Set(k, FromAny(v))
		}
		return m
	default:
		return value.NullValue
	}
}
