// Package jsonfn provides JSON host functions built on github.com/tidwall/gjson
// and github.com/tidwall/sjson, the pair the CWBudde-go-dws example uses for
// JSON access, converting directly between JSON text and a RookScript Value
// tree without an intermediate encoding/json struct.
package jsonfn

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/rookscript/rookscript/hostlib"
	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/value"
)

// Functions returns the json.* host functions.
func Functions() resolve.Functions {
	return resolve.Functions{
		&resolve.NativeFunction{
			FuncName:  "parse",
			Arity:     1,
			FuncUsage: "json.parse(text) -> value",
			Errors:    true,
			Run:       runParse,
		},
		&resolve.NativeFunction{
			FuncName:  "get",
			Arity:     2,
			FuncUsage: "json.get(text, path) -> value",
			Errors:    true,
			Run:       runGet,
		},
		&resolve.NativeFunction{
			FuncName:  "set",
			Arity:     3,
			FuncUsage: "json.set(text, path, value) -> text",
			Errors:    true,
			Run:       runSet,
		},
	}
}

func runParse(_ resolve.Machine, args []value.Value) (value.Value, error) {
	text := args[0].Str()
	if !gjson.Valid(text) {
		return value.NullValue, &value.ErrorValue{Kind: "JSON", Message: "invalid JSON document"}
	}
	return fromResult(gjson.Parse(text)), nil
}

func runGet(_ resolve.Machine, args []value.Value) (value.Value, error) {
	res := gjson.Get(args[0].Str(), args[1].Str())
	if !res.Exists() {
		return value.NullValue, nil
	}
	return fromResult(res), nil
}

func runSet(_ resolve.Machine, args []value.Value) (value.Value, error) {
	out, err := sjson.Set(args[0].Str(), args[1].Str(), hostlib.ToAny(args[2]))
	if err != nil {
		return value.NullValue, err
	}
	return value.NewString(out), nil
}

// fromResult converts a gjson.Result into a Value, preserving object/array
// element order (gjson.ForEach walks the source document in encounter
// order, unlike a map[string]any round-trip).
func fromResult(res gjson.Result) value.Value {
	switch {
	case res.IsArray():
		var elems []value.Value
		res.ForEach(func(_, v gjson.Result) bool {
			elems = append(elems, fromResult(v))
			return true
		})
		return value.NewListValue(elems...)
	case res.IsObject():
		m := value.NewMapValue()
		res.ForEach(func(k, v gjson.Result) bool {
			m.MapRef().Set(k.String(), fromResult(v))
			return true
		})
		return m
	case res.Type == gjson.Null:
		return value.NullValue
	case res.Type == gjson.True || res.Type == gjson.False:
		return value.NewBool(res.Bool())
	case res.Type == gjson.Number:
		return value.NewFloat(res.Float())
	default:
		return value.NewString(res.String())
	}
}
