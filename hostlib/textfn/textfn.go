// Package textfn provides multi-pattern string-scanning host functions
// built on github.com/coregx/ahocorasick, an indirect dependency of
// coregex already present in the retrieval pack. It gives the
// "strings"-adjacent host-library concern spec.md §1 scopes out of the
// core a second, non-regex implementation: scanning a string against a set
// of literal needles in a single pass, rather than one coregex.Compile per
// needle.
package textfn

import (
	"github.com/coregx/ahocorasick"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/value"
)

// Functions returns the strings.* multi-pattern host functions.
func Functions() resolve.Functions {
	return resolve.Functions{
		&resolve.NativeFunction{
			FuncName:  "find_any",
			Arity:     2,
			FuncUsage: "strings.find_any(subject, needles) -> list of matched needle",
			Errors:    true,
			Run:       runFindAny,
		},
		&resolve.NativeFunction{
			FuncName:  "count_any",
			Arity:     2,
			FuncUsage: "strings.count_any(subject, needles) -> integer",
			Errors:    true,
			Run:       runCountAny,
		},
	}
}

func needles(v value.Value) []string {
	if v.Kind() != value.List {
		return nil
	}
	l := v.ListRef()
	out := make([]string, l.Len())
	for i := 0; i < l.Len(); i++ {
		out[i] = l.Get(i).String()
	}
	return out
}

func runFindAny(_ resolve.Machine, args []value.Value) (value.Value, error) {
	m := ahocorasick.NewStringMatcher(needles(args[1]))
	hits := m.Match([]byte(args[0].Str()))
	dict := needles(args[1])
	elems := make([]value.Value, 0, len(hits))
	for _, i := range hits {
		if i >= 0 && i < len(dict) {
			elems = append(elems, value.NewString(dict[i]))
		}
	}
	return value.NewListValue(elems...), nil
}

func runCountAny(_ resolve.Machine, args []value.Value) (value.Value, error) {
	m := ahocorasick.NewStringMatcher(needles(args[1]))
	hits := m.Match([]byte(args[0].Str()))
	return value.NewInt(int64(len(hits))), nil
}
