// Package regexfn provides regular-expression host functions built on
// github.com/coregx/coregex, the regex engine the kolkov-uawk example wraps
// for its own pattern matching (internal/runtime/regex.go). Patterns are
// compiled on every call rather than cached, since host Functions in this
// library are stateless resolve.Function values with no Instance-scoped
// lifetime to hang a cache off of.
package regexfn

import (
	"github.com/coregx/coregex"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/value"
)

// Functions returns the regex.* host functions, ready to register under a
// namespace via resolve.Namespace or vm.Builder.WithNamedFunctionResolver.
func Functions() resolve.Functions {
	return resolve.Functions{
		&resolve.NativeFunction{
			FuncName:  "match",
			Arity:     2,
			FuncUsage: "regex.match(pattern, subject) -> bool",
			Errors:    true,
			Run:       runMatch,
		},
		&resolve.NativeFunction{
			FuncName:  "find",
			Arity:     2,
			FuncUsage: "regex.find(pattern, subject) -> string or null",
			Errors:    true,
			Run:       runFind,
		},
		&resolve.NativeFunction{
			FuncName:  "replace",
			Arity:     3,
			FuncUsage: "regex.replace(pattern, subject, replacement) -> string",
			Errors:    true,
			Run:       runReplace,
		},
		&resolve.NativeFunction{
			FuncName:  "split",
			Arity:     2,
			FuncUsage: "regex.split(pattern, subject) -> list of string",
			Errors:    true,
			Run:       runSplit,
		},
	}
}

func runMatch(_ resolve.Machine, args []value.Value) (value.Value, error) {
	re, err := coregex.Compile(args[0].Str())
	if err != nil {
		return value.NullValue, err
	}
	return value.NewBool(re.MatchString(args[1].Str())), nil
}

func runFind(_ resolve.Machine, args []value.Value) (value.Value, error) {
	re, err := coregex.Compile(args[0].Str())
	if err != nil {
		return value.NullValue, err
	}
	subject := args[1].Str()
	loc := re.FindStringIndex(subject)
	if loc == nil {
		return value.NullValue, nil
	}
	return value.NewString(subject[loc[0]:loc[1]]), nil
}

func runReplace(_ resolve.Machine, args []value.Value) (value.Value, error) {
	re, err := coregex.Compile(args[0].Str())
	if err != nil {
		return value.NullValue, err
	}
	return value.NewString(re.ReplaceAllString(args[1].Str(), args[2].Str())), nil
}

func runSplit(_ resolve.Machine, args []value.Value) (value.Value, error) {
	re, err := coregex.Compile(args[0].Str())
	if err != nil {
		return value.NullValue, err
	}
	parts := re.Split(args[1].Str(), -1)
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.NewString(p)
	}
	return value.NewListValue(elems...), nil
}
