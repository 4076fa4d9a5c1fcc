// Package yamlfn provides YAML host functions built on github.com/goccy/go-yaml,
// an indirect dependency of the CWBudde-go-dws example, covering the
// structured-configuration host-library concern spec.md §1 leaves to hosts.
package yamlfn

import (
	"github.com/goccy/go-yaml"

	"github.com/rookscript/rookscript/hostlib"
	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/value"
)

// Functions returns the yaml.* host functions.
func Functions() resolve.Functions {
	return resolve.Functions{
		&resolve.NativeFunction{
			FuncName:  "parse",
			Arity:     1,
			FuncUsage: "yaml.parse(text) -> value",
			Errors:    true,
			Run:       runParse,
		},
		&resolve.NativeFunction{
			FuncName:  "format",
			Arity:     1,
			FuncUsage: "yaml.format(value) -> text",
			Errors:    true,
			Run:       runFormat,
		},
	}
}

func runParse(_ resolve.Machine, args []value.Value) (value.Value, error) {
	var decoded any
	if err := yaml.Unmarshal([]byte(args[0].Str()), &decoded); err != nil {
		return value.NullValue, err
	}
	return hostlib.FromAny(decoded), nil
}

func runFormat(_ resolve.Machine, args []value.Value) (value.Value, error) {
	out, err := yaml.Marshal(hostlib.ToAny(args[0]))
	if err != nil {
		return value.NullValue, err
	}
	return value.NewString(string(out)), nil
}
