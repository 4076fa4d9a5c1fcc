package vm_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/script"
	"github.com/rookscript/rookscript/value"
	"github.com/rookscript/rookscript/vm"
)

func mustAssemble(t *testing.T, src string) *script.Script {
	t.Helper()
	scr, err := script.Assemble(src)
	require.NoError(t, err)
	return scr
}

func TestArithmeticEntry(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    PUSH 2
    PUSH 3
    PUSH 4
    MULTIPLY
    ADD
    RETURN
`)
	in, err := vm.NewBuilder().WithScript(scr).CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, value.Int, result.Kind())
	require.Equal(t, int64(14), result.IntValue())
}

func TestCallWithPositionalArguments(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L_main
entry: add 2 L_add

L_add:
    PUSH_VARIABLE arg0
    PUSH_VARIABLE arg1
    ADD
    RETURN

L_main:
    PUSH 3
    PUSH 4
    CALL add
    RETURN
`)
	in, err := vm.NewBuilder().WithScript(scr).CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, int64(7), result.IntValue())
}

type doubleFn struct{}

func (doubleFn) Name() string       { return "double" }
func (doubleFn) ParameterCount() int { return 1 }
func (doubleFn) Usage() string      { return "double(n) -> n*2" }
func (doubleFn) Execute(m resolve.Machine, out *value.Value) (bool, error) {
	n, err := m.Pop()
	if err != nil {
		return false, err
	}
	*out = value.Mul(n, value.NewInt(2))
	return true, nil
}

func TestCallHostFunction(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    PUSH 21
    CALL_HOST double
    RETURN
`)
	in, err := vm.NewBuilder().
		WithScript(scr).
		WithFunctionResolver(resolve.Functions{doubleFn{}}).
		CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, int64(42), result.IntValue())
}

func TestCallHostFunctionErrorReturning(t *testing.T) {
	failing := &resolve.NativeFunction{
		FuncName: "fail",
		Arity:    0,
		Errors:   true,
		Run: func(m resolve.Machine, args []value.Value) (value.Value, error) {
			return value.NullValue, errBoom
		},
	}
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    CALL_HOST fail
    CHECK_ERROR Lerr
    PUSH "no-error"
    RETURN
Lerr:
    PUSH "recovered"
    RETURN
`)
	in, err := vm.NewBuilder().
		WithScript(scr).
		WithFunctionResolver(resolve.Functions{failing}).
		CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, "recovered", result.Str())
}

func TestIterateOverList(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    PUSH 0
    POP_VARIABLE sum
    PUSH 1
    PUSH 2
    PUSH 3
    PUSH_LIST_INIT 3
    PUSH_ITERATOR
Lloop:
    ITERATE Lend false
    POP_VARIABLE item
    PUSH_VARIABLE sum
    PUSH_VARIABLE item
    ADD
    POP_VARIABLE sum
    JUMP Lloop
Lend:
    PUSH_VARIABLE sum
    RETURN
`)
	in, err := vm.NewBuilder().WithScript(scr).CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, int64(6), result.IntValue())
}

func TestScopeVariableResolver(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    PUSH_SCOPE_VARIABLE host greeting
    RETURN
`)
	in, err := vm.NewBuilder().
		WithScript(scr).
		WithScope("host", resolve.NewMapVariables(map[string]value.Value{
			"greeting": value.NewString("hello"),
		}, true)).
		CreateInstance()
	require.NoError(t, err)

	result, err := in.Call(context.Background(), "main")
	require.NoError(t, err)
	require.Equal(t, "hello", result.Str())
}

func TestRunawayLimit(t *testing.T) {
	scr := mustAssemble(t, `
entry: main 0 L0
L0:
    JUMP L0
`)
	in, err := vm.NewBuilder().WithScript(scr).WithRunawayLimit(50).CreateInstance()
	require.NoError(t, err)

	_, err = in.Call(context.Background(), "main")
	require.Error(t, err)
	var fault *vm.Fault
	require.ErrorAs(t, err, &fault)
	require.Equal(t, vm.ScriptExecution, fault.Kind)
}

var errBoom = boomErr{}

type boomErr struct{}

func (boomErr) Error() string { return "boom" }
