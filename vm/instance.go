package vm

import (
	"context"
	"fmt"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/script"
	"github.com/rookscript/rookscript/value"
)

const (
	defaultActivationDepth = 256
	defaultValueDepth      = 2048
	defaultRunawayLimit    = 0 // 0 == unlimited

	// haltPC is the return program counter recorded for the terminal frame an
	// entry invocation pushes; PopFrame returning it means the whole Instance
	// is done, not merely a nested CALL.
	haltPC = -1
)

// Instance is a single, reusable execution of a Script: its Instance Stack,
// the pluggable host contracts it was built with, and the small amount of
// bookkeeping (program counter, runaway counter, terminated flag) the
// dispatch loop needs between Call invocations (spec.md section 4.3).
type Instance struct {
	scr           *script.Script
	stack         *Stack
	hostResolver  resolve.HostFunctionResolver
	scopeResolver resolve.ScopeResolver
	env           *Environment

	runawayLimit int
	runawayCount int

	pc         int
	terminated bool
}

var _ resolve.Machine = (*Instance)(nil)

// Pop implements resolve.Machine.
func (in *Instance) Pop() (value.Value, error) { return in.stack.Pop() }

// Push implements resolve.Machine.
func (in *Instance) Push(v value.Value) error { return in.stack.Push(v) }

// Peek implements resolve.Machine.
func (in *Instance) Peek(n int) (value.Value, error) { return in.stack.Peek(n) }

// Script returns the compiled program this Instance executes.
func (in *Instance) Script() *script.Script { return in.scr }

// Stack returns the Instance Stack backing this Instance.
func (in *Instance) Stack() *Stack { return in.stack }

// HostFunctionResolver returns the resolver CALL_HOST/CALL_HOST_NAMESPACE
// consult, or nil if none was configured.
func (in *Instance) HostFunctionResolver() resolve.HostFunctionResolver { return in.hostResolver }

// ScopeResolver returns the resolver PUSH_SCOPE_VARIABLE/POP_SCOPE_VARIABLE
// consult, or nil if none was configured.
func (in *Instance) ScopeResolver() resolve.ScopeResolver { return in.scopeResolver }

// Environment returns the stdio bundle host functions may use.
func (in *Instance) Environment() *Environment { return in.env }

// Terminated reports whether a prior Call was stopped by a fatal Fault
// (including the runaway limit and context cancellation), by a host function
// returning false, or by an explicit Terminate. A Call that finishes through
// its terminal RETURN leaves it false.
func (in *Instance) Terminated() bool { return in.terminated }

// Terminate marks the Instance as done; any subsequent Call returns a
// ScriptExecution Fault without resuming execution. Host functions call this
// from within their own Execute to halt the script that invoked them.
func (in *Instance) Terminate() { in.terminated = true }

// Call invokes the named entry point with args (leftmost first), running
// the fetch-execute loop to completion and returning the Value left by its
// terminal RETURN (spec.md section 6).
func (in *Instance) Call(ctx context.Context, entry string, args ...value.Value) (value.Value, error) {
	e, ok := in.scr.EntryPoint(entry)
	if !ok {
		return value.NullValue, newFault(ScriptExecution, -1, "entry point %q not found", entry)
	}
	if in.terminated {
		return value.NullValue, newFault(ScriptExecution, -1, "instance already terminated")
	}
	if len(args) > e.ParamCount {
		return value.NullValue, newFault(ScriptExecution, -1, "entry %q accepts at most %d arguments (%d given)", entry, e.ParamCount, len(args))
	}

	in.stack.Reset()
	in.runawayCount = 0
	if err := in.stack.PushFrame(haltPC); err != nil {
		return value.NullValue, err
	}
	bindPositionalArgs(in.stack.CurrentScope(), args)
	in.pc = e.Index

	return in.run(ctx)
}

// CallAs invokes entry exactly like Call, then coerces its result to T via
// value.CoerceTo, returning the coerced Go-friendly representation.
func CallAs[T any](ctx context.Context, in *Instance, entry string, args ...value.Value) (out T, err error) {
	result, err := in.Call(ctx, entry, args...)
	if err != nil {
		return out, err
	}
	switch any(out).(type) {
	case int64:
		result, err = value.CoerceTo(result, value.Int)
	case float64:
		result, err = value.CoerceTo(result, value.Float)
	case string:
		result, err = value.CoerceTo(result, value.String)
	case bool:
		result, err = value.CoerceTo(result, value.Bool)
	default:
		return out, fmt.Errorf("rookscript: CallAs does not support %T", out)
	}
	if err != nil {
		return out, err
	}
	switch p := any(&out).(type) {
	case *int64:
		*p = result.IntValue()
	case *float64:
		*p = result.FloatValue()
	case *string:
		*p = result.Str()
	case *bool:
		*p = result.BoolValue()
	}
	return out, nil
}

// bindPositionalArgs binds args by position to local names arg0..argN-1, the
// calling convention CALL and entry invocation share (spec.md is silent on
// how a callee names its parameters once the front-end is out of scope; see
// DESIGN.md for this decision).
func bindPositionalArgs(locals *Scope, args []value.Value) {
	for i, a := range args {
		locals.Set(fmt.Sprintf("arg%d", i), a)
	}
}
