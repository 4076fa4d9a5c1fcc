package vm

import (
	"context"
	"fmt"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/script"
	"github.com/rookscript/rookscript/value"
)

// run is the fetch-execute loop: fetch the instruction at pc, advance pc,
// dispatch on its Opcode, repeat until a terminal RETURN, an unhandled
// Fault, or ctx cancellation (spec.md section 4.4).
func (in *Instance) run(ctx context.Context) (value.Value, error) {
	for {
		if err := ctx.Err(); err != nil {
			in.terminated = true
			return value.NullValue, wrapFault(ScriptExecution, in.pc, err)
		}
		if in.runawayLimit > 0 {
			in.runawayCount++
			if in.runawayCount > in.runawayLimit {
				in.terminated = true
				return value.NullValue, newFault(ScriptExecution, in.pc, "runaway limit of %d operations exceeded", in.runawayLimit)
			}
		}

		if in.pc < 0 || in.pc >= in.scr.Len() {
			in.terminated = true
			return value.NullValue, newFault(ScriptExecution, in.pc, "program counter %d out of range", in.pc)
		}
		inst := in.scr.Instruction(in.pc)
		at := in.pc
		in.pc++

		result, halted, err := in.exec(inst, at)
		if err != nil {
			in.terminated = true
			return value.NullValue, err
		}
		if halted {
			return result, nil
		}
	}
}

// exec executes a single instruction. It returns (result, true, nil) on a
// terminal RETURN or an explicit Terminate; (_, false, nil) to keep running;
// or a non-nil error for any fatal Fault.
func (in *Instance) exec(inst script.Instruction, pc int) (value.Value, bool, error) {
	s := in.stack

	jumpTo := func(label string) error {
		idx := in.scr.LabelIndex(label)
		if idx < 0 {
			return newFault(ScriptExecution, pc, "undefined label %q", label)
		}
		in.pc = idx
		return nil
	}

	switch inst.Op {
	case script.NOOP:
		// nothing

	case script.JUMP:
		if err := jumpTo(inst.Label); err != nil {
			return value.NullValue, false, err
		}

	case script.JUMP_TRUE:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if v.Truth() {
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		}

	case script.JUMP_FALSE:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if !v.Truth() {
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		}

	case script.JUMP_BRANCH:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		label := inst.Label2
		if v.Truth() {
			label = inst.Label
		}
		if err := jumpTo(label); err != nil {
			return value.NullValue, false, err
		}

	case script.JUMP_FALSECOALESCE:
		v, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		if v.Truth() {
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		} else if _, err := s.Pop(); err != nil {
			return value.NullValue, false, err
		}

	case script.JUMP_NULLCOALESCE:
		v, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		if !v.IsNull() {
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		} else if _, err := s.Pop(); err != nil {
			return value.NullValue, false, err
		}

	case script.CHECK_ERROR:
		v, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		if v.Kind() == value.Error {
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		}

	case script.RETURN:
		retVal := value.NullValue
		if s.OperandDepth() > 0 {
			retVal, _ = s.Pop()
		}
		returnPC, err := s.PopFrame()
		if err != nil {
			return value.NullValue, false, err
		}
		if returnPC == haltPC {
			return retVal, true, nil
		}
		if err := s.Push(retVal); err != nil {
			return value.NullValue, false, err
		}
		in.pc = returnPC

	case script.CALL:
		if err := in.call(inst.Label, pc); err != nil {
			return value.NullValue, false, err
		}

	case script.CALL_HOST:
		if err := in.callHost("", inst.Name, pc); err != nil {
			return value.NullValue, false, err
		}
		if in.terminated {
			result, _ := s.Peek(0)
			return result, true, nil
		}

	case script.CALL_HOST_NAMESPACE:
		if err := in.callHost(inst.Namespace, inst.Name, pc); err != nil {
			return value.NullValue, false, err
		}
		if in.terminated {
			result, _ := s.Peek(0)
			return result, true, nil
		}

	case script.PUSH:
		if err := s.Push(inst.Literal); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_NULL:
		if err := s.Push(value.NullValue); err != nil {
			return value.NullValue, false, err
		}

	case script.POP:
		if _, err := s.Pop(); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_SENTINEL:
		if err := s.Push(pushSentinel()); err != nil {
			return value.NullValue, false, err
		}

	case script.POP_SENTINEL:
		want := int(inst.Int)
		seen := 0
		for seen < want {
			v, err := s.Pop()
			if err != nil {
				return value.NullValue, false, err
			}
			if isSentinel(v) {
				seen++
			}
		}

	case script.PUSH_VARIABLE:
		v, _ := s.GetVar(inst.Name)
		if err := s.Push(v); err != nil {
			return value.NullValue, false, err
		}

	case script.POP_VARIABLE:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		s.SetVar(inst.Name, v)

	case script.SET:
		s.SetVar(inst.Name, inst.Literal)

	case script.SET_VARIABLE:
		v, _ := s.GetVar(inst.Name2)
		s.SetVar(inst.Name, v)

	case script.PUSH_SCOPE_VARIABLE:
		v := value.NullValue
		if in.scopeResolver != nil {
			if sc, ok := in.scopeResolver.GetScope(inst.Scope); ok {
				if got, ok := sc.Get(inst.Name); ok {
					v = got
				}
			}
		}
		if err := s.Push(v); err != nil {
			return value.NullValue, false, err
		}

	case script.POP_SCOPE_VARIABLE:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if in.scopeResolver != nil {
			if sc, ok := in.scopeResolver.GetScope(inst.Scope); ok {
				sc.Set(inst.Name, v)
			}
		}

	case script.PUSH_LIST_NEW:
		if err := s.Push(value.NewListValue()); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_LIST_INIT:
		n := int(inst.Int)
		elems := make([]value.Value, n)
		for i := n - 1; i >= 0; i-- {
			v, err := s.Pop()
			if err != nil {
				return value.NullValue, false, err
			}
			elems[i] = v
		}
		if err := s.Push(value.NewListValue(elems...)); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_LIST_INDEX:
		idx, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		lst, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		result := value.NullValue
		if lst.Kind() == value.List {
			result = lst.ListRef().Get(int(idx.IntValue()))
		}
		if err := s.Push(result); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_LIST_INDEX_CONTENTS:
		idx, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		lst, err := s.Peek(1)
		if err != nil {
			return value.NullValue, false, err
		}
		result := value.NullValue
		if lst.Kind() == value.List {
			result = lst.ListRef().Get(int(idx.IntValue()))
		}
		if err := s.Push(result); err != nil {
			return value.NullValue, false, err
		}

	case script.POP_LIST:
		val, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		idx, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		lst, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if lst.Kind() == value.List {
			lst.ListRef().Set(int(idx.IntValue()), val)
		}

	case script.PUSH_MAP_NEW:
		if err := s.Push(value.NewMapValue()); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_MAP_INIT:
		n := int(inst.Int)
		type pair struct {
			key string
			val value.Value
		}
		pairs := make([]pair, n)
		for i := n - 1; i >= 0; i-- {
			v, err := s.Pop()
			if err != nil {
				return value.NullValue, false, err
			}
			k, err := s.Pop()
			if err != nil {
				return value.NullValue, false, err
			}
			pairs[i] = pair{key: k.String(), val: v}
		}
		m := value.NewMapValue()
		for _, p := range pairs {
			m.MapRef().Set(p.key, p.val)
		}
		if err := s.Push(m); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_MAP_KEY:
		key, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		m, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		result := value.NullValue
		if m.Kind() == value.Map {
			if v, ok := m.MapRef().Get(key.String()); ok {
				result = v
			}
		}
		if err := s.Push(result); err != nil {
			return value.NullValue, false, err
		}

	case script.PUSH_MAP_KEY_CONTENTS:
		key, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		m, err := s.Peek(1)
		if err != nil {
			return value.NullValue, false, err
		}
		result := value.NullValue
		if m.Kind() == value.Map {
			if v, ok := m.MapRef().Get(key.String()); ok {
				result = v
			}
		}
		if err := s.Push(result); err != nil {
			return value.NullValue, false, err
		}

	case script.POP_MAP:
		val, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		key, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		m, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if m.Kind() == value.Map {
			m.MapRef().Set(key.String(), val)
		}

	case script.PUSH_ITERATOR:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if err := s.Push(value.NewIteratorValue(value.NewIterator(v))); err != nil {
			return value.NullValue, false, err
		}

	case script.ITERATE:
		top, err := s.Peek(0)
		if err != nil {
			return value.NullValue, false, err
		}
		if top.Kind() != value.IteratorKind {
			return value.NullValue, false, newFault(ScriptExecution, pc, "ITERATE on a non-iterator stack top (%s)", top.Kind())
		}
		it := top.IteratorRef()
		if !it.HasNext() {
			if _, err := s.Pop(); err != nil {
				return value.NullValue, false, err
			}
			if err := jumpTo(inst.Label); err != nil {
				return value.NullValue, false, err
			}
		} else {
			k, v := it.Next()
			if err := s.Push(v); err != nil {
				return value.NullValue, false, err
			}
			if inst.WantKey {
				if err := s.Push(k); err != nil {
					return value.NullValue, false, err
				}
			}
		}

	case script.NOT, script.LOGICAL_NOT:
		v, err := s.Pop()
		if err != nil {
			return value.NullValue, false, err
		}
		if err := s.Push(value.Not(v)); err != nil {
			return value.NullValue, false, err
		}

	case script.NEGATE:
		if err := unary(s, value.Negate); err != nil {
			return value.NullValue, false, err
		}

	case script.ABSOLUTE:
		if err := unary(s, value.Absolute); err != nil {
			return value.NullValue, false, err
		}

	case script.LOGICAL:
		if err := unary(s, value.Logical); err != nil {
			return value.NullValue, false, err
		}

	case script.ADD:
		if err := binary(s, value.Add); err != nil {
			return value.NullValue, false, err
		}
	case script.SUBTRACT:
		if err := binary(s, value.Sub); err != nil {
			return value.NullValue, false, err
		}
	case script.MULTIPLY:
		if err := binary(s, value.Mul); err != nil {
			return value.NullValue, false, err
		}
	case script.DIVIDE:
		if err := binary(s, value.Div); err != nil {
			return value.NullValue, false, err
		}
	case script.MODULO:
		if err := binary(s, value.Mod); err != nil {
			return value.NullValue, false, err
		}
	case script.AND:
		if err := binary(s, value.And); err != nil {
			return value.NullValue, false, err
		}
	case script.OR:
		if err := binary(s, value.Or); err != nil {
			return value.NullValue, false, err
		}
	case script.XOR:
		if err := binary(s, value.Xor); err != nil {
			return value.NullValue, false, err
		}
	case script.LOGICAL_AND:
		if err := binary(s, func(x, y value.Value) value.Value {
			return value.NewBool(x.Truth() && y.Truth())
		}); err != nil {
			return value.NullValue, false, err
		}
	case script.LOGICAL_OR:
		if err := binary(s, func(x, y value.Value) value.Value {
			return value.NewBool(x.Truth() || y.Truth())
		}); err != nil {
			return value.NullValue, false, err
		}
	case script.LEFT_SHIFT:
		if err := binary(s, value.Shl); err != nil {
			return value.NullValue, false, err
		}
	case script.RIGHT_SHIFT:
		if err := binary(s, value.Shr); err != nil {
			return value.NullValue, false, err
		}
	case script.RIGHT_SHIFT_PADDED:
		if err := binary(s, value.ShrPadded); err != nil {
			return value.NullValue, false, err
		}

	case script.LESS:
		if err := compareOp(s, func(cmp int, ok bool) bool { return ok && cmp < 0 }); err != nil {
			return value.NullValue, false, err
		}
	case script.LESS_OR_EQUAL:
		if err := compareOp(s, func(cmp int, ok bool) bool { return ok && cmp <= 0 }); err != nil {
			return value.NullValue, false, err
		}
	case script.GREATER:
		if err := compareOp(s, func(cmp int, ok bool) bool { return ok && cmp > 0 }); err != nil {
			return value.NullValue, false, err
		}
	case script.GREATER_OR_EQUAL:
		if err := compareOp(s, func(cmp int, ok bool) bool { return ok && cmp >= 0 }); err != nil {
			return value.NullValue, false, err
		}

	case script.EQUAL:
		if err := binary(s, func(x, y value.Value) value.Value { return value.NewBool(value.Equal(x, y)) }); err != nil {
			return value.NullValue, false, err
		}
	case script.NOT_EQUAL:
		if err := binary(s, func(x, y value.Value) value.Value { return value.NewBool(!value.Equal(x, y)) }); err != nil {
			return value.NullValue, false, err
		}
	case script.STRICT_EQUAL:
		if err := binary(s, func(x, y value.Value) value.Value { return value.NewBool(value.StrictEqual(x, y)) }); err != nil {
			return value.NullValue, false, err
		}
	case script.STRICT_NOT_EQUAL:
		if err := binary(s, func(x, y value.Value) value.Value { return value.NewBool(!value.StrictEqual(x, y)) }); err != nil {
			return value.NullValue, false, err
		}

	default:
		return value.NullValue, false, newFault(ScriptExecution, pc, "unimplemented opcode %s", inst.Op)
	}

	return value.NullValue, false, nil
}

func unary(s *Stack, fn func(value.Value) value.Value) error {
	v, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(fn(v))
}

func binary(s *Stack, fn func(x, y value.Value) value.Value) error {
	y, err := s.Pop()
	if err != nil {
		return err
	}
	x, err := s.Pop()
	if err != nil {
		return err
	}
	return s.Push(fn(x, y))
}

func compareOp(s *Stack, accept func(cmp int, comparable bool) bool) error {
	y, err := s.Pop()
	if err != nil {
		return err
	}
	x, err := s.Pop()
	if err != nil {
		return err
	}
	cmp, ok := value.Compare(x, y)
	return s.Push(value.NewBool(accept(cmp, ok)))
}

// call implements the CALL opcode: pop this function's positional arguments,
// push a new frame, bind the arguments to arg0..argN-1 in its local scope
// (the calling convention documented in DESIGN.md), and jump to its entry.
func (in *Instance) call(label string, pc int) error {
	e, hasEntry := in.scr.EntryPoint(label)
	startIdx := in.scr.LabelIndex(label)
	paramCount := 0
	if hasEntry {
		paramCount = e.ParamCount
		startIdx = e.Index
	}
	if startIdx < 0 {
		return newFault(ScriptExecution, pc, "label %q does not correspond to a known instruction", label)
	}

	args := make([]value.Value, paramCount)
	for i := paramCount - 1; i >= 0; i-- {
		v, err := in.stack.Pop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	// in.pc has already been advanced past this CALL instruction (run's
	// fetch-execute loop increments pc before invoking exec); that is the
	// address RETURN must resume at, not pc (this instruction's own index,
	// used only for fault reporting above).
	if err := in.stack.PushFrame(in.pc); err != nil {
		return err
	}
	bindPositionalArgs(in.stack.CurrentScope(), args)
	in.pc = startIdx
	return nil
}

// callHost implements CALL_HOST/CALL_HOST_NAMESPACE: resolve name (under
// namespace, if given) against the configured HostFunctionResolver, run it,
// and either push its result, push an in-band Error Value (when the
// function is ErrorReturning and fails), or raise a fatal ScriptExecution
// Fault (spec.md section 4.4 and section 6's host function ABI).
func (in *Instance) callHost(namespace, name string, pc int) error {
	if in.hostResolver == nil {
		return newFault(ScriptExecution, pc, "no host function resolver configured")
	}
	fn, ok := in.hostResolver.Get(namespace, name)
	if !ok {
		if namespace != "" {
			return newFault(ScriptExecution, pc, "host function %s:%s not found", namespace, name)
		}
		return newFault(ScriptExecution, pc, "host function %s not found", name)
	}

	var out value.Value
	cont, err := fn.Execute(in, &out)
	if err != nil {
		if er, ok := fn.(resolve.ErrorReturning); ok && er.ReturnsErrors() {
			if ev, ok := err.(*value.ErrorValue); ok {
				return in.stack.Push(value.NewErrorValue(ev.Kind, ev.Message))
			}
			return in.stack.Push(value.NewErrorValue("HostFunction", err.Error()))
		}
		return wrapFault(ScriptExecution, pc, fmt.Errorf("host function %s: %w", name, err))
	}
	if err := in.stack.Push(out); err != nil {
		return err
	}
	if !cont {
		in.terminated = true
	}
	return nil
}
