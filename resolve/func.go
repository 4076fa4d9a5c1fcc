package resolve

import "github.com/rookscript/rookscript/value"

// NativeFunction adapts a Go closure to the Function interface, the
// manual-registration builder the design notes call for in place of the
// original's reflection-driven resolver construction: "a builder API that
// lets hosts register function descriptors manually (name, arity, closure)".
type NativeFunction struct {
	FuncName  string
	Arity     int
	FuncUsage string
	// Errors, when true, marks this function as ErrorReturning: a Go error
	// from Run becomes a pushed Error Value rather than a fatal fault
	// (spec.md section 4.4).
	Errors bool
	Run    func(m Machine, args []value.Value) (value.Value, error)
}

var (
	_ Function       = (*NativeFunction)(nil)
	_ ErrorReturning = (*NativeFunction)(nil)
)

func (f *NativeFunction) Name() string           { return f.FuncName }
func (f *NativeFunction) ParameterCount() int     { return f.Arity }
func (f *NativeFunction) Usage() string           { return f.FuncUsage }
func (f *NativeFunction) ReturnsErrors() bool     { return f.Errors }

// Execute pops f.ParameterCount arguments (in reverse, so the caller's
// leftmost argument ends up args[0]), runs f.Run, and writes its result to
// out, per spec.md section 6's host function ABI.
func (f *NativeFunction) Execute(m Machine, out *value.Value) (bool, error) {
	args := make([]value.Value, f.Arity)
	for i := f.Arity - 1; i >= 0; i-- {
		v, err := m.Pop()
		if err != nil {
			return false, err
		}
		args[i] = v
	}
	result, err := f.Run(m, args)
	if err != nil {
		return false, err
	}
	*out = result
	return true, nil
}
