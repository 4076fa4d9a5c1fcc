package vm

import "fmt"

// Kind classifies a Fault, per spec.md section 7.
type Kind string

const (
	// Parse is produced by the front-end; the core never raises it, but the
	// Kind exists so host callers that bundle a front-end can reuse Fault.
	Parse Kind = "Parse"
	// ScriptExecution covers label-not-found, iterator-on-non-iterator,
	// unexpected null push, non-recoverable host function failure, and
	// runaway-limit exceeded.
	ScriptExecution Kind = "ScriptExecution"
	// StackUnderflow is an invalid pop/peek past the current frame's base.
	StackUnderflow Kind = "StackUnderflow"
	// StackOverflow is a push past the configured stack/activation depth.
	StackOverflow Kind = "StackOverflow"
	// Build is a builder misconfiguration (missing script, zero stack depth).
	Build Kind = "Build"
)

// Fault is the runtime's typed error. Fatal Kinds terminate the Instance and
// surface to the call that triggered them (spec.md section 7); non-fatal
// host errors are instead represented as in-band value.Error Values and
// never become a Fault.
type Fault struct {
	Kind    Kind
	Message string
	PC      int // program counter active when the fault was raised, or -1
	cause   error
}

func newFault(k Kind, pc int, format string, args ...any) *Fault {
	return &Fault{Kind: k, Message: fmt.Sprintf(format, args...), PC: pc}
}

func wrapFault(k Kind, pc int, cause error) *Fault {
	return &Fault{Kind: k, Message: cause.Error(), PC: pc, cause: cause}
}

func (f *Fault) Error() string {
	if f.PC >= 0 {
		return fmt.Sprintf("%s at pc=%d: %s", f.Kind, f.PC, f.Message)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Fault) Unwrap() error { return f.cause }
