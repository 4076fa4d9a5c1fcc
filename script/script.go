package script

import (
	"fmt"
	"strings"

	"github.com/rookscript/rookscript/value"
)

// Instruction is a single bytecode step. Not every field is meaningful for
// every Opcode; see the per-opcode cases in vm/dispatch.go and spec.md
// section 4.4 for which operands a given Op reads.
type Instruction struct {
	Op Opcode

	// Label/Label2 name the JUMP* target(s). Resolved against the owning
	// Script's label map at execution time (spec.md section 4.4: "Opcodes
	// that demand a label resolve via Script.label_index").
	Label, Label2 string

	// Name carries a variable, host-function or attribute name. Name2 carries
	// a second name where an instruction needs one (SET_VARIABLE's source).
	Name, Name2 string

	// Namespace carries the namespace argument of CALL_HOST_NAMESPACE.
	Namespace string

	// Scope carries the scope name for PUSH_SCOPE_VARIABLE/POP_SCOPE_VARIABLE.
	Scope string

	// Int carries a numeric operand: POP_SENTINEL's sentinel count,
	// PUSH_LIST_INIT/PUSH_MAP_INIT's element count.
	Int int64

	// WantKey is ITERATE's key-wanted flag.
	WantKey bool

	// Literal carries PUSH's and SET's literal operand.
	Literal value.Value

	// Pos is this instruction's 1-based source line, or 0 if unknown.
	Pos int
}

// Entry describes a named, callable top-level function: the instruction
// index execution begins at, and how many arguments it expects.
type Entry struct {
	Name      string
	Index     int
	ParamCount int
}

// Script is the immutable compiled program the machine executes. The core
// only reads a Script; it never mutates one.
type Script struct {
	instructions []Instruction
	labels       map[string]int // case-insensitive label name -> instruction index
	entries      map[string]Entry
}

// New builds a Script from an already-assembled instruction sequence and
// label map. Host code normally obtains a Script via Assemble or a
// front-end compiler (out of scope here); New is the low-level constructor
// they, in turn, would call.
func New(instructions []Instruction, labels map[string]int, entries map[string]Entry) *Script {
	s := &Script{instructions: instructions, labels: map[string]int{}, entries: map[string]Entry{}}
	for k, v := range labels {
		s.labels[strings.ToLower(k)] = v
	}
	for k, v := range entries {
		s.entries[strings.ToLower(k)] = v
	}
	return s
}

// Len reports the number of instructions.
func (s *Script) Len() int { return len(s.instructions) }

// Instruction returns the instruction at index i. It panics if i is out of
// range: an out-of-range program counter is always a fatal assembler/VM bug,
// never a runtime condition a script can trigger.
func (s *Script) Instruction(i int) Instruction {
	return s.instructions[i]
}

// LabelIndex returns the instruction index for a (case-insensitive) label
// name, or -1 if no such label exists.
func (s *Script) LabelIndex(name string) int {
	if i, ok := s.labels[strings.ToLower(name)]; ok {
		return i
	}
	return -1
}

// EntryPoint returns the entry-point descriptor for a (case-insensitive) name, or
// false if no such entry point exists.
func (s *Script) EntryPoint(name string) (Entry, bool) {
	e, ok := s.entries[strings.ToLower(name)]
	return e, ok
}

// EntryNames returns the names of every declared entry point, in no
// particular order.
func (s *Script) EntryNames() []string {
	names := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		names = append(names, e.Name)
	}
	return names
}

// String renders a one-line summary of the Script: its instruction, label
// and entry counts. Disassemble produces the full textual form.
func (s *Script) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "script: %d instructions, %d labels, %d entries\n", len(s.instructions), len(s.labels), len(s.entries))
	return sb.String()
}
