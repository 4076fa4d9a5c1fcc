// Package script implements the immutable, compiled program that the
// RookScript virtual machine executes: an instruction vector, a
// case-insensitive label-to-index map, named entry points, and an optional
// per-instruction source position (spec.md section 3). The core only reads
// a Script; how text becomes one (lexer, parser, assembler front-end) is out
// of scope for this package, per spec.md section 1.
package script

import "fmt"

// Opcode identifies a single executable step, grouped by effect exactly as
// spec.md section 4.4 groups the instruction set.
type Opcode uint8

const (
	NOOP Opcode = iota

	// control
	JUMP
	JUMP_TRUE
	JUMP_FALSE
	JUMP_BRANCH
	JUMP_FALSECOALESCE
	JUMP_NULLCOALESCE
	CHECK_ERROR
	RETURN

	// calls
	CALL
	CALL_HOST
	CALL_HOST_NAMESPACE

	// stack manipulation
	PUSH
	PUSH_NULL
	POP
	PUSH_SENTINEL
	POP_SENTINEL

	// variables
	PUSH_VARIABLE
	POP_VARIABLE
	SET
	SET_VARIABLE
	PUSH_SCOPE_VARIABLE
	POP_SCOPE_VARIABLE

	// collections
	PUSH_LIST_NEW
	PUSH_LIST_INIT
	PUSH_LIST_INDEX
	PUSH_LIST_INDEX_CONTENTS
	POP_LIST
	PUSH_MAP_NEW
	PUSH_MAP_INIT
	PUSH_MAP_KEY
	PUSH_MAP_KEY_CONTENTS
	POP_MAP

	// iteration
	PUSH_ITERATOR
	ITERATE

	// arithmetic / logic
	NOT
	NEGATE
	ABSOLUTE
	LOGICAL
	LOGICAL_NOT
	ADD
	SUBTRACT
	MULTIPLY
	DIVIDE
	MODULO
	AND
	OR
	XOR
	LOGICAL_AND
	LOGICAL_OR
	LEFT_SHIFT
	RIGHT_SHIFT
	RIGHT_SHIFT_PADDED
	LESS
	LESS_OR_EQUAL
	GREATER
	GREATER_OR_EQUAL
	EQUAL
	NOT_EQUAL
	STRICT_EQUAL
	STRICT_NOT_EQUAL

	opcodeCount
)

var opcodeNames = [...]string{
	NOOP:                     "NOOP",
	JUMP:                     "JUMP",
	JUMP_TRUE:                "JUMP_TRUE",
	JUMP_FALSE:               "JUMP_FALSE",
	JUMP_BRANCH:              "JUMP_BRANCH",
	JUMP_FALSECOALESCE:       "JUMP_FALSECOALESCE",
	JUMP_NULLCOALESCE:        "JUMP_NULLCOALESCE",
	CHECK_ERROR:              "CHECK_ERROR",
	RETURN:                   "RETURN",
	CALL:                     "CALL",
	CALL_HOST:                "CALL_HOST",
	CALL_HOST_NAMESPACE:      "CALL_HOST_NAMESPACE",
	PUSH:                     "PUSH",
	PUSH_NULL:                "PUSH_NULL",
	POP:                      "POP",
	PUSH_SENTINEL:            "PUSH_SENTINEL",
	POP_SENTINEL:             "POP_SENTINEL",
	PUSH_VARIABLE:            "PUSH_VARIABLE",
	POP_VARIABLE:             "POP_VARIABLE",
	SET:                      "SET",
	SET_VARIABLE:             "SET_VARIABLE",
	PUSH_SCOPE_VARIABLE:      "PUSH_SCOPE_VARIABLE",
	POP_SCOPE_VARIABLE:       "POP_SCOPE_VARIABLE",
	PUSH_LIST_NEW:            "PUSH_LIST_NEW",
	PUSH_LIST_INIT:           "PUSH_LIST_INIT",
	PUSH_LIST_INDEX:          "PUSH_LIST_INDEX",
	PUSH_LIST_INDEX_CONTENTS: "PUSH_LIST_INDEX_CONTENTS",
	POP_LIST:                 "POP_LIST",
	PUSH_MAP_NEW:             "PUSH_MAP_NEW",
	PUSH_MAP_INIT:            "PUSH_MAP_INIT",
	PUSH_MAP_KEY:             "PUSH_MAP_KEY",
	PUSH_MAP_KEY_CONTENTS:    "PUSH_MAP_KEY_CONTENTS",
	POP_MAP:                  "POP_MAP",
	PUSH_ITERATOR:            "PUSH_ITERATOR",
	ITERATE:                  "ITERATE",
	NOT:                      "NOT",
	NEGATE:                   "NEGATE",
	ABSOLUTE:                 "ABSOLUTE",
	LOGICAL:                  "LOGICAL",
	LOGICAL_NOT:              "LOGICAL_NOT",
	ADD:                      "ADD",
	SUBTRACT:                 "SUBTRACT",
	MULTIPLY:                 "MULTIPLY",
	DIVIDE:                   "DIVIDE",
	MODULO:                   "MODULO",
	AND:                      "AND",
	OR:                       "OR",
	XOR:                      "XOR",
	LOGICAL_AND:              "LOGICAL_AND",
	LOGICAL_OR:               "LOGICAL_OR",
	LEFT_SHIFT:               "LEFT_SHIFT",
	RIGHT_SHIFT:              "RIGHT_SHIFT",
	RIGHT_SHIFT_PADDED:       "RIGHT_SHIFT_PADDED",
	LESS:                     "LESS",
	LESS_OR_EQUAL:            "LESS_OR_EQUAL",
	GREATER:                  "GREATER",
	GREATER_OR_EQUAL:         "GREATER_OR_EQUAL",
	EQUAL:                    "EQUAL",
	NOT_EQUAL:                "NOT_EQUAL",
	STRICT_EQUAL:             "STRICT_EQUAL",
	STRICT_NOT_EQUAL:         "STRICT_NOT_EQUAL",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return fmt.Sprintf("Opcode(%d)", op)
}

// ByName looks up an Opcode by its mnemonic, used by the assembler.
func ByName(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}
	return 0, false
}
