package script

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rookscript/rookscript/value"
)

// This file implements a human-readable/writable textual encoding of a
// Script, mirroring the teacher's compiler/asm.go: its purpose is to let the
// test suite (and any host tooling) construct and inspect programs for the
// instruction set without going through a lexer/parser front-end, which
// spec.md section 1 puts out of scope for the core.
//
// The format is line-oriented:
//
//	entry: main 0 L0          # name, parameter count, start label
//	L0:                       # a label on its own line
//	    PUSH 2
//	    PUSH 3
//	    PUSH 4
//	    MULTIPLY
//	    ADD
//	    RETURN
//
// Comments start with '#' and run to the end of the line. Blank lines are
// ignored. A literal operand is one of: null, true, false, a base-10
// integer, a float (containing '.' or an 'e'/'E' exponent), or a
// double-quoted Go string.

// Assemble parses the textual assembly format into a *Script.
func Assemble(src string) (*Script, error) {
	a := &assembler{labels: map[string]int{}, entries: map[string]Entry{}}
	sc := bufio.NewScanner(strings.NewReader(src))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := stripComment(sc.Text())
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := a.line(line, lineNo); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(a.pendingEntries) > 0 {
		if err := a.resolveEntries(); err != nil {
			return nil, err
		}
	}
	return New(a.instructions, a.labels, a.entries), nil
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		// don't strip '#' inside a quoted string
		inQuote := false
		for j := 0; j < i; j++ {
			if line[j] == '"' {
				inQuote = !inQuote
			}
		}
		if !inQuote {
			return line[:i]
		}
	}
	return line
}

type pendingEntry struct {
	name       string
	paramCount int
	label      string
	lineNo     int
}

type assembler struct {
	instructions   []Instruction
	labels         map[string]int
	entries        map[string]Entry
	pendingEntries []pendingEntry
}

func (a *assembler) line(line string, lineNo int) error {
	fields := strings.Fields(line)
	switch {
	case strings.HasPrefix(line, "entry:"):
		fields = fields[1:]
		if len(fields) != 3 {
			return fmt.Errorf("entry: want 'entry: NAME paramCount label', got %q", line)
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return fmt.Errorf("entry: invalid param count %q: %w", fields[1], err)
		}
		a.pendingEntries = append(a.pendingEntries, pendingEntry{name: fields[0], paramCount: n, label: fields[2], lineNo: lineNo})
		return nil

	case strings.HasSuffix(fields[0], ":") && len(fields) == 1:
		label := strings.TrimSuffix(fields[0], ":")
		a.labels[strings.ToLower(label)] = len(a.instructions)
		return nil
	}

	op, ok := ByName(fields[0])
	if !ok {
		return fmt.Errorf("unknown opcode %q", fields[0])
	}
	inst := Instruction{Op: op, Pos: lineNo}
	args := fields[1:]

	switch op {
	case JUMP, JUMP_TRUE, JUMP_FALSE, JUMP_FALSECOALESCE, JUMP_NULLCOALESCE, CHECK_ERROR, CALL:
		if len(args) != 1 {
			return fmt.Errorf("%s: want 1 label argument", op)
		}
		inst.Label = args[0]
	case JUMP_BRANCH:
		if len(args) != 2 {
			return fmt.Errorf("%s: want 2 label arguments", op)
		}
		inst.Label, inst.Label2 = args[0], args[1]
	case CALL_HOST:
		if len(args) != 1 {
			return fmt.Errorf("%s: want 1 name argument", op)
		}
		inst.Name = args[0]
	case CALL_HOST_NAMESPACE:
		if len(args) != 2 {
			return fmt.Errorf("%s: want namespace and name arguments", op)
		}
		inst.Namespace, inst.Name = args[0], args[1]
	case PUSH, SET:
		if len(args) < 1 {
			return fmt.Errorf("%s: want a literal argument", op)
		}
		litSrc := strings.Join(args, " ")
		if op == SET {
			if len(args) < 2 {
				return fmt.Errorf("SET: want 'SET name literal'")
			}
			inst.Name = args[0]
			litSrc = strings.Join(args[1:], " ")
		}
		lit, err := parseLiteral(litSrc)
		if err != nil {
			return err
		}
		inst.Literal = lit
	case PUSH_VARIABLE, POP_VARIABLE:
		if len(args) != 1 {
			return fmt.Errorf("%s: want a name argument", op)
		}
		inst.Name = args[0]
	case SET_VARIABLE:
		if len(args) != 2 {
			return fmt.Errorf("%s: want 'dst src'", op)
		}
		inst.Name, inst.Name2 = args[0], args[1]
	case PUSH_SCOPE_VARIABLE, POP_SCOPE_VARIABLE:
		if len(args) != 2 {
			return fmt.Errorf("%s: want 'scope name'", op)
		}
		inst.Scope, inst.Name = args[0], args[1]
	case PUSH_LIST_INIT, PUSH_MAP_INIT, POP_SENTINEL:
		if len(args) != 1 {
			return fmt.Errorf("%s: want a count argument", op)
		}
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("%s: invalid count %q: %w", op, args[0], err)
		}
		inst.Int = n
	case ITERATE:
		if len(args) != 2 {
			return fmt.Errorf("%s: want 'label wantKey'", op)
		}
		inst.Label = args[0]
		inst.WantKey = args[1] == "true"
	default:
		if len(args) != 0 {
			return fmt.Errorf("%s takes no arguments", op)
		}
	}

	a.instructions = append(a.instructions, inst)
	return nil
}

func (a *assembler) resolveEntries() error {
	for _, pe := range a.pendingEntries {
		idx, ok := a.labels[strings.ToLower(pe.label)]
		if !ok {
			return fmt.Errorf("line %d: entry %q refers to undefined label %q", pe.lineNo, pe.name, pe.label)
		}
		a.entries[strings.ToLower(pe.name)] = Entry{Name: pe.name, Index: idx, ParamCount: pe.paramCount}
	}
	return nil
}

func parseLiteral(s string) (value.Value, error) {
	switch s {
	case "null":
		return value.NewNull(), nil
	case "true":
		return value.NewBool(true), nil
	case "false":
		return value.NewBool(false), nil
	}
	if strings.HasPrefix(s, `"`) {
		us, err := strconv.Unquote(s)
		if err != nil {
			return value.NullValue, fmt.Errorf("invalid string literal %q: %w", s, err)
		}
		return value.NewString(us), nil
	}
	if strings.ContainsAny(s, ".eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err == nil {
			return value.NewFloat(f), nil
		}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return value.NewInt(i), nil
	}
	return value.NullValue, fmt.Errorf("invalid literal %q", s)
}

// Disassemble renders a Script back to the textual assembly format that
// Assemble accepts, for debugging. It has no effect on execution semantics.
func Disassemble(s *Script) string {
	var sb strings.Builder
	indexToLabels := map[int][]string{}
	for name, idx := range s.labels {
		indexToLabels[idx] = append(indexToLabels[idx], name)
	}
	entryNames := make([]string, 0, len(s.entries))
	for name := range s.entries {
		entryNames = append(entryNames, name)
	}
	sort.Strings(entryNames)

	for _, name := range entryNames {
		e := s.entries[name]
		// An entry's start index may fall on an instruction with no label of
		// its own (e.g. the entry and the program happen to share index 0
		// with no explicit label line); Assemble resolves an entry's third
		// field as a label name, so one must always exist to print here.
		label := entryLabel(indexToLabels, e.Index, name)
		fmt.Fprintf(&sb, "entry: %s %d %s\n", name, e.ParamCount, label)
	}
	for i, inst := range s.instructions {
		labels := indexToLabels[i]
		sort.Strings(labels)
		for _, l := range labels {
			fmt.Fprintf(&sb, "%s:\n", l)
		}
		fmt.Fprintf(&sb, "    %s", inst.Op)
		switch inst.Op {
		case JUMP, JUMP_TRUE, JUMP_FALSE, JUMP_FALSECOALESCE, JUMP_NULLCOALESCE, CHECK_ERROR, CALL:
			fmt.Fprintf(&sb, " %s", inst.Label)
		case JUMP_BRANCH:
			fmt.Fprintf(&sb, " %s %s", inst.Label, inst.Label2)
		case CALL_HOST:
			fmt.Fprintf(&sb, " %s", inst.Name)
		case CALL_HOST_NAMESPACE:
			fmt.Fprintf(&sb, " %s %s", inst.Namespace, inst.Name)
		case PUSH:
			fmt.Fprintf(&sb, " %s", literalString(inst.Literal))
		case SET:
			fmt.Fprintf(&sb, " %s %s", inst.Name, literalString(inst.Literal))
		case PUSH_VARIABLE, POP_VARIABLE:
			fmt.Fprintf(&sb, " %s", inst.Name)
		case SET_VARIABLE:
			fmt.Fprintf(&sb, " %s %s", inst.Name, inst.Name2)
		case PUSH_SCOPE_VARIABLE, POP_SCOPE_VARIABLE:
			fmt.Fprintf(&sb, " %s %s", inst.Scope, inst.Name)
		case PUSH_LIST_INIT, PUSH_MAP_INIT, POP_SENTINEL:
			fmt.Fprintf(&sb, " %d", inst.Int)
		case ITERATE:
			fmt.Fprintf(&sb, " %s %t", inst.Label, inst.WantKey)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// entryLabel returns a label name for idx, reusing one already registered
// there (sorted first, for deterministic output) or synthesizing and
// registering a fresh one so the instruction-printing loop emits it in
// place, keeping the disassembled text re-assemblable.
func entryLabel(indexToLabels map[int][]string, idx int, entryName string) string {
	if labels := indexToLabels[idx]; len(labels) > 0 {
		sort.Strings(labels)
		return labels[0]
	}
	label := fmt.Sprintf("__entry_%s", entryName)
	indexToLabels[idx] = append(indexToLabels[idx], label)
	return label
}

func literalString(v value.Value) string {
	if v.Kind() == value.String {
		return strconv.Quote(v.Str())
	}
	return v.String()
}
