// Package harness implements the CLI executor command, the
// out-of-scope-but-informative tool spec.md §6 describes as sitting on top
// of Instance.Call: read a script file, build an Instance, invoke an entry
// point, and report the result or failure with one of a small set of exit
// codes. It follows the teacher's internal/maincmd pattern: a flag-and-env
// driven Cmd struct built on github.com/mna/mainer.
package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"

	"github.com/rookscript/rookscript/hostlib/jsonfn"
	"github.com/rookscript/rookscript/hostlib/regexfn"
	"github.com/rookscript/rookscript/hostlib/textfn"
	"github.com/rookscript/rookscript/hostlib/yamlfn"
	"github.com/rookscript/rookscript/script"
	"github.com/rookscript/rookscript/value"
	"github.com/rookscript/rookscript/vm"
)

const binName = "rookscript"

var shortUsage = fmt.Sprintf(`usage: %s [<option>...] <script-file> [<arg>...]
Run '%[1]s --help' for details.
`, binName)

var longUsage = fmt.Sprintf(`usage: %s [<option>...] <script-file> [<arg>...]
       %[1]s -h|--help

Assembles and runs a RookScript bytecode file through its "main" entry
point (or the one named by --entry), passing the trailing arguments as
string Values.

Valid flag options are:
       -h --help                 Show this help and exit.
       --entry NAME              Entry point to invoke (default: main).
       --stack N                 Operand stack depth (default: 2048).
       --activation N            Activation (call) stack depth (default: 256).
       --runaway N                Runaway instruction limit, 0 for unlimited.

Environment variables ROOKSCRIPT_STACK, ROOKSCRIPT_ACTIVATION and
ROOKSCRIPT_RUNAWAY set the same defaults as the flags above.
`, binName)

// envDefaults is populated from the process environment with
// github.com/caarlos0/env, the config library the teacher's CLI stack pulls
// in indirectly through mna/mainer.
type envDefaults struct {
	Stack      int `env:"ROOKSCRIPT_STACK" envDefault:"2048"`
	Activation int `env:"ROOKSCRIPT_ACTIVATION" envDefault:"256"`
	Runaway    int `env:"ROOKSCRIPT_RUNAWAY" envDefault:"0"`
}

// Exit codes, per spec.md §6's CLI executor description.
const (
	exitSuccess           mainer.ExitCode = 0
	exitBadNumericArg     mainer.ExitCode = 2
	exitMissingSwitchArg  mainer.ExitCode = 3
	exitBadFileOrStack    mainer.ExitCode = 4
	exitEntryNotFound     mainer.ExitCode = 5
	exitScriptRuntimeFail mainer.ExitCode = 6
)

// Cmd is the rookscript CLI's command-line surface.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help bool `flag:"h,help"`

	Entry      string `flag:"entry"`
	StackStr   string `flag:"stack"`
	ActStr     string `flag:"activation"`
	RunawayStr string `flag:"runaway"`

	args []string
}

func (c *Cmd) SetArgs(args []string)           { c.args = args }
func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no script file specified")
	}
	return nil
}

// Main is the mainer.Cmd entry point.
func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   false,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return exitMissingSwitchArg
	}
	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return exitSuccess
	}

	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: reading environment defaults: %s\n", binName, err)
		return exitBadFileOrStack
	}

	stackDepth, code := intFlagOrDefault(stdio, c.StackStr, defaults.Stack, "--stack")
	if code != exitSuccess {
		return code
	}
	activationDepth, code := intFlagOrDefault(stdio, c.ActStr, defaults.Activation, "--activation")
	if code != exitSuccess {
		return code
	}
	runawayLimit, code := intFlagOrDefault(stdio, c.RunawayStr, defaults.Runaway, "--runaway")
	if code != exitSuccess {
		return code
	}

	scriptPath := c.args[0]
	scriptArgs := c.args[1:]
	entry := c.Entry
	if entry == "" {
		entry = "main"
	}

	src, err := os.ReadFile(scriptPath)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return exitBadFileOrStack
	}

	scr, err := script.Assemble(string(src))
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: assembling %s: %s\n", binName, scriptPath, err)
		return exitBadFileOrStack
	}

	in, err := vm.NewBuilder().
		WithScript(scr).
		WithEnvironment(&vm.Environment{Stdin: stdio.Stdin, Stdout: stdio.Stdout, Stderr: stdio.Stderr}).
		WithNamedFunctionResolver("regex", regexfn.Functions()).
		WithNamedFunctionResolver("strings", textfn.Functions()).
		WithNamedFunctionResolver("json", jsonfn.Functions()).
		WithNamedFunctionResolver("yaml", yamlfn.Functions()).
		WithScriptStack(activationDepth, stackDepth).
		WithRunawayLimit(runawayLimit).
		CreateInstance()
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return exitBadFileOrStack
	}

	if _, ok := scr.EntryPoint(entry); !ok {
		fmt.Fprintf(stdio.Stderr, "%s: entry point %q not found in %s\n", binName, entry, scriptPath)
		return exitEntryNotFound
	}

	args2 := make([]value.Value, len(scriptArgs))
	for i, a := range scriptArgs {
		args2[i] = value.NewString(a)
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	result, err := in.Call(ctx, entry, args2...)
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s\n", binName, err)
		return exitScriptRuntimeFail
	}

	fmt.Fprintln(stdio.Stdout, result.String())
	return exitSuccess
}

func intFlagOrDefault(stdio mainer.Stdio, raw string, fallback int, flagName string) (int, mainer.ExitCode) {
	if raw == "" {
		return fallback, exitSuccess
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintf(stdio.Stderr, "%s: %s: invalid numeric argument %q\n", binName, flagName, raw)
		return 0, exitBadNumericArg
	}
	return n, exitSuccess
}
