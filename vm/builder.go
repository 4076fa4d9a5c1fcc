package vm

import (
	"io"

	"github.com/rookscript/rookscript/resolve"
	"github.com/rookscript/rookscript/script"
)

// Builder assembles an Instance from a compiled Script plus the pluggable
// host contracts (host functions, scopes, environment, stack sizing) spec.md
// section 6 calls the "Instance API (to host code)". Every With* method
// returns the Builder so calls chain.
type Builder struct {
	scr *script.Script

	env *Environment

	hostResolvers []resolve.HostFunctionResolver
	scopes        resolve.Scopes

	activationDepth int
	valueDepth      int
	runawayLimit    int

	err error
}

// NewBuilder returns an empty Builder with the default stack sizing.
func NewBuilder() *Builder {
	return &Builder{
		activationDepth: defaultActivationDepth,
		valueDepth:      defaultValueDepth,
		runawayLimit:    defaultRunawayLimit,
		scopes:          resolve.Scopes{},
	}
}

// WithScript sets the compiled program to execute.
func (b *Builder) WithScript(scr *script.Script) *Builder {
	b.scr = scr
	return b
}

// WithSource assembles r's textual assembly (script/asm.go's format) into a
// Script. This is the minimal stand-in for a host-supplied front-end; it is
// a textual encoding of an already-designed instruction set, not a language
// parser (spec.md section 1 keeps a real front-end out of scope).
func (b *Builder) WithSource(r io.Reader) *Builder {
	src, err := io.ReadAll(r)
	if err != nil {
		b.err = err
		return b
	}
	scr, err := script.Assemble(string(src))
	if err != nil {
		b.err = err
		return b
	}
	b.scr = scr
	return b
}

// WithEnvironment sets the stdio bundle host functions may reach for.
func (b *Builder) WithEnvironment(env *Environment) *Builder {
	b.env = env
	return b
}

// WithFunctionResolver replaces any previously configured host function
// resolvers with r.
func (b *Builder) WithFunctionResolver(r resolve.HostFunctionResolver) *Builder {
	b.hostResolvers = []resolve.HostFunctionResolver{r}
	return b
}

// AndFunctionResolver composes r alongside any previously configured host
// function resolvers; earlier resolvers win on a name collision (spec.md
// section 4.5's compound resolver).
func (b *Builder) AndFunctionResolver(r resolve.HostFunctionResolver) *Builder {
	b.hostResolvers = append(b.hostResolvers, r)
	return b
}

// WithNamedFunctionResolver composes r under a fixed namespace alongside any
// previously configured host function resolvers.
func (b *Builder) WithNamedFunctionResolver(namespace string, r resolve.HostFunctionResolver) *Builder {
	return b.AndFunctionResolver(resolve.Namespace(namespace, r))
}

// WithScope registers a named VariableResolver, reachable via
// PUSH_SCOPE_VARIABLE/POP_SCOPE_VARIABLE under that name.
func (b *Builder) WithScope(name string, r resolve.VariableResolver) *Builder {
	b.scopes[name] = r
	return b
}

// WithScriptStack overrides the default operand/activation depth.
func (b *Builder) WithScriptStack(activationDepth, valueDepth int) *Builder {
	b.activationDepth = activationDepth
	b.valueDepth = valueDepth
	return b
}

// WithRunawayLimit caps the number of instructions a single Call may
// execute before it fails with a ScriptExecution Fault. 0 (the default)
// means unlimited.
func (b *Builder) WithRunawayLimit(n int) *Builder {
	b.runawayLimit = n
	return b
}

// CreateInstance validates the accumulated configuration and returns a
// ready-to-Call Instance.
func (b *Builder) CreateInstance() (*Instance, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.scr == nil {
		return nil, newFault(Build, -1, "no script configured")
	}
	if b.activationDepth <= 0 || b.valueDepth <= 0 {
		return nil, newFault(Build, -1, "activation depth and value depth must both be positive")
	}

	env := b.env
	if env == nil {
		env = DefaultEnvironment()
	}

	var hostResolver resolve.HostFunctionResolver
	switch len(b.hostResolvers) {
	case 0:
		hostResolver = resolve.Functions(nil)
	case 1:
		hostResolver = b.hostResolvers[0]
	default:
		hostResolver = resolve.Compose(b.hostResolvers...)
	}

	return &Instance{
		scr:           b.scr,
		stack:         NewStack(b.activationDepth, b.valueDepth),
		hostResolver:  hostResolver,
		scopeResolver: b.scopes,
		env:           env,
		runawayLimit:  b.runawayLimit,
	}, nil
}
