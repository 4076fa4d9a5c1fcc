package resolve

import "strings"

// Functions is a slice-backed HostFunctionResolver for a flat set of
// Functions exposed under no namespace (or, via Namespace, under one).
// Lookup is case-insensitive, per spec.md section 4.5.
type Functions []Function

func (fs Functions) find(name string) (Function, bool) {
	for _, f := range fs {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

func (fs Functions) Contains(namespace, name string) bool {
	if namespace != "" {
		return false
	}
	_, ok := fs.find(name)
	return ok
}

func (fs Functions) Get(namespace, name string) (Function, bool) {
	if namespace != "" {
		return nil, false
	}
	return fs.find(name)
}

func (fs Functions) All() []Function {
	out := make([]Function, len(fs))
	copy(out, fs)
	return out
}

// namespaced wraps a HostFunctionResolver so its functions only answer under
// a fixed namespace, implementing spec.md section 4.5's "namespaced or
// global scopes" requirement for compound resolvers.
type namespaced struct {
	ns   string
	next HostFunctionResolver
}

// Namespace returns a HostFunctionResolver that exposes r's functions only
// when looked up under the given namespace.
func Namespace(ns string, r HostFunctionResolver) HostFunctionResolver {
	return namespaced{ns: ns, next: r}
}

func (n namespaced) Contains(namespace, name string) bool {
	if !strings.EqualFold(namespace, n.ns) {
		return false
	}
	return n.next.Contains("", name)
}

func (n namespaced) Get(namespace, name string) (Function, bool) {
	if !strings.EqualFold(namespace, n.ns) {
		return nil, false
	}
	return n.next.Get("", name)
}

func (n namespaced) All() []Function { return n.next.All() }

// compound is a HostFunctionResolver built from an ordered sequence of
// underlying resolvers; the first to answer Contains/Get wins.
type compound struct {
	resolvers []HostFunctionResolver
}

// Compose builds a single HostFunctionResolver out of a sequence of
// resolvers, searched in order (spec.md section 4.5).
func Compose(resolvers ...HostFunctionResolver) HostFunctionResolver {
	return compound{resolvers: resolvers}
}

func (c compound) Contains(namespace, name string) bool {
	for _, r := range c.resolvers {
		if r.Contains(namespace, name) {
			return true
		}
	}
	return false
}

func (c compound) Get(namespace, name string) (Function, bool) {
	for _, r := range c.resolvers {
		if f, ok := r.Get(namespace, name); ok {
			return f, true
		}
	}
	return nil, false
}

func (c compound) All() []Function {
	var out []Function
	for _, r := range c.resolvers {
		out = append(out, r.All()...)
	}
	return out
}

// compoundScopes is a ScopeResolver built from an ordered sequence of
// ScopeResolvers; the first to know the scope wins.
type compoundScopes struct {
	resolvers []ScopeResolver
}

// ComposeScopes builds a single ScopeResolver out of a sequence of
// ScopeResolvers, searched in order.
func ComposeScopes(resolvers ...ScopeResolver) ScopeResolver {
	return compoundScopes{resolvers: resolvers}
}

func (c compoundScopes) ContainsScope(name string) bool {
	for _, r := range c.resolvers {
		if r.ContainsScope(name) {
			return true
		}
	}
	return false
}

func (c compoundScopes) GetScope(name string) (VariableResolver, bool) {
	for _, r := range c.resolvers {
		if v, ok := r.GetScope(name); ok {
			return v, true
		}
	}
	return nil, false
}
