// Package keymap resolves key presses to named commands per UI context.
package keymap

import (
	"log/slog"
	"sort"
)

// Binding maps a key to a command within a context.
type Binding struct {
	Key     string
	Command string
	Context string
}

// Registry holds the active bindings.
type Registry struct {
	// bindings[context][key] = command
	bindings map[string]map[string]string
}

// NewRegistry creates a registry from bindings.
func NewRegistry(bindings []Binding) *Registry {
	r := &Registry{bindings: make(map[string]map[string]string)}
	for _, b := range bindings {
		r.bind(b)
	}
	return r
}

// Default returns a registry of DefaultBindings.
func Default() *Registry {
	return NewRegistry(DefaultBindings())
}

func (r *Registry) bind(b Binding) {
	ctx := r.bindings[b.Context]
	if ctx == nil {
		ctx = make(map[string]string)
		r.bindings[b.Context] = ctx
	}
	ctx[b.Key] = b.Command
}

// ApplyOverrides binds each key to its command in every context the command
// already appears in. Overrides naming unknown commands are skipped.
func (r *Registry) ApplyOverrides(overrides map[string]string) {
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		command := overrides[key]
		contexts := r.contextsFor(command)
		if len(contexts) == 0 {
			slog.Warn("keymap: override for unknown command", "key", key, "command", command)
			continue
		}
		for _, ctx := range contexts {
			r.bind(Binding{Key: key, Command: command, Context: ctx})
		}
	}
}

// HasCommand reports whether command is bound in any context.
func (r *Registry) HasCommand(command string) bool {
	return len(r.contextsFor(command)) > 0
}

func (r *Registry) contextsFor(command string) []string {
	var out []string
	for ctx, keys := range r.bindings {
		for _, c := range keys {
			if c == command {
				out = append(out, ctx)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Lookup resolves key in context, falling back to global bindings.
func (r *Registry) Lookup(key, context string) (string, bool) {
	if cmd, ok := r.bindings[context][key]; ok {
		return cmd, true
	}
	cmd, ok := r.bindings[ContextGlobal][key]
	return cmd, ok
}

// KeysFor returns the keys bound to command in context, sorted.
func (r *Registry) KeysFor(command, context string) []string {
	var keys []string
	for k, c := range r.bindings[context] {
		if c == command {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// BindingsFor returns the bindings of context sorted by key.
func (r *Registry) BindingsFor(context string) []Binding {
	var out []Binding
	for k, c := range r.bindings[context] {
		out = append(out, Binding{Key: k, Command: c, Context: context})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
