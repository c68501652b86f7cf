package cmd

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultRegistry is the global registry commands add themselves to from init().
var DefaultRegistry = NewRegistry()

// Registry stores commands by lowercase name and alias. It does not dispatch;
// adapters look commands up and invoke them with their own context.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]Command
	aliases  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]Command),
		aliases:  make(map[string]string),
	}
}

// Register adds c under its name and aliases. A name or alias that is already
// taken is an error and leaves the registry unchanged.
func (r *Registry) Register(c Command) error {
	name := strings.ToLower(c.Name())
	var aliases []string
	if a, ok := As[Aliased](c); ok {
		for _, alias := range a.Aliases() {
			aliases = append(aliases, strings.ToLower(alias))
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range append([]string{name}, aliases...) {
		if r.taken(key) {
			return fmt.Errorf("command name %q already registered", key)
		}
	}

	r.commands[name] = c
	for _, alias := range aliases {
		r.aliases[alias] = name
	}
	return nil
}

// MustRegister is Register for init() time; it panics on conflicts.
func (r *Registry) MustRegister(c Command) {
	if err := r.Register(c); err != nil {
		panic(err)
	}
}

func (r *Registry) taken(key string) bool {
	_, isName := r.commands[key]
	_, isAlias := r.aliases[key]
	return isName || isAlias
}

// Lookup resolves a name or alias, case-insensitively.
func (r *Registry) Lookup(name string) (Command, bool) {
	key := strings.ToLower(name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	c, ok := r.commands[key]
	return c, ok
}

// All returns every registered command once, sorted by name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	list := make([]Command, 0, len(r.commands))
	for _, c := range r.commands {
		list = append(list, c)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}
