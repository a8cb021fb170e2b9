package lint

import (
	"errors"
	"sort"
	"sync"
)

// ErrUnknownRule is returned when a rule name is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// globalRegistry holds the built-in rules.
var globalRegistry = NewRegistry()

// Registry stores rules by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Add adds a rule, replacing any rule with the same name.
func (r *Registry) Add(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[rule.Name()] = rule
}

// Get returns a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// All returns all rules sorted by name.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Name() < rules[j].Name() })
	return rules
}

// Names returns all rule names (sorted).
func (r *Registry) Names() []string {
	rules := r.All()
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name()
	}
	return names
}

// Len returns the number of rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Clone returns a registry with the same rules. Used to add custom rules
// without touching the global registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c := NewRegistry()
	for name, rule := range r.rules {
		c.rules[name] = rule
	}
	return c
}

// Register adds a rule definition to the global registry.
// Call this from init() functions in rule packages.
func Register(def RuleDef) {
	globalRegistry.Add(Wrap(def))
}

// Default returns the global registry.
func Default() *Registry {
	return globalRegistry
}

// Get returns a globally registered rule by name.
func Get(name string) (Rule, bool) {
	return globalRegistry.Get(name)
}

// All returns all globally registered rules sorted by name.
func All() []Rule {
	return globalRegistry.All()
}
