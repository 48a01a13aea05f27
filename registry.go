package typeormlint

import (
	"sort"
	"sync"
)

// Registry holds the rules a Linter can run, keyed by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds rule. Registering a second rule under the same name is
// an error.
func (r *Registry) Register(rule Rule) error {
	name := rule.Meta().Name
	if name == "" {
		return NewError(CodeInternal, "rule has no name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[name]; exists {
		return Errorf(CodeInternal, "duplicate rule registration: %s", name)
	}
	r.rules[name] = rule
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(rules ...Rule) *Registry {
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic("typeormlint: " + err.Error())
		}
	}
	return r
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Rules returns all rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Meta().Name < out[j].Meta().Name })
	return out
}

// Names returns the registered rule names, sorted.
func (r *Registry) Names() []string {
	rules := r.Rules()
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Meta().Name
	}
	return names
}

// RuleConfig is the configured severity and options of one rule.
type RuleConfig struct {
	Severity Severity
	Options  Options
}

// Recommended returns the preset: every recommended rule at error,
// every other rule off.
func (r *Registry) Recommended() map[string]RuleConfig {
	out := make(map[string]RuleConfig)
	for _, rule := range r.Rules() {
		sev := SeverityOff
		if rule.Meta().Recommended {
			sev = SeverityError
		}
		out[rule.Meta().Name] = RuleConfig{Severity: sev}
	}
	return out
}
