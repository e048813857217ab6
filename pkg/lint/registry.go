package lint

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateRule is returned when a rule code is registered twice.
var ErrDuplicateRule = errors.New("duplicate rule code")

// DefaultRegistry is the process-wide registry built-in rules register into
// from init() functions. It is treated as read-only once main starts.
var DefaultRegistry = NewRegistry()

// Registry stores registered lint rules for discovery.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]Rule // keyed by code
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]Rule)}
}

// Register adds a rule. Registering a code twice is an error.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[rule.Code()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRule, rule.Code())
	}
	r.rules[rule.Code()] = rule
	return nil
}

// MustRegister is Register for init() functions; it panics on error.
func (r *Registry) MustRegister(rule Rule) {
	if err := r.Register(rule); err != nil {
		panic(err)
	}
}

// Get returns a rule by its code.
func (r *Registry) Get(code string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[code]
	return rule, ok
}

// Known reports whether a rule with the given code is registered.
func (r *Registry) Known(code string) bool {
	_, ok := r.Get(code)
	return ok
}

// Count returns the number of registered rules.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// All returns all registered rules sorted by code.
func (r *Registry) All() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]Rule, 0, len(r.rules))
	for _, rule := range r.rules {
		rules = append(rules, rule)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Code() < rules[j].Code() })
	return rules
}

// Recommended returns the rules tagged "recommended", sorted by code.
func (r *Registry) Recommended() []Rule {
	var rules []Rule
	for _, rule := range r.All() {
		if HasTag(rule, TagRecommended) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Filter selects rules by tags and explicit include/exclude lists.
//
// A nil tags slice keeps every rule; a non-nil empty slice keeps none. A rule
// passes when it carries one of the tags or is listed in include, and is not
// listed in exclude. Exclude always wins. Unknown codes are ignored. The
// result is sorted by code.
func (r *Registry) Filter(tags, exclude, include []string) []Rule {
	tagSet := toSet(tags)
	excluded := toSet(exclude)
	included := toSet(include)

	var rules []Rule
	for _, rule := range r.All() {
		code := rule.Code()
		if excluded[code] {
			continue
		}
		if tags == nil || included[code] || matchesAny(rule, tagSet) {
			rules = append(rules, rule)
		}
	}
	return rules
}

// Clear removes all registered rules. Used for testing.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = make(map[string]Rule)
}

// SortByPriority sorts rules by priority, then code. The sort is stable.
func SortByPriority(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority() != rules[j].Priority() {
			return rules[i].Priority() < rules[j].Priority()
		}
		return rules[i].Code() < rules[j].Code()
	})
}

func matchesAny(rule Rule, tags map[string]bool) bool {
	for _, t := range rule.Tags() {
		if tags[t] {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}

// =============================================================================
// Package-level access to DefaultRegistry
// =============================================================================

// Register adds a rule to the default registry.
func Register(rule Rule) error {
	return DefaultRegistry.Register(rule)
}

// MustRegister adds a rule to the default registry and panics on duplicates.
// Call this from init() functions in rule packages.
func MustRegister(rule Rule) {
	DefaultRegistry.MustRegister(rule)
}

// GetByCode returns a rule from the default registry.
func GetByCode(code string) (Rule, bool) {
	return DefaultRegistry.Get(code)
}

// All returns all rules of the default registry sorted by code.
func All() []Rule {
	return DefaultRegistry.All()
}

// Recommended returns the recommended rules of the default registry.
func Recommended() []Rule {
	return DefaultRegistry.Recommended()
}

// Filter applies Registry.Filter to the default registry.
func Filter(tags, exclude, include []string) []Rule {
	return DefaultRegistry.Filter(tags, exclude, include)
}
