package lint

// Config selects the rules of a run.
//
// A rule is selected when one of its tags is in Tags or its code is in
// Include, and its code is not in Exclude. A nil Tags keeps every rule; an
// empty non-nil Tags keeps only included rules. Unknown codes are ignored.
type Config struct {
	// Tags limits the selection to rules carrying one of these tags
	Tags []string

	// Include adds rules regardless of their tags
	Include []string

	// Exclude removes rules; it wins over Tags and Include
	Exclude []string
}

// NewConfig creates the default selection: every recommended rule.
func NewConfig() *Config {
	return &Config{Tags: []string{TagRecommended}}
}

// IsDisabled returns true if the rule is explicitly excluded.
func (c *Config) IsDisabled(code string) bool {
	if c == nil {
		return false
	}
	for _, e := range c.Exclude {
		if e == code {
			return true
		}
	}
	return false
}

// Disable excludes a rule by code.
func (c *Config) Disable(code string) *Config {
	c.Exclude = append(c.Exclude, code)
	return c
}

// Enable includes a rule by code regardless of its tags.
func (c *Config) Enable(code string) *Config {
	c.Include = append(c.Include, code)
	return c
}

// RuleSet filters registry by the configuration. A nil registry means the
// default registry; a nil config selects every registered rule.
func (c *Config) RuleSet(registry *Registry) *RuleSet {
	if registry == nil {
		registry = DefaultRegistry
	}
	if c == nil {
		return NewRuleSet(registry.All())
	}
	return NewRuleSet(registry.Filter(c.Tags, c.Exclude, c.Include))
}
