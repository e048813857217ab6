package lint

// RuleSet is the priority-ordered selection of rules for one run. It is
// read-only after construction and can be shared by concurrent workers.
type RuleSet struct {
	rules []Rule
	codes map[string]bool
}

// NewRuleSet copies rules and sorts them by priority.
func NewRuleSet(rules []Rule) *RuleSet {
	sorted := make([]Rule, len(rules))
	copy(sorted, rules)
	SortByPriority(sorted)

	codes := make(map[string]bool, len(sorted))
	for _, r := range sorted {
		codes[r.Code()] = true
	}
	return &RuleSet{rules: sorted, codes: codes}
}

// Rules returns the rules in execution order.
func (s *RuleSet) Rules() []Rule {
	return s.rules
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Has reports whether the set contains code.
func (s *RuleSet) Has(code string) bool {
	return s.codes[code]
}

// Codes returns the rule codes in execution order.
func (s *RuleSet) Codes() []string {
	codes := make([]string, len(s.rules))
	for i, r := range s.rules {
		codes[i] = r.Code()
	}
	return codes
}
