package lint

// Rule is the interface all lint rules implement.
type Rule interface {
	// Code returns the unique rule code, e.g. "no-unreachable"
	Code() string

	// Tags returns the rule's tags, e.g. []string{"recommended"}
	Tags() []string

	// Priority orders rules inside a RuleSet; lower runs first
	Priority() int

	// NewHandler returns the callbacks for analyzing one file
	NewHandler() Handler

	// Documentation methods
	Description() string
	BadExample() string
	GoodExample() string
}

// RuleInfo provides metadata about a rule for documentation/tooling.
type RuleInfo struct {
	Code        string   `json:"code"`
	Tags        []string `json:"tags"`
	Priority    int      `json:"priority"`
	Description string   `json:"description"`
	BadExample  string   `json:"bad_example,omitempty"`
	GoodExample string   `json:"good_example,omitempty"`
	DocsURL     string   `json:"docs_url"`
}

// GetRuleInfo extracts metadata from a Rule for documentation/tooling.
func GetRuleInfo(r Rule) RuleInfo {
	tags := r.Tags()
	if tags == nil {
		tags = []string{}
	}
	return RuleInfo{
		Code:        r.Code(),
		Tags:        tags,
		Priority:    r.Priority(),
		Description: r.Description(),
		BadExample:  r.BadExample(),
		GoodExample: r.GoodExample(),
		DocsURL:     BuildDocURL(r.Code()),
	}
}

// HasTag reports whether the rule carries tag.
func HasTag(r Rule, tag string) bool {
	for _, t := range r.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
