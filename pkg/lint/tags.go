package lint

// Rule tags.
const (
	TagRecommended = "recommended"
	TagJSX         = "jsx"
	TagReact       = "react"
	TagJSR         = "jsr"
	TagFresh       = "fresh"
	TagWorkspace   = "workspace"
)

// AllTags lists every tag a built-in rule may carry.
var AllTags = []string{TagRecommended, TagJSX, TagReact, TagJSR, TagFresh, TagWorkspace}
