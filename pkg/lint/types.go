package lint

import (
	"sort"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/token"
)

// =============================================================================
// Diagnostics
// =============================================================================

// Diagnostic represents a lint finding.
type Diagnostic struct {
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	Hint     string         `json:"hint,omitempty"`
	Range    token.Range    `json:"range"`
	Pos      token.Position `json:"pos"`
	EndPos   token.Position `json:"end_pos"`
	Filename string         `json:"filename,omitempty"`
}

// SortDiagnostics orders diagnostics by start offset, keeping the emission
// order for diagnostics that start at the same offset.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Range.Start < diags[j].Range.Start
	})
}

// =============================================================================
// Handlers
// =============================================================================

// Action tells the dispatch engine how to continue after an enter callback.
type Action int

const (
	// Continue visits the children of the node.
	Continue Action = iota
	// SkipChildren skips the subtree of the node. Exit callbacks still run.
	SkipChildren
)

// NodeFunc is called when the walk enters a node.
type NodeFunc func(ctx *Context, node *ast.Node) Action

// ExitFunc is called when the walk leaves a node.
type ExitFunc func(ctx *Context, node *ast.Node)

// FileFunc is called once per file.
type FileFunc func(ctx *Context)

// Handler is the per-file callback set of a rule. Every field is optional.
//
// Enter and Exit run only for nodes whose kind is listed in Kinds.
// EnterNode and ExitNode run for every named node and are meant for
// nesting-depth bookkeeping. CheckFile runs after the walk, CheckDirectives
// runs after ignore directives have been matched against the diagnostics of
// all other rules.
type Handler struct {
	Kinds     []string
	Enter     NodeFunc
	Exit      ExitFunc
	EnterNode NodeFunc
	ExitNode  ExitFunc

	CheckFile       FileFunc
	CheckDirectives FileFunc
}

func (h *Handler) walks() bool {
	return h.EnterNode != nil || h.ExitNode != nil || (len(h.Kinds) > 0 && (h.Enter != nil || h.Exit != nil))
}

// =============================================================================
// Rule Definitions
// =============================================================================

// RuleDef is a data-driven rule definition.
//
// Setup is called once per analyzed file. Rules that need per-file state keep
// it in variables captured by the returned handler closures, so a RuleDef is
// safe to share between concurrent file workers.
type RuleDef struct {
	Code     string   // Unique identifier, e.g. "no-debugger"
	Tags     []string // e.g. TagRecommended
	Priority int      // lower runs first
	Setup    func() Handler

	// Documentation fields
	Description string
	BadExample  string
	GoodExample string
}

// Define turns a RuleDef into a Rule.
func Define(def RuleDef) Rule {
	return &defRule{def: def}
}

type defRule struct {
	def RuleDef
}

func (r *defRule) Code() string        { return r.def.Code }
func (r *defRule) Tags() []string      { return r.def.Tags }
func (r *defRule) Priority() int       { return r.def.Priority }
func (r *defRule) Description() string { return r.def.Description }
func (r *defRule) BadExample() string  { return r.def.BadExample }
func (r *defRule) GoodExample() string { return r.def.GoodExample }

func (r *defRule) NewHandler() Handler {
	if r.def.Setup == nil {
		return Handler{}
	}
	return r.def.Setup()
}
