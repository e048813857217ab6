package lint

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/token"
)

// ruleState is the per-file state of one rule inside a dispatcher.
type ruleState struct {
	code    string
	handler Handler
	kinds   map[string]bool
	failed  bool
	// skip is the node whose subtree the rule asked to skip, or nil
	skip *ast.Node
}

func (s *ruleState) wants(kind string) bool {
	return s.handler.EnterNode != nil || s.handler.ExitNode != nil || s.kinds[kind]
}

// dispatcher fans a single walk out to every rule of a RuleSet.
//
// At each node the interested rules are entered in RuleSet order; after the
// children the same rules are exited in reverse order, so state pushed on
// enter is popped like a stack across rules. SkipChildren only affects the
// rule that returned it.
type dispatcher struct {
	ctx    *Context
	states []*ruleState
	// interested caches, per node kind, the indexes of walking rules that
	// subscribe to the kind, in RuleSet order
	interested map[string][]int
	walking    []int
}

func newDispatcher(ctx *Context, rules *RuleSet) *dispatcher {
	d := &dispatcher{ctx: ctx, interested: make(map[string][]int)}
	for _, r := range rules.Rules() {
		s := &ruleState{code: r.Code()}
		d.states = append(d.states, s)
		idx := len(d.states) - 1
		d.call(s, ctx.file.Root, func() {
			s.handler = r.NewHandler()
		})
		if s.failed {
			continue
		}
		s.kinds = make(map[string]bool, len(s.handler.Kinds))
		for _, k := range s.handler.Kinds {
			s.kinds[k] = true
		}
		if s.handler.walks() {
			d.walking = append(d.walking, idx)
		}
	}
	return d
}

func (d *dispatcher) rulesFor(kind string) []int {
	if idx, ok := d.interested[kind]; ok {
		return idx
	}
	var idx []int
	for _, i := range d.walking {
		if d.states[i].wants(kind) {
			idx = append(idx, i)
		}
	}
	d.interested[kind] = idx
	return idx
}

func (d *dispatcher) walk(node *ast.Node) {
	if node == nil || len(d.walking) == 0 {
		return
	}
	d.visit(node)
}

func (d *dispatcher) visit(node *ast.Node) {
	var entered []int
	for _, i := range d.rulesFor(node.Kind) {
		s := d.states[i]
		if s.failed || s.skip != nil {
			continue
		}
		entered = append(entered, i)
		d.enter(s, node)
	}

	if d.anyActive() {
		for _, c := range node.Children {
			if c.Named {
				d.visit(c)
			}
		}
	}

	for j := len(entered) - 1; j >= 0; j-- {
		s := d.states[entered[j]]
		if s.skip == node {
			s.skip = nil
		}
		if s.failed {
			continue
		}
		d.exit(s, node)
	}
}

// anyActive reports whether some walking rule still receives callbacks.
func (d *dispatcher) anyActive() bool {
	for _, i := range d.walking {
		s := d.states[i]
		if !s.failed && s.skip == nil {
			return true
		}
	}
	return false
}

func (d *dispatcher) enter(s *ruleState, node *ast.Node) {
	h := &s.handler
	d.call(s, node, func() {
		action := Continue
		if h.EnterNode != nil {
			action = h.EnterNode(d.ctx, node)
		}
		if h.Enter != nil && s.kinds[node.Kind] {
			if h.Enter(d.ctx, node) == SkipChildren {
				action = SkipChildren
			}
		}
		if action == SkipChildren {
			s.skip = node
		}
	})
}

func (d *dispatcher) exit(s *ruleState, node *ast.Node) {
	h := &s.handler
	d.call(s, node, func() {
		if h.Exit != nil && s.kinds[node.Kind] {
			h.Exit(d.ctx, node)
		}
		if h.ExitNode != nil {
			h.ExitNode(d.ctx, node)
		}
	})
}

func (d *dispatcher) checkFile() {
	for _, s := range d.states {
		if s.failed || s.handler.CheckFile == nil {
			continue
		}
		d.call(s, d.ctx.file.Root, func() {
			s.handler.CheckFile(d.ctx)
		})
	}
}

// checkDirectives runs the directive rules in RuleSet order. Each rule's
// diagnostics are handed to match before the next rule runs, so a later
// rule sees the usage marks the earlier one caused.
func (d *dispatcher) checkDirectives(match func([]Diagnostic)) {
	for _, s := range d.states {
		if s.failed || s.handler.CheckDirectives == nil {
			continue
		}
		d.ctx.diags = nil
		d.call(s, d.ctx.file.Root, func() {
			s.handler.CheckDirectives(d.ctx)
		})
		match(d.ctx.diags)
	}
	d.ctx.diags = nil
}

// call runs fn on behalf of a rule. A panic disables the rule for the rest
// of the file and is reported as a diagnostic at node. Foreign-node panics
// are caller bugs and propagate.
func (d *dispatcher) call(s *ruleState, node *ast.Node, fn func()) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if err, ok := r.(error); ok && errors.Is(err, ast.ErrForeignNode) {
			panic(r)
		}
		s.failed = true
		d.ctx.linter.logger.Error("rule crashed",
			"rule", s.code,
			"file", d.ctx.file.Name,
			"node", node.String(),
			"panic", fmt.Sprint(r))
		rng := token.Range{Start: node.Range.Start, End: node.Range.Start}
		d.ctx.AddDiagnostic(rng, CodeInternalRuleError, fmt.Sprintf("rule %q crashed: %v", s.code, r))
	}()
	fn()
}
