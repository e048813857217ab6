package controlflow

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
)

// completion summarizes how a statement can finish when it is entered.
// Break and continue targets are keyed by label; "" is the unlabeled target.
type completion struct {
	normal    bool
	breaks    map[string]bool
	continues map[string]bool
}

func normalCompletion() completion {
	return completion{normal: true}
}

func abrupt() completion {
	return completion{}
}

// jumps merges the break and continue targets of other into c.
func (c *completion) jumps(other completion) {
	for l := range other.breaks {
		c.addBreak(l)
	}
	for l := range other.continues {
		c.addContinue(l)
	}
}

func (c *completion) addBreak(label string) {
	if c.breaks == nil {
		c.breaks = make(map[string]bool)
	}
	c.breaks[label] = true
}

func (c *completion) addContinue(label string) {
	if c.continues == nil {
		c.continues = make(map[string]bool)
	}
	c.continues[label] = true
}

// consumeBreak removes a break target and reports whether it was present.
func (c *completion) consumeBreak(label string) bool {
	ok := c.breaks[label]
	delete(c.breaks, label)
	return ok
}

func (c *completion) consumeContinue(labels []string) bool {
	ok := c.continues[""]
	delete(c.continues, "")
	for _, l := range labels {
		if c.continues[l] {
			ok = true
			delete(c.continues, l)
		}
	}
	return ok
}

type analyzer struct {
	u     *Unit
	block int
}

func analyzeUnit(node *ast.Node) *Unit {
	u := &Unit{Node: node, stmts: make(map[ast.NodeID]*StmtInfo)}
	a := &analyzer{u: u}
	switch {
	case node.Kind == ast.KindProgram:
		u.completes = a.list(statements(node), true, false).normal
	default:
		body := node.ChildByField("body")
		if body == nil || body.Kind != ast.KindStatementBlock {
			// expression-bodied arrow functions have no statements
			u.completes = true
			return u
		}
		u.completes = a.stmt(body, true, false, nil).normal
	}
	return u
}

func (a *analyzer) record(n *ast.Node, reachable, covered bool) *StmtInfo {
	info := &StmtInfo{
		Block:     a.block,
		Reachable: reachable,
		Reported:  !reachable && !covered && reportable(n),
	}
	a.u.stmts[n.ID] = info
	a.u.order = append(a.u.order, n.ID)
	return info
}

// list analyzes a statement sequence. A statement is reachable when every
// statement before it can complete normally; hoisted declarations are
// always reachable and do not affect the flow.
func (a *analyzer) list(stmts []*ast.Node, reachable, covered bool) completion {
	out := normalCompletion()
	for _, s := range stmts {
		if isHoisted(s) {
			a.stmt(s, true, covered, nil)
			continue
		}
		c := a.stmt(s, reachable && out.normal, covered, nil)
		out.jumps(c)
		if !c.normal && out.normal {
			out.normal = false
			a.block++
		}
	}
	return out
}

// stmt analyzes one statement. labels holds the labels directly attached
// to it, which a loop uses as continue targets.
func (a *analyzer) stmt(n *ast.Node, reachable, covered bool, labels []string) completion {
	if n == nil {
		return normalCompletion()
	}
	info := a.record(n, reachable, covered)
	if n.Kind != ast.KindStatementBlock {
		covered = covered || info.Reported
	}

	switch n.Kind {
	case ast.KindStatementBlock:
		return a.list(statements(n), reachable, covered)

	case ast.KindReturn, ast.KindThrow:
		a.block++
		return abrupt()

	case ast.KindBreak:
		a.block++
		c := abrupt()
		c.addBreak(labelOf(n))
		return c

	case ast.KindContinue:
		a.block++
		c := abrupt()
		c.addContinue(labelOf(n))
		return c

	case ast.KindIf:
		return a.ifStmt(n, reachable, covered)

	case ast.KindWhile:
		cond := n.ChildByField("condition")
		return a.loop(n, reachable, covered, labels, literalBool(cond), false)

	case ast.KindFor:
		return a.loop(n, reachable, covered, labels, forCondition(n), false)

	case ast.KindDo:
		cond := n.ChildByField("condition")
		return a.loop(n, reachable, covered, labels, literalBool(cond), true)

	case ast.KindForIn:
		a.block++
		body := a.stmt(n.ChildByField("body"), reachable, covered, nil)
		body.consumeBreak("")
		body.consumeContinue(labels)
		body.normal = true
		a.block++
		return body

	case ast.KindLabeled:
		return a.labeled(n, reachable, covered, labels)

	case ast.KindSwitch:
		return a.switchStmt(n, reachable, covered)

	case ast.KindTry:
		return a.tryStmt(n, reachable, covered)

	case ast.KindWith:
		a.block++
		c := a.stmt(n.ChildByField("body"), reachable, covered, nil)
		a.block++
		return c
	}
	return normalCompletion()
}

func (a *analyzer) ifStmt(n *ast.Node, reachable, covered bool) completion {
	a.block++
	out := a.stmt(n.ChildByField("consequence"), reachable, covered, nil)
	thenNormal := out.normal
	elseNormal := true
	if alt := n.ChildByField("alternative"); alt != nil {
		if body := alt.FirstNamedChild(""); body != nil {
			a.block++
			c := a.stmt(body, reachable, covered, nil)
			out.jumps(c)
			elseNormal = c.normal
		}
	}
	out.normal = thenNormal || elseNormal
	a.block++
	return out
}

// truth is a statically known loop condition.
type truth int

const (
	unknown truth = iota
	alwaysTrue
	alwaysFalse
)

func (a *analyzer) loop(n *ast.Node, reachable, covered bool, labels []string, cond truth, postTest bool) completion {
	a.block++
	bodyReachable := reachable && (postTest || cond != alwaysFalse)
	body := a.stmt(n.ChildByField("body"), bodyReachable, covered, nil)

	broke := body.consumeBreak("")
	continued := body.consumeContinue(labels)

	out := completion{}
	out.jumps(body)
	switch {
	case broke:
		out.normal = true
	case cond == alwaysTrue:
		out.normal = false
	case postTest:
		out.normal = body.normal || continued
	default:
		out.normal = true
	}
	a.block++
	return out
}

func (a *analyzer) labeled(n *ast.Node, reachable, covered bool, labels []string) completion {
	label := ""
	if l := n.ChildByField("label"); l != nil {
		label = l.Text()
	}
	body := n.ChildByField("body")
	if body == nil {
		return normalCompletion()
	}
	var inner []string
	if ast.IsLoop(body.Kind) || body.Kind == ast.KindLabeled {
		inner = append(append(inner, labels...), label)
	}
	c := a.stmt(body, reachable, covered, inner)
	if c.consumeBreak(label) {
		c.normal = true
	}
	return c
}

func (a *analyzer) switchStmt(n *ast.Node, reachable, covered bool) completion {
	body := n.ChildByField("body")
	out := normalCompletion()
	if body == nil {
		return out
	}
	hasDefault := false
	fallsOut := true
	for _, clause := range body.NamedChildren() {
		if clause.Kind != ast.KindSwitchCase && clause.Kind != ast.KindSwitchDefault {
			continue
		}
		if clause.Kind == ast.KindSwitchDefault {
			hasDefault = true
		}
		a.block++
		// every clause can be selected by the discriminant
		c := a.list(caseStatements(clause), reachable, covered)
		out.jumps(c)
		fallsOut = c.normal
	}
	broke := out.consumeBreak("")
	out.normal = !hasDefault || broke || fallsOut
	a.block++
	return out
}

func (a *analyzer) tryStmt(n *ast.Node, reachable, covered bool) completion {
	a.block++
	out := a.stmt(n.ChildByField("body"), reachable, covered, nil)
	normal := out.normal

	if handler := n.ChildByField("handler"); handler != nil {
		if body := handler.ChildByField("body"); body != nil {
			a.block++
			c := a.stmt(body, reachable, covered, nil)
			out.jumps(c)
			normal = normal || c.normal
		}
	}

	if finalizer := n.ChildByField("finalizer"); finalizer != nil {
		if body := finalizer.ChildByField("body"); body != nil {
			a.block++
			f := a.stmt(body, reachable, covered, nil)
			if !f.normal {
				// an abrupt finally overrides whatever try and catch did
				a.block++
				return f
			}
			out.jumps(f)
		}
	}
	out.normal = normal
	a.block++
	return out
}

// statements returns the named children of a block or program.
func statements(n *ast.Node) []*ast.Node {
	return n.NamedChildren()
}

// caseStatements returns the statements of a switch clause, skipping the
// case value.
func caseStatements(clause *ast.Node) []*ast.Node {
	var out []*ast.Node
	for _, c := range clause.Children {
		if c.Named && c.Field != "value" {
			out = append(out, c)
		}
	}
	return out
}

func labelOf(n *ast.Node) string {
	if l := n.ChildByField("label"); l != nil {
		return l.Text()
	}
	return ""
}

func literalBool(n *ast.Node) truth {
	n = ast.Unparen(n)
	if n == nil {
		return unknown
	}
	switch n.Kind {
	case ast.KindTrue:
		return alwaysTrue
	case ast.KindFalse:
		return alwaysFalse
	}
	return unknown
}

// forCondition classifies the condition of a for statement. The grammar
// wraps it in an expression or empty statement; a missing condition loops
// forever.
func forCondition(n *ast.Node) truth {
	cond := n.ChildByField("condition")
	if cond == nil {
		return alwaysTrue
	}
	switch cond.Kind {
	case ast.KindEmptyStmt:
		return alwaysTrue
	case ast.KindExpressionStmt:
		return literalBool(cond.FirstNamedChild(""))
	}
	return literalBool(cond)
}

func reportable(n *ast.Node) bool {
	switch n.Kind {
	case ast.KindStatementBlock, ast.KindEmptyStmt:
		return false
	}
	return !isHoisted(n)
}

// isHoisted reports whether a statement declares something that exists
// before any statement of its unit runs.
func isHoisted(n *ast.Node) bool {
	switch {
	case n.Kind == ast.KindFunctionDecl, n.Kind == ast.KindGeneratorDecl:
		return true
	case ast.IsTypeOnly(n.Kind):
		return true
	case n.Kind == ast.KindExport:
		if decl := n.ChildByField("declaration"); decl != nil {
			return isHoisted(decl)
		}
	case n.Kind == ast.KindVariableDecl:
		for _, d := range n.NamedChildren() {
			if d.Kind == ast.KindVariableDeclarator && d.ChildByField("value") != nil {
				return false
			}
		}
		return true
	}
	return false
}
