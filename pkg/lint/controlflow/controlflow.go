// Package controlflow answers whether statements can execute.
//
// Every function body, and the top level of a file, is a unit. A unit is
// analyzed the first time one of its statements is queried; the result is
// memoized for the rest of the file's analysis.
//
// The analysis follows statement completions rather than building explicit
// edges: each statement reports whether it can complete normally and which
// break and continue targets it can jump to. A statement is reachable when
// the statement before it can complete normally. Hoisted declarations
// (function declarations, type-only declarations and var declarations
// without initializers) are never reported as unreachable.
package controlflow

import (
	"sort"

	"github.com/leapstack-labs/jslint/pkg/ast"
)

// StmtInfo is the result for one statement.
type StmtInfo struct {
	Block     int  // straight-line block index within the unit
	Reachable bool // some path from the unit entry executes the statement
	Reported  bool // unreachable and not covered by an unreachable ancestor
}

// Unit holds the analysis of one function body or file top level.
type Unit struct {
	Node  *ast.Node
	stmts map[ast.NodeID]*StmtInfo
	order []ast.NodeID
	// completes reports whether the unit's body can run off its end
	completes bool
}

// Stmt returns the info for a statement of the unit.
func (u *Unit) Stmt(id ast.NodeID) (*StmtInfo, bool) {
	s, ok := u.stmts[id]
	return s, ok
}

// CompletesNormally reports whether execution can fall off the end of the
// unit's body, e.g. a function that does not always return or throw.
func (u *Unit) CompletesNormally() bool {
	return u.completes
}

// Analysis is the lazily built control-flow view of one file.
type Analysis struct {
	file  *ast.File
	units map[ast.NodeID]*Unit
}

// New prepares an analysis for file. No unit is analyzed yet.
func New(file *ast.File) *Analysis {
	return &Analysis{file: file, units: make(map[ast.NodeID]*Unit)}
}

// UnitOf returns the node of the unit enclosing n: the nearest function or
// the program.
func UnitOf(n *ast.Node) *ast.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if ast.IsFunction(p.Kind) || p.Kind == ast.KindProgram {
			return p
		}
	}
	return n
}

// Unit returns the memoized analysis of the unit rooted at node, which must
// be a function or the program.
func (a *Analysis) Unit(node *ast.Node) *Unit {
	a.file.MustOwn(node)
	if u, ok := a.units[node.ID]; ok {
		return u
	}
	u := analyzeUnit(node)
	a.units[node.ID] = u
	return u
}

// AnalyzedUnits returns how many units have been analyzed so far.
func (a *Analysis) AnalyzedUnits() int {
	return len(a.units)
}

// IsReachable reports whether the statement containing n can execute.
// Nodes that are not statements inherit the answer of their nearest
// enclosing statement.
func (a *Analysis) IsReachable(n *ast.Node) bool {
	a.file.MustOwn(n)
	unitNode := UnitOf(n)
	if n.Kind == ast.KindProgram {
		return true
	}
	u := a.Unit(unitNode)
	for cur := n; cur != nil && cur != unitNode; cur = cur.Parent {
		if s, ok := u.Stmt(cur.ID); ok {
			return s.Reachable
		}
	}
	return true
}

// Unreachable returns every reported unreachable statement in the file,
// in source order. It analyzes all units.
func (a *Analysis) Unreachable() []*ast.Node {
	var out []*ast.Node
	ast.Walk(a.file.Root, func(n *ast.Node) bool {
		if n.Kind != ast.KindProgram && !ast.IsFunction(n.Kind) {
			return true
		}
		u := a.Unit(n)
		for _, id := range u.order {
			if u.stmts[id].Reported {
				out = append(out, a.file.Node(id))
			}
		}
		return true
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	return out
}

// IsUnreachableRoot reports whether n is an unreachable statement that is
// not itself a block, not a hoisted declaration, and not nested inside
// another reported statement.
func (a *Analysis) IsUnreachableRoot(n *ast.Node) bool {
	a.file.MustOwn(n)
	if n.Kind == ast.KindProgram {
		return false
	}
	u := a.Unit(UnitOf(n))
	s, ok := u.Stmt(n.ID)
	return ok && s.Reported
}
