package style

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/lint/scope"
)

func init() {
	lint.MustRegister(NoInnerDeclarations)
}

// NoInnerDeclarations reports function declarations and var declarations
// that are nested in blocks instead of sitting at the root of a function
// body or of the program.
var NoInnerDeclarations = lint.Define(lint.RuleDef{
	Code:        "no-inner-declarations",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows variable or function definitions in nested blocks.",
	BadExample:  "if (test) {\n  function doSomething() {}\n}",
	GoodExample: "function doSomething() {}\nif (test) {\n  doSomething();\n}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindFunctionDecl, ast.KindGeneratorDecl, ast.KindVariableDecl},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				if atRoot(n) || n.Ancestor(ast.KindAmbient) != nil {
					return lint.Continue
				}
				kind := "function"
				if n.Kind == ast.KindVariableDecl {
					kind = "variable"
				}
				root := "program"
				tree := ctx.Scope()
				if tree.EnclosingFunction(tree.ScopeOf(n.Parent)) != scope.NoScope {
					root = "function body"
				}
				ctx.ReportWithHint(n, "no-inner-declarations",
					fmt.Sprintf("Move %s declaration to %s root", kind, root),
					fmt.Sprintf("Move the declaration to the %s root", root))
				return lint.Continue
			},
		}
	},
})

// atRoot reports whether a declaration sits directly in a program,
// function body or namespace body, possibly behind an export.
func atRoot(n *ast.Node) bool {
	p := n.Parent
	if p != nil && p.Kind == ast.KindExport {
		p = p.Parent
	}
	switch {
	case p == nil, p.Kind == ast.KindProgram:
		return true
	case p.Kind == ast.KindStatementBlock:
		if isFunctionBody(p) {
			return true
		}
		return p.Parent != nil && (p.Parent.Kind == ast.KindInternalModule || p.Parent.Kind == ast.KindModuleDecl)
	case p.Kind == ast.KindFor:
		// for (var i = 0; ...) belongs to the loop header
		return n.Field != "body"
	}
	return false
}
