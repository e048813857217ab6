package correctness

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint"
)

func init() {
	lint.MustRegister(ConstructorSuper)
	lint.MustRegister(NoThisBeforeSuper)
}

// heritage classifies the extends clause of a class.
type heritage int

const (
	notDerived heritage = iota
	derived
	derivedFromNull
)

// classHeritage inspects the class owning a method definition.
func classHeritage(method *ast.Node) heritage {
	body := method.Parent
	if body == nil || body.Kind != ast.KindClassBody || body.Parent == nil {
		return notDerived
	}
	h := body.Parent.FirstNamedChild(ast.KindClassHeritage)
	if h == nil {
		return notDerived
	}
	expr := h.FirstNamedChild("")
	if expr != nil && expr.Kind == "extends_clause" {
		expr = expr.ChildByField("value")
	} else if !h.HasToken("extends") {
		// implements only
		return notDerived
	}
	if e := ast.Unparen(expr); e != nil && e.Kind == "null" {
		return derivedFromNull
	}
	return derived
}

func isConstructor(n *ast.Node) bool {
	if n.Kind != ast.KindMethod {
		return false
	}
	name := n.ChildByField("name")
	return name != nil && name.Text() == "constructor" && n.ChildByField("body") != nil
}

func isSuperCall(n *ast.Node) bool {
	if n.Kind != ast.KindCall {
		return false
	}
	fn := n.ChildByField("function")
	return fn != nil && fn.Kind == ast.KindSuper
}

// superCalls returns the super() calls that belong to the constructor body,
// looking through arrow functions but not other functions.
func superCalls(body *ast.Node) []*ast.Node {
	var calls []*ast.Node
	ast.Walk(body, func(n *ast.Node) bool {
		if n != body && ast.IsFunction(n.Kind) && n.Kind != ast.KindArrowFunction {
			return false
		}
		if n.Kind == ast.KindClassExpr {
			return false
		}
		if isSuperCall(n) {
			calls = append(calls, n)
		}
		return true
	})
	return calls
}

// ConstructorSuper checks that derived constructors call super() and other
// constructors do not.
var ConstructorSuper = lint.Define(lint.RuleDef{
	Code:        "constructor-super",
	Tags:        []string{lint.TagRecommended},
	Description: "Requires super() in constructors of derived classes and forbids it elsewhere.",
	BadExample:  "class A extends B {\n  constructor() {}\n}",
	GoodExample: "class A extends B {\n  constructor() {\n    super();\n  }\n}",
	Setup: func() lint.Handler {
		return lint.Handler{
			Kinds: []string{ast.KindMethod},
			Enter: func(ctx *lint.Context, n *ast.Node) lint.Action {
				if !isConstructor(n) {
					return lint.Continue
				}
				calls := superCalls(n.ChildByField("body"))
				switch classHeritage(n) {
				case derived:
					if len(calls) == 0 {
						ctx.ReportWithHint(n, "constructor-super",
							"Constructors of derived classes must call super().",
							"Call super() in the constructor")
					}
				case derivedFromNull:
					for _, c := range calls {
						ctx.ReportWithHint(c, "constructor-super",
							"Classes which inherit from a non constructor must not call super().",
							"Remove call to super()")
					}
				default:
					for _, c := range calls {
						ctx.ReportWithHint(c, "constructor-super",
							"Constructors of non derived classes must not call super().",
							"Remove call to super()")
					}
				}
				return lint.Continue
			},
		}
	},
})

// NoThisBeforeSuper reports `this` and `super.x` in a derived constructor
// before the first super() call in source order.
var NoThisBeforeSuper = lint.Define(lint.RuleDef{
	Code:        "no-this-before-super",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows this/super before calling super() in constructors of derived classes.",
	BadExample:  "class A extends B {\n  constructor() {\n    this.a = 0;\n    super();\n  }\n}",
	GoodExample: "class A extends B {\n  constructor() {\n    super();\n    this.a = 0;\n  }\n}",
	Setup: func() lint.Handler {
		type frame struct {
			checking bool
			called   bool
		}
		stack := []frame{{}}
		top := func() *frame { return &stack[len(stack)-1] }
		return lint.Handler{
			EnterNode: func(ctx *lint.Context, n *ast.Node) lint.Action {
				switch {
				case isConstructor(n):
					stack = append(stack, frame{checking: classHeritage(n) == derived})
				case ast.IsFunction(n.Kind) && n.Kind != ast.KindArrowFunction:
					stack = append(stack, frame{})
				case n.Kind == ast.KindClassExpr || n.Kind == ast.KindClassDecl:
					// field initializers of nested classes have their own this
					stack = append(stack, frame{})
				}
				f := top()
				if !f.checking || f.called {
					return lint.Continue
				}
				if n.Kind == ast.KindThis || (n.Kind == ast.KindSuper && !isSuperCall(n.Parent)) {
					ctx.ReportWithHint(n, "no-this-before-super",
						"In the constructor of derived classes, `this` / `super` are not allowed before calling to `super()`.",
						"Call `super()` before using `this` or `super` keyword.")
				}
				return lint.Continue
			},
			ExitNode: func(_ *lint.Context, n *ast.Node) {
				switch {
				case isConstructor(n),
					ast.IsFunction(n.Kind) && n.Kind != ast.KindArrowFunction,
					n.Kind == ast.KindClassExpr || n.Kind == ast.KindClassDecl:
					stack = stack[:len(stack)-1]
				case isSuperCall(n):
					// arguments are evaluated before the call completes
					top().called = true
				}
			},
		}
	},
})
