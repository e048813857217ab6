package correctness

import (
	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/lint/scope"
)

func init() {
	lint.MustRegister(NoExAssign)
	lint.MustRegister(NoConstAssign)
	lint.MustRegister(NoFuncAssign)
	lint.MustRegister(NoClassAssign)
	lint.MustRegister(NoGlobalAssign)
}

// reassignRule reports writes to bindings of one kind.
type reassignRule struct {
	code    string
	kind    scope.BindingKind
	message string
	hint    string
}

func (r reassignRule) check(ctx *lint.Context) {
	file := ctx.File()
	for _, ref := range ctx.Scope().References() {
		if !ref.Write || ref.Binding == nil || ref.Binding.Kind != r.kind {
			continue
		}
		ctx.ReportWithHint(file.Node(ref.Node), r.code, r.message, r.hint)
	}
}

func (r reassignRule) setup() lint.Handler {
	return lint.Handler{CheckFile: r.check}
}

var (
	exAssign = reassignRule{
		code:    "no-ex-assign",
		kind:    scope.CatchClause,
		message: "Reassigning exception parameter is not allowed",
		hint:    "Use a different variable for the assignment",
	}
	constAssign = reassignRule{
		code:    "no-const-assign",
		kind:    scope.Const,
		message: "Reassigning constant variable is not allowed",
		hint:    "Change `const` declaration to `let` or double check the correct variable is used",
	}
	funcAssign = reassignRule{
		code:    "no-func-assign",
		kind:    scope.FunctionDecl,
		message: "Reassigning function declaration is not allowed",
		hint:    "Remove or rework the reassignment of the existing function",
	}
	classAssign = reassignRule{
		code:    "no-class-assign",
		kind:    scope.ClassDecl,
		message: "Reassigning class declaration is not allowed",
		hint:    "Do you have the right variable here?",
	}
)

// NoExAssign reports assignments to a catch-clause parameter.
var NoExAssign = lint.Define(lint.RuleDef{
	Code:        exAssign.code,
	Tags:        []string{lint.TagRecommended},
	Setup:       exAssign.setup,
	Description: "Disallows reassigning the exception parameter of a catch clause.",
	BadExample:  "try {\n  run();\n} catch (e) {\n  e = new Error(\"wrapped\");\n}",
	GoodExample: "try {\n  run();\n} catch (e) {\n  const wrapped = new Error(\"wrapped\", { cause: e });\n}",
})

// NoConstAssign reports assignments to const bindings.
var NoConstAssign = lint.Define(lint.RuleDef{
	Code:        constAssign.code,
	Tags:        []string{lint.TagRecommended},
	Setup:       constAssign.setup,
	Description: "Disallows reassigning variables declared with const.",
	BadExample:  "const a = 1;\na += 1;",
	GoodExample: "let a = 1;\na += 1;",
})

// NoFuncAssign reports assignments to function declarations.
var NoFuncAssign = lint.Define(lint.RuleDef{
	Code:        funcAssign.code,
	Tags:        []string{lint.TagRecommended},
	Setup:       funcAssign.setup,
	Description: "Disallows overwriting function declarations.",
	BadExample:  "function foo() {}\nfoo = bar;",
	GoodExample: "let foo = function () {};\nfoo = bar;",
})

// NoClassAssign reports assignments to class declarations.
var NoClassAssign = lint.Define(lint.RuleDef{
	Code:        classAssign.code,
	Tags:        []string{lint.TagRecommended},
	Setup:       classAssign.setup,
	Description: "Disallows reassigning class declarations.",
	BadExample:  "class A {}\nA = 0;",
	GoodExample: "let A = class {};\nA = 0;",
})

// NoGlobalAssign reports writes to globals that are not writable, such as
// `undefined` or `Object`.
var NoGlobalAssign = lint.Define(lint.RuleDef{
	Code:        "no-global-assign",
	Tags:        []string{lint.TagRecommended},
	Description: "Disallows assignment to native objects and read-only global variables.",
	BadExample:  "Object = null;\nundefined = true;",
	GoodExample: "const obj = null;",
	Setup: func() lint.Handler {
		return lint.Handler{CheckFile: checkGlobalAssign}
	},
})

func checkGlobalAssign(ctx *lint.Context) {
	file := ctx.File()
	table := ctx.Globals()
	for _, ref := range ctx.Scope().References() {
		if !ref.Write || ref.Binding != nil || !ref.Global || table.Writable(ref.Name) {
			continue
		}
		ctx.ReportWithHint(file.Node(ref.Node), "no-global-assign",
			"Assignment to global is not allowed",
			"Remove the assignment to the global variable")
	}
}
