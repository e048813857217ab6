package lint

import (
	"log/slog"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint/controlflow"
	"github.com/leapstack-labs/jslint/pkg/lint/globals"
	"github.com/leapstack-labs/jslint/pkg/lint/ignore"
	"github.com/leapstack-labs/jslint/pkg/lint/scope"
	"github.com/leapstack-labs/jslint/pkg/token"
)

// Context is the per-file state shared by every rule callback. It is created
// by Linter.Lint, used by one goroutine, and dropped when the file is done.
type Context struct {
	linter     *Linter
	file       *ast.File
	directives *ignore.Set

	scope *scope.Tree
	flow  *controlflow.Analysis

	diags []Diagnostic
}

func newContext(l *Linter, file *ast.File) *Context {
	return &Context{
		linter:     l,
		file:       file,
		directives: ignore.Parse(file, l.markers),
	}
}

// File returns the file being analyzed.
func (c *Context) File() *ast.File { return c.file }

// Filename returns the name of the file being analyzed.
func (c *Context) Filename() string { return c.file.Name }

// Source returns the full source text.
func (c *Context) Source() []byte { return c.file.Source }

// Text returns the source text of rng, clamped to the file.
func (c *Context) Text(rng token.Range) string {
	rng = rng.Clamp(len(c.file.Source))
	return string(c.file.Source[rng.Start:rng.End])
}

// Logger returns the run logger.
func (c *Context) Logger() *slog.Logger { return c.linter.logger }

// Globals returns the global-name table of the run.
func (c *Context) Globals() *globals.Table { return c.linter.globals }

// KnownCode reports whether code names a registered rule or a diagnostic
// the engine emits itself.
func (c *Context) KnownCode(code string) bool {
	return IsEngineCode(code) || c.linter.registry.Known(code)
}

// Scope returns the scope tree of the file, building it on first use.
func (c *Context) Scope() *scope.Tree {
	if c.scope == nil {
		c.scope = scope.Build(c.file, c.linter.globals)
	}
	return c.scope
}

// ControlFlow returns the reachability analysis of the file. Units are
// analyzed on first query.
func (c *Context) ControlFlow() *controlflow.Analysis {
	if c.flow == nil {
		c.flow = controlflow.New(c.file)
	}
	return c.flow
}

// AllComments returns the comments of the file in source order.
func (c *Context) AllComments() []token.Comment { return c.file.Comments }

// FileIgnoreDirective returns the file-wide ignore directive, or nil.
func (c *Context) FileIgnoreDirective() *ignore.Directive {
	return c.directives.FileDirective()
}

// LineIgnoreDirectives returns the line ignore directives keyed by the line
// of the comment.
func (c *Context) LineIgnoreDirectives() map[int]*ignore.Directive {
	return c.directives.LineDirectives()
}

// IgnoreDirectives returns every ignore directive, file directive first.
func (c *Context) IgnoreDirectives() []*ignore.Directive {
	return c.directives.All()
}

// AddDiagnostic reports a finding for code at rng.
func (c *Context) AddDiagnostic(rng token.Range, code, message string) {
	c.AddDiagnosticWithHint(rng, code, message, "")
}

// AddDiagnosticWithHint reports a finding with a fix suggestion.
func (c *Context) AddDiagnosticWithHint(rng token.Range, code, message, hint string) {
	if clamped := rng.Clamp(len(c.file.Source)); clamped != rng {
		c.linter.logger.Warn("diagnostic range outside file",
			"code", code,
			"file", c.file.Name,
			"start", rng.Start,
			"end", rng.End)
		rng = clamped
	}
	c.diags = append(c.diags, Diagnostic{
		Code:     code,
		Message:  message,
		Hint:     hint,
		Range:    rng,
		Pos:      c.file.Position(rng.Start),
		EndPos:   c.file.Position(rng.End),
		Filename: c.file.Name,
	})
}

// Report is AddDiagnostic for a node.
func (c *Context) Report(node *ast.Node, code, message string) {
	c.AddDiagnostic(node.Range, code, message)
}

// ReportWithHint is AddDiagnosticWithHint for a node.
func (c *Context) ReportWithHint(node *ast.Node, code, message, hint string) {
	c.AddDiagnosticWithHint(node.Range, code, message, hint)
}
