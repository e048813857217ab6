package lint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/jslint/pkg/ast"
	"github.com/leapstack-labs/jslint/pkg/lint/globals"
	"github.com/leapstack-labs/jslint/pkg/lint/ignore"
	"github.com/leapstack-labs/jslint/pkg/parser"
)

// Diagnostic codes emitted by the engine rather than by a rule.
const (
	CodeInternalRuleError   = "internal-rule-error"
	CodeParseError          = "parse-error"
	CodePluginDuplicateRule = "plugin-duplicate-rule"
)

// IsEngineCode reports whether code is emitted by the engine itself.
func IsEngineCode(code string) bool {
	switch code {
	case CodeInternalRuleError, CodeParseError, CodePluginDuplicateRule:
		return true
	}
	return false
}

// Options configures a Linter.
type Options struct {
	// Registry resolves rule codes in ignore directives. Defaults to
	// DefaultRegistry.
	Registry *Registry
	// Rules are the rules to run. Defaults to the recommended rules of
	// Registry.
	Rules *RuleSet
	// Globals is the table free identifiers are checked against. Defaults to
	// globals.Default().
	Globals *globals.Table
	// IgnoreMarker and IgnoreFileMarker override the directive prefixes
	IgnoreMarker     string
	IgnoreFileMarker string
	// DisableIgnoreDirectives reports every diagnostic even when a
	// directive covers it
	DisableIgnoreDirectives bool
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Result is the outcome of linting one file.
type Result struct {
	// Diagnostics are the findings left after ignore directives were
	// applied, ordered by start offset.
	Diagnostics []Diagnostic
	// Suppressed are the findings an ignore directive removed.
	Suppressed []Diagnostic
}

// Linter runs a RuleSet over files. It is immutable and safe for concurrent
// use; every call to Lint gets its own Context.
type Linter struct {
	registry      *Registry
	rules         *RuleSet
	globals       *globals.Table
	markers       ignore.Markers
	disableIgnore bool
	logger        *slog.Logger
}

// New creates a linter.
func New(opts Options) *Linter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry
	}
	rules := opts.Rules
	if rules == nil {
		rules = NewConfig().RuleSet(registry)
	}
	table := opts.Globals
	if table == nil {
		table = globals.Default()
	}
	return &Linter{
		registry:      registry,
		rules:         rules,
		globals:       table,
		markers:       ignore.Markers{Line: opts.IgnoreMarker, File: opts.IgnoreFileMarker},
		disableIgnore: opts.DisableIgnoreDirectives,
		logger:        logger,
	}
}

// Rules returns the rule set the linter runs.
func (l *Linter) Rules() *RuleSet {
	return l.rules
}

// Lint analyzes one parsed file.
//
// Rules run in a single walk. Their diagnostics are then matched against the
// file's ignore directives; directive rules run last and see the final usage
// state. A rule that panics is disabled for the rest of the file and
// reported as CodeInternalRuleError. Using a node of another file is a
// programming error and aborts the file with an error wrapping
// ast.ErrForeignNode.
func (l *Linter) Lint(file *ast.File) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !errors.Is(perr, ast.ErrForeignNode) {
				panic(r)
			}
			res, err = nil, fmt.Errorf("lint %s: %w", file.Name, perr)
		}
	}()

	l.logger.Debug("linting file", "file", file.Name, "rules", l.rules.Len())

	ctx := newContext(l, file)
	d := newDispatcher(ctx, l.rules)
	d.walk(file.Root)
	d.checkFile()

	res = &Result{}
	l.match(ctx, ctx.diags, res)
	d.checkDirectives(func(diags []Diagnostic) {
		l.match(ctx, diags, res)
	})

	SortDiagnostics(res.Diagnostics)
	SortDiagnostics(res.Suppressed)

	l.logger.Debug("linted file",
		"file", file.Name,
		"diagnostics", len(res.Diagnostics),
		"suppressed", len(res.Suppressed))
	return res, nil
}

// match splits diags into kept and suppressed, marking the directives that
// cover them as used. With ignore directives disabled every diagnostic is
// kept, but usage is still recorded so directive rules report the same
// findings either way.
func (l *Linter) match(ctx *Context, diags []Diagnostic, res *Result) {
	for _, diag := range diags {
		if ctx.directives.Suppresses(diag.Code, diag.Pos.Line) && !l.disableIgnore {
			res.Suppressed = append(res.Suppressed, diag)
			continue
		}
		res.Diagnostics = append(res.Diagnostics, diag)
	}
}

// LintSource parses and lints src. Syntax errors become a single
// CodeParseError diagnostic; the rules do not run on a broken tree.
func (l *Linter) LintSource(ctx context.Context, filename string, src []byte) (*Result, error) {
	file, err := parser.ParseFile(ctx, filename, src)
	var perr *parser.ParseError
	switch {
	case errors.As(err, &perr):
		l.logger.Debug("parse error", "file", filename, "error", perr.Error())
		return &Result{Diagnostics: []Diagnostic{parseDiagnostic(file, filename, perr)}}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return l.Lint(file)
}

func parseDiagnostic(file *ast.File, filename string, perr *parser.ParseError) Diagnostic {
	rng := perr.Range
	end := perr.Pos
	if file != nil {
		rng = rng.Clamp(len(file.Source))
		end = file.Position(rng.End)
	}
	return Diagnostic{
		Code:     CodeParseError,
		Message:  perr.Message,
		Range:    rng,
		Pos:      perr.Pos,
		EndPos:   end,
		Filename: filename,
	}
}
