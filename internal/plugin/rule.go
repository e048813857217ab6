package plugin

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/jslint/pkg/lint"
	"github.com/leapstack-labs/jslint/pkg/token"
	"go.starlark.net/starlark"
)

// Rule is a lint rule declared by a plugin file.
type Rule struct {
	def    *declared
	path   string
	pool   *ThreadPool
	logger *slog.Logger
}

var _ lint.Rule = (*Rule)(nil)

func (r *Rule) Code() string        { return r.def.code }
func (r *Rule) Tags() []string      { return r.def.tags }
func (r *Rule) Priority() int       { return r.def.priority }
func (r *Rule) Description() string { return r.def.description }
func (r *Rule) BadExample() string  { return r.def.bad }
func (r *Rule) GoodExample() string { return r.def.good }

// Path returns the plugin file that declared the rule.
func (r *Rule) Path() string { return r.path }

// Position returns the location of the rule() call in the plugin file.
func (r *Rule) Position() token.Position { return r.def.pos }

// NewHandler runs the check function once per file, after the walk.
func (r *Rule) NewHandler() lint.Handler {
	return lint.Handler{CheckFile: r.checkFile}
}

func (r *Rule) checkFile(ctx *lint.Context) {
	diags, err := r.run(ctx)
	if err != nil {
		ctx.Logger().Error("plugin rule failed",
			"rule", r.def.code,
			"plugin", r.path,
			"file", ctx.Filename(),
			"error", err)
		ctx.AddDiagnostic(token.Range{}, lint.CodeInternalRuleError,
			fmt.Sprintf("rule %q crashed: %v", r.def.code, err))
		return
	}
	for _, d := range diags {
		ctx.AddDiagnosticWithHint(token.Range{Start: d.Start, End: d.End}, d.Code, d.Message, d.Hint)
	}
}

func (r *Rule) run(ctx *lint.Context) ([]Diagnostic, error) {
	payload, err := EncodeFile(ctx.File(), ctx.ControlFlow())
	if err != nil {
		return nil, err
	}
	out, err := r.Check(payload)
	if err != nil {
		return nil, err
	}
	return DecodeDiagnostics(out)
}

// Check runs the rule on an encoded FileView and returns the encoded
// findings. It is the whole contract between the host and the script.
func (r *Rule) Check(payload []byte) ([]byte, error) {
	view, err := DecodeFile(payload)
	if err != nil {
		return nil, err
	}

	thread := r.pool.Get(r.def.code + ":" + view.Name)
	defer r.pool.Put(thread)

	col := &collector{code: r.def.code}
	thread.SetLocal(reportKey, col)

	if _, err := starlark.Call(thread, r.def.check, starlark.Tuple{fileValue(view)}, nil); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, &CheckError{Rule: r.def.code, Message: evalErr.Backtrace()}
		}
		return nil, &CheckError{Rule: r.def.code, Message: err.Error()}
	}
	return EncodeDiagnostics(col.diags)
}

// CheckError is a failure of a check function.
type CheckError struct {
	Rule    string
	Message string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("plugin rule %s: %s", e.Rule, e.Message)
}

// Install registers rules in registry. A rule whose code is already
// registered is dropped and reported as lint.CodePluginDuplicateRule.
func Install(registry *lint.Registry, rules []*Rule) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, r := range rules {
		if err := registry.Register(r); err != nil {
			diags = append(diags, duplicateDiagnostic(r))
		}
	}
	return diags
}

func duplicateDiagnostic(r *Rule) lint.Diagnostic {
	pos := r.def.pos
	return lint.Diagnostic{
		Code:     lint.CodePluginDuplicateRule,
		Message:  fmt.Sprintf("Plugin rule %q is already registered", r.def.code),
		Hint:     "Rename the rule in the plugin file",
		Range:    token.Range{Start: pos.Offset, End: pos.Offset},
		Pos:      pos,
		EndPos:   pos,
		Filename: r.path,
	}
}
