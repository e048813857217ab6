package plugin

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/token"
	"go.starlark.net/starlark"
)

// Thread-local keys.
const (
	loadKey   = "jslint.load"
	reportKey = "jslint.report"
)

// collector receives the findings of one check call.
type collector struct {
	code  string
	diags []Diagnostic
}

// loadState receives the rules declared while a plugin file executes.
type loadState struct {
	path  string
	lines *token.LineIndex
	rules []*declared
}

// declared is a rule() call, before it is bound to a thread pool.
type declared struct {
	code        string
	tags        []string
	priority    int
	description string
	bad, good   string
	check       starlark.Callable
	pos         token.Position
}

// Predeclared returns the globals of plugin files: rule, report, and
// settings (the plugin_settings config map, empty if nil).
func Predeclared(settings map[string]any) (starlark.StringDict, error) {
	settingsVal := starlark.Value(starlark.NewDict(0))
	if len(settings) > 0 {
		v, err := GoToStarlark(settings)
		if err != nil {
			return nil, fmt.Errorf("plugin settings: %w", err)
		}
		settingsVal = v
	}
	settingsVal.Freeze()

	return starlark.StringDict{
		"rule":     starlark.NewBuiltin("rule", ruleBuiltin),
		"report":   starlark.NewBuiltin("report", reportBuiltin),
		"settings": settingsVal,
	}, nil
}

// rule(code, check, description="", tags=[], priority=0, bad_example="", good_example="")
func ruleBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	state, ok := thread.Local(loadKey).(*loadState)
	if !ok {
		return nil, fmt.Errorf("%s: rules can only be declared at load time", b.Name())
	}

	var (
		d    declared
		tags starlark.Value
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"code", &d.code,
		"check", &d.check,
		"description?", &d.description,
		"tags?", &tags,
		"priority?", &d.priority,
		"bad_example?", &d.bad,
		"good_example?", &d.good,
	); err != nil {
		return nil, err
	}
	if err := validateCode(d.code); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	var err error
	if d.tags, err = toStrings(tags); err != nil {
		return nil, fmt.Errorf("%s: tags: %w", b.Name(), err)
	}

	pos := thread.CallFrame(1).Pos
	line, col := int(pos.Line), int(pos.Col)
	offset := 0
	if line > 0 {
		offset = state.lines.LineStart(line) + col - 1
	}
	d.pos = token.Position{Line: line, Column: col, Offset: offset}

	state.rules = append(state.rules, &d)
	return starlark.None, nil
}

// report(node, message, hint="")
//
// node is anything with start and end attributes, or a (start, end) tuple.
func reportBuiltin(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	col, ok := thread.Local(reportKey).(*collector)
	if !ok {
		return nil, fmt.Errorf("%s: called outside of a check function", b.Name())
	}

	var (
		node          starlark.Value
		message, hint string
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs,
		"node", &node,
		"message", &message,
		"hint?", &hint,
	); err != nil {
		return nil, err
	}

	start, end, err := spanOf(node)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}
	col.diags = append(col.diags, Diagnostic{
		Code:    col.code,
		Message: message,
		Hint:    hint,
		Start:   start,
		End:     end,
	})
	return starlark.None, nil
}

func spanOf(v starlark.Value) (int, int, error) {
	if t, ok := v.(starlark.Tuple); ok {
		if len(t) != 2 {
			return 0, 0, fmt.Errorf("span tuple must have 2 elements, got %d", len(t))
		}
		start, err := starlark.AsInt32(t[0])
		if err != nil {
			return 0, 0, fmt.Errorf("span start: %w", err)
		}
		end, err := starlark.AsInt32(t[1])
		if err != nil {
			return 0, 0, fmt.Errorf("span end: %w", err)
		}
		return start, end, nil
	}

	attrs, ok := v.(starlark.HasAttrs)
	if !ok {
		return 0, 0, fmt.Errorf("want a node or a (start, end) tuple, got %s", v.Type())
	}
	start, err := intAttr(attrs, "start")
	if err != nil {
		return 0, 0, err
	}
	end, err := intAttr(attrs, "end")
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

func intAttr(v starlark.HasAttrs, name string) (int, error) {
	attr, err := v.Attr(name)
	if err != nil {
		return 0, err
	}
	if attr == nil {
		return 0, fmt.Errorf("%s has no .%s field", v.Type(), name)
	}
	n, err := starlark.AsInt32(attr)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// validateCode checks that a rule code is kebab-case.
func validateCode(code string) error {
	if code == "" {
		return fmt.Errorf("rule code cannot be empty")
	}
	for i, r := range code {
		switch {
		case r >= 'a' && r <= 'z':
		case (r >= '0' && r <= '9') || r == '-':
			if i == 0 {
				return fmt.Errorf("rule code must start with a lowercase letter: %s", code)
			}
		default:
			return fmt.Errorf("rule code contains invalid character %q: %s", r, code)
		}
	}
	return nil
}
