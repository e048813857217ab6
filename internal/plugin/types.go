package plugin

import (
	"fmt"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// fileValue converts a view to the "file" argument of a check function.
func fileValue(view *FileView) starlark.Value {
	nodes := make([]starlark.Value, len(view.Nodes))
	for i := range view.Nodes {
		nodes[i] = nodeValue(i, &view.Nodes[i])
	}
	comments := make([]starlark.Value, len(view.Comments))
	for i, c := range view.Comments {
		comments[i] = starlarkstruct.FromStringDict(starlark.String("comment"), starlark.StringDict{
			"text":  starlark.String(c.Text),
			"block": starlark.Bool(c.Block),
			"start": starlark.MakeInt(c.Start),
			"end":   starlark.MakeInt(c.End),
			"line":  starlark.MakeInt(c.Line),
		})
	}
	return starlarkstruct.FromStringDict(starlark.String("file"), starlark.StringDict{
		"name":     starlark.String(view.Name),
		"language": starlark.String(view.Language),
		"source":   starlark.String(view.Source),
		"nodes":    starlark.NewList(nodes),
		"comments": starlark.NewList(comments),
	})
}

func nodeValue(index int, n *NodeView) starlark.Value {
	children := make(starlark.Tuple, len(n.Children))
	for i, c := range n.Children {
		children[i] = starlark.MakeInt(c)
	}
	return starlarkstruct.FromStringDict(starlark.String("node"), starlark.StringDict{
		"index":     starlark.MakeInt(index),
		"kind":      starlark.String(n.Kind),
		"field":     starlark.String(n.Field),
		"parent":    starlark.MakeInt(n.Parent),
		"children":  children,
		"start":     starlark.MakeInt(n.Start),
		"end":       starlark.MakeInt(n.End),
		"line":      starlark.MakeInt(n.Line),
		"column":    starlark.MakeInt(n.Column),
		"text":      starlark.String(n.Text),
		"reachable": starlark.Bool(n.Reachable),
	})
}

// GoToStarlark converts a Go value to a Starlark value.
// Supported types: string, int, int64, float64, bool, []string, []any, map[string]any
func GoToStarlark(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}

	switch val := v.(type) {
	case string:
		return starlark.String(val), nil

	case int:
		return starlark.MakeInt(val), nil

	case int64:
		return starlark.MakeInt64(val), nil

	case float64:
		return starlark.Float(val), nil

	case bool:
		return starlark.Bool(val), nil

	case []string:
		list := make([]starlark.Value, len(val))
		for i, s := range val {
			list[i] = starlark.String(s)
		}
		return starlark.NewList(list), nil

	case []any:
		list := make([]starlark.Value, len(val))
		for i, item := range val {
			sv, err := GoToStarlark(item)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			list[i] = sv
		}
		return starlark.NewList(list), nil

	case map[string]any:
		dict := starlark.NewDict(len(val))
		for k, v := range val {
			sv, err := GoToStarlark(v)
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", k, err)
			}
			if err := dict.SetKey(starlark.String(k), sv); err != nil {
				return nil, fmt.Errorf("dict setkey %q: %w", k, err)
			}
		}
		return dict, nil

	default:
		return nil, fmt.Errorf("unsupported type: %T", v)
	}
}

// ToGo converts a Starlark value back to a Go value.
// Returns: string, int64, float64, bool, []any, map[string]any, or nil
func ToGo(v starlark.Value) (any, error) {
	switch val := v.(type) {
	case starlark.NoneType:
		return nil, nil

	case starlark.String:
		return string(val), nil

	case starlark.Int:
		i64, ok := val.Int64()
		if !ok {
			return val.String(), nil
		}
		return i64, nil

	case starlark.Float:
		return float64(val), nil

	case starlark.Bool:
		return bool(val), nil

	case starlark.Indexable:
		result := make([]any, val.Len())
		for i := 0; i < val.Len(); i++ {
			gv, err := ToGo(val.Index(i))
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			result[i] = gv
		}
		return result, nil

	case *starlark.Dict:
		result := make(map[string]any)
		for _, item := range val.Items() {
			key, ok := item[0].(starlark.String)
			if !ok {
				return nil, fmt.Errorf("dict key must be string, got %T", item[0])
			}
			gv, err := ToGo(item[1])
			if err != nil {
				return nil, fmt.Errorf("dict key %q: %w", key, err)
			}
			result[string(key)] = gv
		}
		return result, nil

	default:
		return val.String(), nil
	}
}

// toStrings converts a Starlark list or tuple of strings.
func toStrings(v starlark.Value) ([]string, error) {
	if v == nil || v == starlark.None {
		return nil, nil
	}
	items, err := ToGo(v)
	if err != nil {
		return nil, err
	}
	list, ok := items.([]any)
	if !ok {
		return nil, fmt.Errorf("want a list of strings, got %s", v.Type())
	}
	out := make([]string, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("index %d: want string, got %T", i, item)
		}
		out[i] = s
	}
	return out, nil
}
