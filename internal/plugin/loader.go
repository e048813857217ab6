// Package plugin runs lint rules written in Starlark.
//
// A plugin file declares rules with the predeclared rule() builtin:
//
//	def check(file):
//	    for node in file.nodes:
//	        if node.kind == "debugger_statement" and node.reachable:
//	            report(node, "debugger left in code", hint = "Remove it")
//
//	rule(code = "team-no-debugger", check = check, tags = ["recommended"])
//
// The host and the scripts only exchange msgpack messages: the file view
// goes in (see FileView) and the findings come out (see Diagnostic).
package plugin

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/jslint/pkg/token"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Extension is the file extension of plugin files.
const Extension = ".star"

// Loader executes plugin files and collects the rules they declare.
type Loader struct {
	settings map[string]any
	pool     *ThreadPool
	logger   *slog.Logger
}

// NewLoader creates a loader. settings is exposed to scripts as the
// settings global. Rules of all loaded files share pool.
func NewLoader(settings map[string]any, pool *ThreadPool, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if pool == nil {
		pool = NewThreadPool(0, logger)
	}
	return &Loader{settings: settings, pool: pool, logger: logger}
}

// Load executes each path, expanding directories to the .star files they
// contain, and returns the declared rules in declaration order.
func (l *Loader) Load(paths ...string) ([]*Rule, error) {
	predeclared, err := Predeclared(l.settings)
	if err != nil {
		return nil, err
	}

	var rules []*Rule
	for _, path := range paths {
		files, err := expand(path)
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			loaded, err := l.loadFile(file, predeclared)
			if err != nil {
				return nil, err
			}
			rules = append(rules, loaded...)
		}
	}
	return rules, nil
}

func expand(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to access plugin: %v", err)}
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, "*"+Extension))
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to scan plugin directory: %v", err)}
	}
	return files, nil
}

// loadFile executes a single plugin file.
func (l *Loader) loadFile(path string, predeclared starlark.StringDict) ([]*Rule, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: plugin paths come from the user's config
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("failed to read file: %v", err)}
	}

	state := &loadState{path: path, lines: token.NewLineIndex(content)}
	thread := &starlark.Thread{
		Name: "load:" + filepath.Base(path),
		Print: func(_ *starlark.Thread, msg string) {
			l.logger.Debug("plugin print", "file", path, "msg", msg)
		},
	}
	thread.SetLocal(loadKey, state)

	globals, err := starlark.ExecFileOptions(&syntax.FileOptions{}, thread, path, content, predeclared)
	if err != nil {
		return nil, &LoadError{File: path, Message: fmt.Sprintf("Starlark execution error: %v", err)}
	}
	// Check functions are shared by concurrent workers.
	globals.Freeze()

	rules := make([]*Rule, 0, len(state.rules))
	for _, d := range state.rules {
		d.check.Freeze()
		rules = append(rules, &Rule{def: d, path: path, pool: l.pool, logger: l.logger})
	}
	l.logger.Debug("loaded plugin", "file", path, "rules", len(rules))
	return rules, nil
}

// LoadError represents an error loading a plugin file.
type LoadError struct {
	File    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("plugin %s: %s", e.File, e.Message)
}
