// Package globals holds the table of global names that free identifiers are
// checked against before they are reported as undefined.
package globals

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed environments.yaml
var environmentsYAML []byte

// DefaultEnvironments are enabled when no environment is configured.
var DefaultEnvironments = []string{"builtin", "browser", "deno"}

type environment struct {
	Readonly []string `yaml:"readonly"`
	Writable []string `yaml:"writable"`
}

type document struct {
	Environments map[string]environment `yaml:"environments"`
}

var (
	loadOnce sync.Once
	envs     map[string]environment
	loadErr  error
)

func environments() (map[string]environment, error) {
	loadOnce.Do(func() {
		var doc document
		if err := yaml.Unmarshal(environmentsYAML, &doc); err != nil {
			loadErr = fmt.Errorf("failed to parse embedded globals: %w", err)
			return
		}
		envs = doc.Environments
	})
	return envs, loadErr
}

// Environments returns the names of the known environments, sorted.
func Environments() []string {
	all, err := environments()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table is an immutable set of global names.
type Table struct {
	names map[string]bool // name -> writable
}

// New builds a table from the named environments plus extra names.
// Extra names are writable. An unknown environment is an error.
func New(environmentNames []string, extra ...string) (*Table, error) {
	all, err := environments()
	if err != nil {
		return nil, err
	}
	t := &Table{names: make(map[string]bool)}
	for _, name := range environmentNames {
		env, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown globals environment %q", name)
		}
		for _, n := range env.Readonly {
			if _, ok := t.names[n]; !ok {
				t.names[n] = false
			}
		}
		for _, n := range env.Writable {
			t.names[n] = true
		}
	}
	for _, n := range extra {
		t.names[n] = true
	}
	return t, nil
}

// Default returns the table for DefaultEnvironments.
func Default() *Table {
	t, err := New(DefaultEnvironments)
	if err != nil {
		// the embedded document is part of the binary
		panic(err)
	}
	return t
}

// Has reports whether name is a known global.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.names[name]
	return ok
}

// Writable reports whether the global may be reassigned.
func (t *Table) Writable(name string) bool {
	if t == nil {
		return false
	}
	return t.names[name]
}

// Len returns the number of names in the table.
func (t *Table) Len() int {
	return len(t.names)
}
