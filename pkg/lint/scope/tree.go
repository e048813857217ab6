package scope

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/leapstack-labs/jslint/pkg/ast"
)

// Globals is the table free references are checked against.
type Globals interface {
	Has(name string) bool
}

// Tree stores all scopes of one file in a slice-based arena.
type Tree struct {
	file    *ast.File
	globals Globals

	data      []Scope // index 0 reserved for NoScope
	nodeScope map[ast.NodeID]ID
	decls     map[ast.NodeID]*Binding
	arrows    map[ID]bool
	refs      []Reference
	redecls   []Redeclaration
}

func newTree(file *ast.File, globals Globals) *Tree {
	return &Tree{
		file:      file,
		globals:   globals,
		data:      make([]Scope, 1, 32),
		nodeScope: make(map[ast.NodeID]ID),
		decls:     make(map[ast.NodeID]*Binding),
		arrows:    make(map[ID]bool),
	}
}

// newScope allocates a scope owned by node and links it to its parent.
func (t *Tree) newScope(kind Kind, parent ID, node ast.NodeID) ID {
	value, err := safecast.Conv[uint32](len(t.data))
	if err != nil {
		panic(fmt.Errorf("scope arena overflow: %w", err))
	}
	id := ID(value)
	t.data = append(t.data, Scope{
		ID:       id,
		Kind:     kind,
		Parent:   parent,
		Node:     node,
		bindings: make(map[string]*Binding),
	})
	if parent.IsValid() {
		p := &t.data[parent]
		p.Children = append(p.Children, id)
	}
	t.nodeScope[node] = id
	return id
}

// Get returns the scope or nil if the ID is invalid.
func (t *Tree) Get(id ID) *Scope {
	if !id.IsValid() || int(id) >= len(t.data) {
		return nil
	}
	return &t.data[id]
}

// Root returns the outermost scope.
func (t *Tree) Root() *Scope {
	return t.Get(1)
}

// Len reports the number of scopes.
func (t *Tree) Len() int { return len(t.data) - 1 }

// File returns the file the tree was built for.
func (t *Tree) File() *ast.File { return t.file }

// ScopeFor returns the scope introduced by node, if any.
func (t *Tree) ScopeFor(node *ast.Node) (ID, bool) {
	t.file.MustOwn(node)
	id, ok := t.nodeScope[node.ID]
	return id, ok
}

// ScopeOf returns the innermost scope in which names at node are looked up.
// The name of a function or class declaration is looked up in the scope
// enclosing the declaration.
func (t *Tree) ScopeOf(node *ast.Node) ID {
	t.file.MustOwn(node)
	start := node
	if isDeclarationName(node) {
		start = node.Parent.Parent
	}
	for n := start; n != nil; n = n.Parent {
		if id, ok := t.nodeScope[n.ID]; ok {
			return id
		}
	}
	return t.Root().ID
}

// Lookup walks from scope outward and returns the first binding of name.
func (t *Tree) Lookup(from ID, name string) (*Binding, bool) {
	for id := from; id.IsValid(); id = t.data[id].Parent {
		if b, ok := t.data[id].bindings[name]; ok {
			return b, true
		}
	}
	return nil, false
}

// Binding returns the binding created by a declaring identifier.
func (t *Tree) Binding(decl ast.NodeID) (*Binding, bool) {
	b, ok := t.decls[decl]
	return b, ok
}

// IsDeclaration reports whether the identifier node declares a binding.
func (t *Tree) IsDeclaration(node *ast.Node) bool {
	t.file.MustOwn(node)
	_, ok := t.decls[node.ID]
	return ok
}

// Redeclarations returns repeated declarations in source order.
func (t *Tree) Redeclarations() []Redeclaration {
	return t.redecls
}

// References returns every identifier use in the file in source order.
func (t *Tree) References() []Reference {
	return t.refs
}

// EnclosingFunction returns the nearest Function scope around id, or
// NoScope at the top level.
func (t *Tree) EnclosingFunction(id ID) ID {
	for ; id.IsValid(); id = t.data[id].Parent {
		if t.data[id].Kind == Function {
			return id
		}
	}
	return NoScope
}

func isDeclarationName(n *ast.Node) bool {
	if n.Field != "name" || n.Parent == nil {
		return false
	}
	switch n.Parent.Kind {
	case ast.KindFunctionDecl, ast.KindGeneratorDecl, ast.KindClassDecl, ast.KindAbstractClassDecl:
		return n.Parent.Parent != nil
	}
	return false
}
