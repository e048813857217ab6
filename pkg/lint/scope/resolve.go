package scope

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
)

// Reference is an identifier use resolved against the scope tree.
type Reference struct {
	Node    ast.NodeID
	Name    string
	Scope   ID       // scope the lookup started from
	Binding *Binding // nil for free references
	Global  bool     // free, but known to the globals table
	Builtin bool     // the implicit "arguments" of a function
	Read    bool
	Write   bool
}

// Unresolved reports whether the name is neither bound nor a known global.
func (r Reference) Unresolved() bool {
	return r.Binding == nil && !r.Global && !r.Builtin
}

// Resolve resolves the identifier at node. Declaring identifiers resolve to
// the binding they create.
func (t *Tree) Resolve(node *ast.Node) Reference {
	t.file.MustOwn(node)
	name := node.Text()
	from := t.ScopeOf(node)
	ref := Reference{Node: node.ID, Name: name, Scope: from}

	if b, ok := t.decls[node.ID]; ok {
		ref.Binding = b
		return ref
	}
	if b, ok := t.Lookup(from, name); ok {
		ref.Binding = b
		return ref
	}
	if name == "arguments" && t.inNonArrowFunction(from) {
		ref.Builtin = true
		return ref
	}
	ref.Global = t.globals != nil && t.globals.Has(name)
	return ref
}

// ResolveID resolves the identifier with the given id.
func (t *Tree) ResolveID(id ast.NodeID) Reference {
	return t.Resolve(t.file.Node(id))
}

// ResolveName looks name up from the scope containing node, as if it were
// referenced there.
func (t *Tree) ResolveName(node *ast.Node, name string) (*Binding, bool) {
	return t.Lookup(t.ScopeOf(node), name)
}

func (t *Tree) inNonArrowFunction(id ID) bool {
	for ; id.IsValid(); id = t.data[id].Parent {
		if t.data[id].Kind == Function && !t.arrows[id] {
			return true
		}
	}
	return false
}

// collectReferences resolves every identifier use once the tree is complete.
func (t *Tree) collectReferences() {
	ast.Walk(t.file.Root, func(n *ast.Node) bool {
		switch n.Kind {
		case ast.KindIdentifier, ast.KindShorthandProperty, ast.KindShorthandPattern:
		default:
			return true
		}
		if _, isDecl := t.decls[n.ID]; isDecl || !isReferencePosition(n) {
			return true
		}
		ref := t.Resolve(n)
		ref.Write, ref.Read = accessOf(n)
		t.refs = append(t.refs, ref)
		return true
	})
}

var typeContextKinds = map[string]bool{
	"type_annotation":          true,
	"type_arguments":           true,
	"type_parameters":          true,
	"type_alias_declaration":   true,
	"interface_declaration":    true,
	"implements_clause":        true,
	"extends_type_clause":      true,
	"nested_type_identifier":   true,
	"type_query":               true,
	"type_predicate":           true,
	"asserts_annotation":       true,
	"index_signature":          true,
	"opting_type_annotation":   true,
	"omitting_type_annotation": true,
}

// isReferencePosition filters identifiers that do not name a variable:
// names imported from or re-exported to other modules, intrinsic JSX tags,
// and anything inside a TypeScript type.
func isReferencePosition(n *ast.Node) bool {
	p := n.Parent
	if p == nil {
		return false
	}
	switch p.Kind {
	case ast.KindImportSpecifier, ast.KindNamespaceImport, ast.KindImportClause:
		return false
	case "export_specifier":
		if n.Field == "alias" {
			return false
		}
		if exp := p.Ancestor(ast.KindExport); exp != nil && exp.ChildByField("source") != nil {
			return false
		}
	case "jsx_opening_element", "jsx_closing_element", "jsx_self_closing_element":
		if n.Field == "name" && isIntrinsicTag(n.Text()) {
			return false
		}
	}
	for a := p; a != nil; a = a.Parent {
		if typeContextKinds[a.Kind] {
			return false
		}
		if ast.IsFunction(a.Kind) || a.Kind == ast.KindProgram {
			break
		}
	}
	return true
}

func isIntrinsicTag(name string) bool {
	return name != "" && name[0] >= 'a' && name[0] <= 'z'
}

var patternKinds = map[string]bool{
	ast.KindObjectPattern:           true,
	ast.KindArrayPattern:            true,
	ast.KindPairPattern:             true,
	ast.KindRestPattern:             true,
	ast.KindAssignmentPattern:       true,
	ast.KindObjectAssignmentPattern: true,
}

// accessOf classifies an identifier use as a write, a read or both.
func accessOf(n *ast.Node) (write, read bool) {
	child := n
	p := n.Parent
	for p != nil && patternKinds[p.Kind] {
		// default values are reads; only the target side is written
		if (p.Kind == ast.KindAssignmentPattern || p.Kind == ast.KindObjectAssignmentPattern) && child.Field == "right" {
			return false, true
		}
		if p.Kind == ast.KindPairPattern && child.Field == "key" {
			return false, true
		}
		child = p
		p = p.Parent
	}
	if p == nil {
		return false, true
	}
	switch p.Kind {
	case ast.KindAssignment:
		if child.Field == "left" {
			return true, false
		}
	case ast.KindAugmentedAssignment:
		if child.Field == "left" {
			return true, true
		}
	case ast.KindUpdate:
		return true, true
	case ast.KindForIn:
		if child.Field == "left" {
			return true, false
		}
	}
	return false, true
}
