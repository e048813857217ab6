// Package scope builds the lexical scope tree of a file and resolves
// identifiers to their bindings.
//
// Scopes live in an arena (Tree) and refer to each other by ID. The tree is
// built in one pre-pass over the file and is read-only afterwards.
package scope

import (
	"github.com/leapstack-labs/jslint/pkg/ast"
)

// ID identifies a scope in the arena.
type ID uint32

// NoScope marks the absence of a scope reference (the root's parent).
const NoScope ID = 0

// IsValid reports whether the ID refers to an allocated scope.
func (id ID) IsValid() bool { return id != NoScope }

// Kind enumerates scope categories.
type Kind uint8

// Scope kinds.
const (
	Root Kind = iota + 1
	Module
	Function
	Block
	Loop
	Class
)

func (k Kind) String() string {
	switch k {
	case Root:
		return "root"
	case Module:
		return "module"
	case Function:
		return "function"
	case Block:
		return "block"
	case Loop:
		return "loop"
	case Class:
		return "class"
	default:
		return "invalid"
	}
}

// BindingKind describes how a name was declared.
type BindingKind uint8

// Binding kinds.
const (
	Var BindingKind = iota + 1
	Let
	Const
	FunctionDecl
	Param
	CatchClause
	ClassDecl
	Import
	TypeOnly
)

func (k BindingKind) String() string {
	switch k {
	case Var:
		return "var"
	case Let:
		return "let"
	case Const:
		return "const"
	case FunctionDecl:
		return "function"
	case Param:
		return "param"
	case CatchClause:
		return "catch"
	case ClassDecl:
		return "class"
	case Import:
		return "import"
	case TypeOnly:
		return "type"
	default:
		return "invalid"
	}
}

// Binding associates a name with its declaration site.
type Binding struct {
	Name  string
	Kind  BindingKind
	Decl  ast.NodeID // the declaring identifier
	Scope ID
}

// Scope is a lexical region with its own bindings.
type Scope struct {
	ID       ID
	Kind     Kind
	Parent   ID
	Children []ID
	Node     ast.NodeID // node that introduced the scope

	bindings map[string]*Binding
	order    []*Binding
}

// Lookup returns the binding declared directly in this scope.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Bindings returns the scope's bindings in declaration order.
func (s *Scope) Bindings() []*Binding {
	return s.order
}

// IsHoistTarget reports whether var declarations land in this scope.
func (s *Scope) IsHoistTarget() bool {
	return s.Kind == Root || s.Kind == Module || s.Kind == Function
}

// Redeclaration records a second declaration of a name in the same scope.
type Redeclaration struct {
	Binding *Binding   // the first declaration
	Decl    ast.NodeID // the repeated declaring identifier
	Kind    BindingKind
}
