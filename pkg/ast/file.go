package ast

import (
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/token"
)

// Language identifies the grammar a file was parsed with.
type Language string

// Supported languages.
const (
	JavaScript Language = "javascript"
	JSX        Language = "jsx"
	TypeScript Language = "typescript"
	TSX        Language = "tsx"
)

// File is a parsed source file.
type File struct {
	Name     string
	Source   []byte
	Language Language
	Root     *Node
	Comments []token.Comment
	Lines    *token.LineIndex

	nodes []*Node
}

// Builder assembles a File node by node in pre-order. It is used by the
// parser adapter and by tests that construct trees by hand.
type Builder struct {
	file *File
}

// NewBuilder starts a new file.
func NewBuilder(name string, src []byte, lang Language) *Builder {
	return &Builder{file: &File{
		Name:     name,
		Source:   src,
		Language: lang,
		Lines:    token.NewLineIndex(src),
	}}
}

// Add appends a node under parent (nil for the root) and returns it.
// Nodes must be added in pre-order.
func (b *Builder) Add(parent *Node, kind, field string, named bool, rng token.Range) *Node {
	n := &Node{
		ID:     NodeID(len(b.file.nodes)),
		Kind:   kind,
		Field:  field,
		Named:  named,
		Range:  rng,
		Parent: parent,
		file:   b.file,
	}
	b.file.nodes = append(b.file.nodes, n)
	if parent == nil {
		b.file.Root = n
	} else {
		parent.Children = append(parent.Children, n)
	}
	return n
}

// AddComment records a comment.
func (b *Builder) AddComment(c token.Comment) {
	b.file.Comments = append(b.file.Comments, c)
}

// File returns the built file.
func (b *Builder) File() *File {
	return b.file
}

// Len returns the number of nodes in the file.
func (f *File) Len() int {
	return len(f.nodes)
}

// Node returns the node with the given id. It panics with ErrForeignNode if
// the id is not part of this file.
func (f *File) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(f.nodes) {
		panic(fmt.Errorf("%w: id %d in %s", ErrForeignNode, id, f.Name))
	}
	return f.nodes[id]
}

// MustOwn panics with ErrForeignNode if n is not part of this file.
func (f *File) MustOwn(n *Node) {
	if n == nil || n.file != f {
		panic(fmt.Errorf("%w: %v in %s", ErrForeignNode, n, f.Name))
	}
}

// Position returns the line/column position of a byte offset.
func (f *File) Position(offset int) token.Position {
	return f.Lines.Position(offset)
}

// LineOf returns the 1-based line of a byte offset.
func (f *File) LineOf(offset int) int {
	return f.Lines.Line(offset)
}

// IsModule reports whether the file contains import or export statements.
func (f *File) IsModule() bool {
	if f.Root == nil {
		return false
	}
	for _, c := range f.Root.Children {
		if c.Kind == KindImport || c.Kind == KindExport {
			return true
		}
	}
	return false
}

// IsTypeScript reports whether the file was parsed with a TypeScript grammar.
func (f *File) IsTypeScript() bool {
	return f.Language == TypeScript || f.Language == TSX
}

// NodeAt returns the innermost named node containing offset.
func (f *File) NodeAt(offset int) *Node {
	n := f.Root
	for n != nil {
		var next *Node
		for _, c := range n.Children {
			if c.Named && c.Range.Start <= offset && offset < c.Range.End {
				next = c
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
	return nil
}
