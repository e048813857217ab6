// Package ast is the read-only syntax tree view the lint engine works on.
//
// Trees are produced by pkg/parser. Every node carries a NodeID that is
// stable for the lifetime of its File and can be used as a side-table key
// by analyses that must not mutate the tree.
package ast

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/jslint/pkg/token"
)

// ErrForeignNode is raised when a NodeID or Node from another file is used to
// query a File. It signals a bug in the caller, never bad input.
var ErrForeignNode = errors.New("node does not belong to this file")

// NodeID identifies a node within one File (pre-order index).
type NodeID int32

// NoNode is the parent id of the root.
const NoNode NodeID = -1

// Node is a single syntax tree node.
type Node struct {
	ID       NodeID
	Kind     string // grammar node type, e.g. "if_statement"
	Field    string // field name in the parent, e.g. "body"; empty if none
	Named    bool   // false for punctuation and keyword tokens
	Range    token.Range
	Parent   *Node
	Children []*Node

	file *File
}

// File returns the file the node belongs to.
func (n *Node) File() *File {
	return n.file
}

// Text returns the source text covered by the node.
func (n *Node) Text() string {
	return string(n.file.Source[n.Range.Start:n.Range.End])
}

// ChildByField returns the first child with the given field name.
func (n *Node) ChildByField(field string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Field == field {
			return c
		}
	}
	return nil
}

// ChildrenByField returns all children with the given field name.
func (n *Node) ChildrenByField(field string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Field == field {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildren returns the named children in source order.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamedChild returns the first named child of the given kind, or the
// first named child at all when kind is empty.
func (n *Node) FirstNamedChild(kind string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Named && (kind == "" || c.Kind == kind) {
			return c
		}
	}
	return nil
}

// HasToken reports whether the node has an anonymous child token with the
// given text, e.g. "async" or "await".
func (n *Node) HasToken(tok string) bool {
	for _, c := range n.Children {
		if !c.Named && c.Kind == tok {
			return true
		}
	}
	return false
}

// Ancestor returns the closest ancestor whose kind is one of kinds.
func (n *Node) Ancestor(kinds ...string) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		for _, k := range kinds {
			if p.Kind == k {
				return p
			}
		}
	}
	return nil
}

// Unparen strips parenthesized_expression wrappers.
func Unparen(n *Node) *Node {
	for n != nil && n.Kind == KindParenthesized {
		n = n.FirstNamedChild("")
	}
	return n
}

func (n *Node) String() string {
	return fmt.Sprintf("%s[%d:%d]", n.Kind, n.Range.Start, n.Range.End)
}
