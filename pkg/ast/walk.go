package ast

// Walk traverses the named nodes of a tree depth-first and calls fn for each
// node. If fn returns false, the children of that node are skipped.
func Walk(node *Node, fn func(node *Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, c := range node.Children {
		if c.Named {
			Walk(c, fn)
		}
	}
}

// Inspect is Walk with an exit callback that runs after a node's children
// have been visited (or skipped).
func Inspect(node *Node, enter func(node *Node) bool, exit func(node *Node)) {
	if node == nil {
		return
	}
	if enter(node) {
		for _, c := range node.Children {
			if c.Named {
				Inspect(c, enter, exit)
			}
		}
	}
	if exit != nil {
		exit(node)
	}
}

// Find returns the first named node in pre-order for which pred is true.
func Find(node *Node, pred func(node *Node) bool) *Node {
	var found *Node
	Walk(node, func(n *Node) bool {
		if found != nil {
			return false
		}
		if pred(n) {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every named node of the given kind under node.
func FindAll(node *Node, kind string) []*Node {
	var out []*Node
	Walk(node, func(n *Node) bool {
		if n.Kind == kind {
			out = append(out, n)
		}
		return true
	})
	return out
}
