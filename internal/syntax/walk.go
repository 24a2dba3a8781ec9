package syntax

// Descendants returns every node below n in pre-order (source order),
// excluding n itself.
func (n *Node) Descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// Members returns the direct children of n with the given kind.
func (n *Node) Members(kind Kind) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// EnclosingNamespace returns the name of the namespace n is declared
// directly in. Types nested in another type, and top-level types outside any
// namespace, are in the global namespace "".
func (n *Node) EnclosingNamespace() string {
	if n.Parent != nil && n.Parent.Kind == KindNamespace {
		return n.Parent.Name
	}
	return ""
}
