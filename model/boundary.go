package model

import "golang.org/x/net/html"

// Point is a boundary point: a container node and an offset into it.
type Point struct {
	Node   *html.Node
	Offset int
}

// Before returns the point just before n in its parent.
func Before(n *html.Node) Point {
	return Point{Node: n.Parent, Offset: Index(n)}
}

// After returns the point just after n in its parent.
func After(n *html.Node) Point {
	return Point{Node: n.Parent, Offset: Index(n) + 1}
}

// ComparePoints returns -1, 0 or 1 depending on whether a is before, equal
// to, or after b in document order. Points in different trees cannot be
// compared and yield ErrDetached.
func ComparePoints(a, b Point) (int, error) {
	if Root(a.Node) != Root(b.Node) {
		return 0, ErrDetached
	}
	return comparePoints(a, b), nil
}

func comparePoints(a, b Point) int {
	if a.Node == b.Node {
		return compareInts(a.Offset, b.Offset)
	}
	if IsInclusiveAncestor(b.Node, a.Node) {
		return -comparePoints(b, a)
	}
	if IsInclusiveAncestor(a.Node, b.Node) {
		child := b.Node
		for child.Parent != a.Node {
			child = child.Parent
		}
		if Index(child) < a.Offset {
			return 1
		}
		return -1
	}
	return compareTreeOrder(a.Node, b.Node)
}

func compareInts(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// path returns the child indexes leading from the root down to n.
func path(n *html.Node) []int {
	var p []int
	for ; n.Parent != nil; n = n.Parent {
		p = append(p, Index(n))
	}
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// compareTreeOrder compares two nodes of the same tree, neither of which is
// an ancestor of the other.
func compareTreeOrder(a, b *html.Node) int {
	pa, pb := path(a), path(b)
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if c := compareInts(pa[i], pb[i]); c != 0 {
			return c
		}
	}
	return compareInts(len(pa), len(pb))
}

// CommonAncestor returns the deepest node that is an inclusive ancestor of
// both a and b, or nil when they live in different trees.
func CommonAncestor(a, b *html.Node) *html.Node {
	for n := a; n != nil; n = n.Parent {
		if IsInclusiveAncestor(n, b) {
			return n
		}
	}
	return nil
}
