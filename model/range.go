package model

import (
	"fmt"

	"golang.org/x/net/html"
)

// A Range delimits a span of a document tree between two boundary points.
// The start never comes after the end. A Range is a plain value: it does not
// follow mutations of the tree, so after any change it has to be recomputed
// or checked again.
type Range struct {
	start Point
	end   Point
}

// NewRange returns a range collapsed at (node, offset).
func NewRange(node *html.Node, offset int) (*Range, error) {
	if err := checkPoint(Point{node, offset}); err != nil {
		return nil, err
	}
	p := Point{node, offset}
	return &Range{start: p, end: p}, nil
}

// SelectNodeContents returns a range spanning all the children of n.
func SelectNodeContents(n *html.Node) *Range {
	return &Range{
		start: Point{n, 0},
		end:   Point{n, Length(n)},
	}
}

// SelectNode returns a range spanning exactly n. It returns nil if n has no
// parent.
func SelectNode(n *html.Node) *Range {
	if n.Parent == nil {
		return nil
	}
	return &Range{start: Before(n), end: After(n)}
}

func checkPoint(p Point) error {
	if p.Node == nil {
		return fmt.Errorf("%w: nil container", ErrDetached)
	}
	if p.Offset < 0 || p.Offset > Length(p.Node) {
		return fmt.Errorf("%w: offset %d in node of length %d", ErrIndexSize, p.Offset, Length(p.Node))
	}
	return nil
}

// StartContainer returns the node where the range starts.
func (r *Range) StartContainer() *html.Node { return r.start.Node }

// StartOffset returns the offset within the start container.
func (r *Range) StartOffset() int { return r.start.Offset }

// EndContainer returns the node where the range ends.
func (r *Range) EndContainer() *html.Node { return r.end.Node }

// EndOffset returns the offset within the end container.
func (r *Range) EndOffset() int { return r.end.Offset }

// Start returns the start boundary point.
func (r *Range) Start() Point { return r.start }

// End returns the end boundary point.
func (r *Range) End() Point { return r.end }

// Collapsed returns true if start and end are the same point.
func (r *Range) Collapsed() bool {
	return r.start == r.end
}

// Root returns the root of the tree the range lives in.
func (r *Range) Root() *html.Node {
	return Root(r.start.Node)
}

// CommonAncestorContainer returns the deepest node containing both
// boundary points.
func (r *Range) CommonAncestorContainer() *html.Node {
	return CommonAncestor(r.start.Node, r.end.Node)
}

// SetStart moves the start of the range. When the new start lies after the
// end, the range collapses to it. A node of another tree fails with
// ErrDetached.
func (r *Range) SetStart(node *html.Node, offset int) error {
	p := Point{node, offset}
	if err := checkPoint(p); err != nil {
		return err
	}
	if Root(node) != r.Root() {
		return ErrDetached
	}
	if comparePoints(p, r.end) > 0 {
		r.end = p
	}
	r.start = p
	return nil
}

// SetEnd moves the end of the range. When the new end lies before the
// start, the range collapses to it. A node of another tree fails with
// ErrDetached.
func (r *Range) SetEnd(node *html.Node, offset int) error {
	p := Point{node, offset}
	if err := checkPoint(p); err != nil {
		return err
	}
	if Root(node) != r.Root() {
		return ErrDetached
	}
	if comparePoints(p, r.start) < 0 {
		r.start = p
	}
	r.end = p
	return nil
}

// Collapse moves one boundary onto the other.
func (r *Range) Collapse(toStart bool) {
	if toStart {
		r.end = r.start
	} else {
		r.start = r.end
	}
}

// Clone returns an independent copy of the range.
func (r *Range) Clone() *Range {
	c := *r
	return &c
}

// Equal reports whether both ranges have identical boundary points.
func (r *Range) Equal(other *Range) bool {
	return other != nil && r.start == other.start && r.end == other.end
}

// Attached reports whether both boundaries are still inside root and their
// offsets still fit their containers.
func (r *Range) Attached(root *html.Node) bool {
	return Attached(root, r.start.Node) && Attached(root, r.end.Node) &&
		checkPoint(r.start) == nil && checkPoint(r.end) == nil
}

func (r *Range) String() string {
	return fmt.Sprintf("Range(%s:%d, %s:%d)", describe(r.start.Node), r.start.Offset, describe(r.end.Node), r.end.Offset)
}

func describe(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return fmt.Sprintf("%q", n.Data)
	case html.ElementNode:
		return "<" + n.Data + ">"
	}
	return "#node"
}

// contains reports whether n lies entirely inside the range.
func (r *Range) contains(n *html.Node) bool {
	if n.Parent == nil {
		return false
	}
	return comparePoints(Before(n), r.start) >= 0 && comparePoints(After(n), r.end) <= 0
}

// partiallyContains reports whether n holds one boundary but not both.
func (r *Range) partiallyContains(n *html.Node) bool {
	return IsInclusiveAncestor(n, r.start.Node) != IsInclusiveAncestor(n, r.end.Node)
}

// InsertNode inserts n at the start of the range. A text container is split
// in two around the insertion point. A collapsed range is extended to end
// just after the inserted node.
func (r *Range) InsertNode(n *html.Node) error {
	if IsInclusiveAncestor(n, r.start.Node) {
		return fmt.Errorf("%w: node contains the range start", ErrHierarchy)
	}
	Detach(n)
	collapsed := r.Collapsed()
	container, offset := r.start.Node, r.start.Offset

	var parent, ref *html.Node
	if hasData(container) {
		if container.Parent == nil {
			return fmt.Errorf("%w: text container has no parent", ErrHierarchy)
		}
		parent = container.Parent
		if offset < len(container.Data) {
			tail := ShallowClone(container)
			tail.Data = container.Data[offset:]
			container.Data = container.Data[:offset]
			parent.InsertBefore(tail, container.NextSibling)
			if r.end.Node == container && r.end.Offset >= offset {
				r.end = Point{tail, r.end.Offset - offset}
			}
			ref = tail
		} else {
			ref = container.NextSibling
		}
	} else {
		parent = container
		ref = ChildAt(container, offset)
		if r.end.Node == container && r.end.Offset > offset {
			r.end.Offset++
		}
	}
	parent.InsertBefore(n, ref)
	if collapsed {
		r.end = After(n)
	}
	return nil
}

// DeleteContents removes the contents of the range from the tree and
// collapses the range. Nodes only partially inside the range are kept, with
// their text trimmed; they are not merged.
func (r *Range) DeleteContents() {
	if r.Collapsed() {
		return
	}
	s, e := r.start, r.end
	if s.Node == e.Node && hasData(s.Node) {
		s.Node.Data = s.Node.Data[:s.Offset] + s.Node.Data[e.Offset:]
		r.end = s
		return
	}

	var contained []*html.Node
	var collect func(*html.Node)
	collect = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case r.contains(c):
				contained = append(contained, c)
			case r.partiallyContains(c):
				collect(c)
			}
		}
	}
	collect(CommonAncestor(s.Node, e.Node))

	var pos Point
	if IsInclusiveAncestor(s.Node, e.Node) {
		pos = s
	} else {
		ref := s.Node
		for ref.Parent != nil && !IsInclusiveAncestor(ref.Parent, e.Node) {
			ref = ref.Parent
		}
		pos = After(ref)
	}

	if hasData(s.Node) {
		s.Node.Data = s.Node.Data[:s.Offset]
	}
	for _, n := range contained {
		Detach(n)
	}
	if hasData(e.Node) {
		e.Node.Data = e.Node.Data[e.Offset:]
	}
	r.start, r.end = pos, pos
}

// CloneContents copies the contents of the range into a detached fragment.
// Nodes partially inside the range are copied shallowly, with only the part
// of their content that is inside.
func (r *Range) CloneContents() *Fragment {
	f := &Fragment{}
	if r.Collapsed() {
		return f
	}
	s, e := r.start, r.end
	if s.Node == e.Node && hasData(s.Node) {
		c := ShallowClone(s.Node)
		c.Data = s.Node.Data[s.Offset:e.Offset]
		f.Append(c)
		return f
	}
	for _, c := range r.cloneChildren(CommonAncestor(s.Node, e.Node)) {
		f.Append(c)
	}
	return f
}

func (r *Range) cloneChildren(parent *html.Node) []*html.Node {
	var out []*html.Node
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case r.contains(c):
			out = append(out, DeepClone(c))
		case r.partiallyContains(c):
			clone := ShallowClone(c)
			if hasData(c) {
				from, to := 0, len(c.Data)
				if c == r.start.Node {
					from = r.start.Offset
				}
				if c == r.end.Node {
					to = r.end.Offset
				}
				clone.Data = c.Data[from:to]
			} else {
				for _, gc := range r.cloneChildren(c) {
					clone.AppendChild(gc)
				}
			}
			out = append(out, clone)
		}
	}
	return out
}
