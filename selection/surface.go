package selection

import (
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
)

// Surface is the platform's native selection of one editing surface.
type Surface interface {
	// Root is the editable root the selection belongs to.
	Root() *html.Node
	// RangeCount returns the number of ranges in the selection.
	RangeCount() int
	// RangeAt returns the range at index i.
	RangeAt(i int) *model.Range
	// RemoveAllRanges empties the selection.
	RemoveAllRanges()
	// AddRange adds r to the selection.
	AddRange(r *model.Range)
}

// Live is an in-memory Surface. It stores copies of the ranges it is given
// and hands out copies, so callers never share a range with it.
//
// Live is not safe for concurrent use.
type Live struct {
	root   *html.Node
	ranges []*model.Range
}

// NewLive creates an empty selection over root.
func NewLive(root *html.Node) *Live {
	return &Live{root: root}
}

// Root implements Surface.
func (l *Live) Root() *html.Node { return l.root }

// RangeCount implements Surface.
func (l *Live) RangeCount() int { return len(l.ranges) }

// RangeAt implements Surface.
func (l *Live) RangeAt(i int) *model.Range {
	if i < 0 || i >= len(l.ranges) {
		return nil
	}
	return l.ranges[i].Clone()
}

// RemoveAllRanges implements Surface.
func (l *Live) RemoveAllRanges() { l.ranges = nil }

// AddRange implements Surface. Like browsers, the surface holds at most one
// range: adding a range to a non-empty selection replaces it.
func (l *Live) AddRange(r *model.Range) {
	if r == nil {
		return
	}
	l.ranges = []*model.Range{r.Clone()}
}

// Collapse places a caret at (node, offset).
func (l *Live) Collapse(node *html.Node, offset int) error {
	r, err := model.NewRange(node, offset)
	if err != nil {
		return err
	}
	l.RemoveAllRanges()
	l.AddRange(r)
	return nil
}

// SelectAllChildren selects the whole content of n.
func (l *Live) SelectAllChildren(n *html.Node) {
	l.RemoveAllRanges()
	l.AddRange(model.SelectNodeContents(n))
}
