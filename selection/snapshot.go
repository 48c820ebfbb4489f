package selection

import (
	"fmt"

	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
)

// Snapshot is the selection of a Surface as it was when captured.
type Snapshot struct {
	surface Surface
	rng     *model.Range
}

// Capture reads the current selection of s. It fails with ErrNoSelection
// when s holds no range, or when its range is not inside the editable root.
func Capture(s Surface) (*Snapshot, error) {
	if s == nil || s.RangeCount() == 0 {
		return nil, ErrNoSelection
	}
	r := s.RangeAt(0)
	if r == nil {
		return nil, ErrNoSelection
	}
	if !r.Attached(s.Root()) {
		return nil, fmt.Errorf("%w: %v", ErrNoSelection, ErrOutsideRoot)
	}
	return &Snapshot{surface: s, rng: r.Clone()}, nil
}

// Range returns a copy of the captured range. Changing it has no effect on
// the platform selection until it is installed with ReplaceWith.
func (s *Snapshot) Range() *model.Range {
	return s.rng.Clone()
}

// IsCollapsed is true when the selection is a caret.
func (s *Snapshot) IsCollapsed() bool {
	return s.rng.Collapsed()
}

// CommonAncestorContainer returns the deepest node containing the whole
// captured range.
func (s *Snapshot) CommonAncestorContainer() *html.Node {
	return s.rng.CommonAncestorContainer()
}

// FindAncestor walks up from the common ancestor container of the range,
// starting with the container itself, and returns the first node matching
// pred. The editable root is never returned.
func (s *Snapshot) FindAncestor(pred func(*html.Node) bool) (*html.Node, error) {
	root := s.surface.Root()
	for n := s.rng.CommonAncestorContainer(); n != nil && n != root; n = n.Parent {
		if pred(n) {
			return n, nil
		}
	}
	return nil, ErrNotFound
}

// Contains reports whether the whole range lies inside n.
func (s *Snapshot) Contains(n *html.Node) bool {
	_, err := s.FindAncestor(func(a *html.Node) bool { return a == n })
	return err == nil
}

// ReplaceWith clears the platform selection and installs r in its place.
// Every later reader of the surface sees r; this snapshot does not change.
func (s *Snapshot) ReplaceWith(r *model.Range) error {
	if r == nil || !r.Attached(s.surface.Root()) {
		return ErrOutsideRoot
	}
	s.surface.RemoveAllRanges()
	s.surface.AddRange(r)
	return nil
}

// EqualsContent reports whether the captured range and other cover the
// same content. See EqualContents.
func (s *Snapshot) EqualsContent(other *model.Range) (bool, error) {
	return EqualContents(s.rng, other)
}

// EqualContents compares two ranges by the markup of their cloned
// contents, not by their boundary points: a range inside a text node and a
// range around its element compare equal only if the clones render the
// same.
//
// Rendering both clones costs time proportional to the size of the ranges;
// a structural walk over the two fragments would give the same answer.
func EqualContents(a, b *model.Range) (bool, error) {
	am, err := a.CloneContents().HTML()
	if err != nil {
		return false, err
	}
	bm, err := b.CloneContents().HTML()
	if err != nil {
		return false, err
	}
	return am == bm, nil
}

// ContentRange returns a range over the whole content of root.
func ContentRange(root *html.Node) *model.Range {
	return model.SelectNodeContents(root)
}
