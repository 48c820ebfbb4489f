package history

import (
	"errors"

	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
)

// ErrStaleBookmark is returned when a bookmark does not resolve in a tree.
var ErrStaleBookmark = errors.New("history: stale bookmark")

// Bookmark locates a boundary point by the child indexes leading from the
// root to its container. Unlike a model.Point, it survives the tree being
// parsed again from its markup.
type Bookmark struct {
	Path   []int
	Offset int
}

// NewBookmark returns the bookmark of p below root. ok is false when p is
// not inside root.
func NewBookmark(root *html.Node, p model.Point) (b Bookmark, ok bool) {
	if p.Node == nil || !model.Attached(root, p.Node) {
		return Bookmark{}, false
	}
	var path []int
	for n := p.Node; n != root; n = n.Parent {
		path = append(path, model.Index(n))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return Bookmark{Path: path, Offset: p.Offset}, true
}

// Resolve finds the point b designates below root.
func (b Bookmark) Resolve(root *html.Node) (model.Point, error) {
	n := root
	for _, i := range b.Path {
		if n = model.ChildAt(n, i); n == nil {
			return model.Point{}, ErrStaleBookmark
		}
	}
	if b.Offset < 0 || b.Offset > model.Length(n) {
		return model.Point{}, ErrStaleBookmark
	}
	return model.Point{Node: n, Offset: b.Offset}, nil
}
