// Package model implements the document tree the editor works on: a mutable
// tree of golang.org/x/net/html nodes, classified into block and inline kinds
// by a Schema, together with the boundary points and ranges used to address
// spans of it.
//
// Unlike the nodes of a persistent document model, these nodes are shared
// and mutated in place: the platform, the patches and the host editor all
// hold references into the same tree. Any position computed before a
// mutation may be stale afterwards.
package model

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NewElement creates a detached element node for the given tag.
func NewElement(tag atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: tag,
		Data:     tag.String(),
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// IsText is true for text nodes.
func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

// IsElement is true for element nodes, optionally restricted to the given
// tags.
func IsElement(n *html.Node, tags ...atom.Atom) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if len(tags) == 0 {
		return true
	}
	for _, t := range tags {
		if n.DataAtom == t {
			return true
		}
	}
	return false
}

// hasData reports whether offsets inside n address bytes of its data rather
// than its children.
func hasData(n *html.Node) bool {
	return n.Type == html.TextNode || n.Type == html.CommentNode
}

// Length is the number of valid offsets minus one for a boundary point in
// n: the byte length for text and comments, the child count otherwise.
func Length(n *html.Node) int {
	if hasData(n) {
		return len(n.Data)
	}
	return ChildCount(n)
}

// ChildCount returns the number of children of n.
func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

// ChildAt returns the child at index, or nil when index is out of range.
func ChildAt(n *html.Node, index int) *html.Node {
	if index < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && index > 0; index-- {
		c = c.NextSibling
	}
	return c
}

// Index returns the position of n among its siblings.
func Index(n *html.Node) int {
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

// Root returns the topmost ancestor of n, n itself when it has no parent.
func Root(n *html.Node) *html.Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// IsInclusiveAncestor is true when a is n or one of its ancestors.
func IsInclusiveAncestor(a, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == a {
			return true
		}
	}
	return false
}

// Attached is true when n is root or a descendant of root.
func Attached(root, n *html.Node) bool {
	return IsInclusiveAncestor(root, n)
}

// TextContent concatenates the data of all the text nodes below n.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
			} else {
				walk(c)
			}
		}
	}
	walk(n)
	return sb.String()
}

// Attr returns the value of the named attribute.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the named attribute, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the named attribute and reports whether it was present.
func RemoveAttr(n *html.Node, key string) bool {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i:i], n.Attr[i+1:]...)
			return true
		}
	}
	return false
}

// ShallowClone copies n without its children or tree links.
func ShallowClone(n *html.Node) *html.Node {
	c := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		c.Attr = make([]html.Attribute, len(n.Attr))
		copy(c.Attr, n.Attr)
	}
	return c
}

// DeepClone copies n and its whole subtree. The copy is detached.
func DeepClone(n *html.Node) *html.Node {
	c := ShallowClone(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.AppendChild(DeepClone(child))
	}
	return c
}

// RemoveChildren detaches every child of n.
func RemoveChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}

// Detach removes n from its parent, if any.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
