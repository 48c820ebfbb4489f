package model

import (
	"fmt"

	"golang.org/x/net/html"
)

// A fragment is a detached, ordered list of nodes, as produced by cloning
// the contents of a range.
type Fragment struct {
	Content []*html.Node
}

// The number of top-level nodes in this fragment.
func (f *Fragment) ChildCount() int {
	return len(f.Content)
}

// Get the node at the given index. Raise an error when the index is out
// of range.
func (f *Fragment) Child(index int) *html.Node {
	if index >= len(f.Content) {
		panic(fmt.Errorf("Index %d out of range for %v", index, f))
	}
	return f.Content[index]
}

// Append adds a detached node at the end of the fragment.
func (f *Fragment) Append(n *html.Node) {
	f.Content = append(f.Content, n)
}

// TextContent concatenates the text of every node in the fragment.
func (f *Fragment) TextContent() string {
	s := ""
	for _, n := range f.Content {
		s += TextContent(n)
	}
	return s
}

// HTML serializes the fragment to markup.
func (f *Fragment) HTML() (string, error) {
	return Serialize(f.Content...)
}

func (f *Fragment) String() string {
	s, err := f.HTML()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return s
}
