package model

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Node groups understood by the editor. The document schema goes no further
// than this: a node is either a block or an inline.
const (
	GroupBlock  = "block"
	GroupInline = "inline"
)

// NodeSpec describes one kind of element.
type NodeSpec struct {
	// Key is the name of the node type, e.g. "paragraph".
	Key string `json:"key"`
	// Tag is the element that represents the node in the tree.
	Tag atom.Atom `json:"-"`
	// Group is GroupBlock or GroupInline.
	Group string `json:"group"`
	// Void elements never have children (<br>, <hr>, <img>).
	Void bool `json:"void,omitempty"`
}

// NodeType is a NodeSpec bound to a Schema.
type NodeType struct {
	Name   string
	Spec   *NodeSpec
	Schema *Schema
}

// IsBlock is true for types in the block group.
func (nt *NodeType) IsBlock() bool {
	return nt.Spec.Group == GroupBlock
}

// IsInline is true for types in the inline group.
func (nt *NodeType) IsInline() bool {
	return nt.Spec.Group == GroupInline
}

// IsLeaf is true for void elements.
func (nt *NodeType) IsLeaf() bool {
	return nt.Spec.Void
}

// SchemaSpec is the description used to build a Schema.
type SchemaSpec struct {
	Nodes []*NodeSpec `json:"nodes"`
}

// Schema classifies the elements of a document tree.
type Schema struct {
	Spec  *SchemaSpec
	Nodes map[string]*NodeType
	byTag map[atom.Atom]*NodeType
}

// NewSchema builds a schema. Keys and tags must be unique, and every node
// must belong to one of the two known groups.
func NewSchema(spec *SchemaSpec) (*Schema, error) {
	s := &Schema{
		Spec:  spec,
		Nodes: make(map[string]*NodeType, len(spec.Nodes)),
		byTag: make(map[atom.Atom]*NodeType, len(spec.Nodes)),
	}
	for _, ns := range spec.Nodes {
		if ns.Group != GroupBlock && ns.Group != GroupInline {
			return nil, fmt.Errorf("node type %q has unknown group %q", ns.Key, ns.Group)
		}
		if _, ok := s.Nodes[ns.Key]; ok {
			return nil, fmt.Errorf("duplicate node type %q", ns.Key)
		}
		if prev, ok := s.byTag[ns.Tag]; ok {
			return nil, fmt.Errorf("tag %s used by both %q and %q", ns.Tag, prev.Name, ns.Key)
		}
		nt := &NodeType{Name: ns.Key, Spec: ns, Schema: s}
		s.Nodes[ns.Key] = nt
		s.byTag[ns.Tag] = nt
	}
	return s, nil
}

// NodeType returns the type of an element, or nil for text nodes and for
// elements the schema does not know.
func (s *Schema) NodeType(n *html.Node) *NodeType {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return s.byTag[n.DataAtom]
}

// IsBlock reports whether n is a block-level element.
func (s *Schema) IsBlock(n *html.Node) bool {
	nt := s.NodeType(n)
	return nt != nil && nt.IsBlock()
}

// IsInline reports whether n is inline content. Text nodes are inline.
func (s *Schema) IsInline(n *html.Node) bool {
	if IsText(n) {
		return true
	}
	nt := s.NodeType(n)
	return nt != nil && nt.IsInline()
}

// IsVoid reports whether n is an element that cannot have children.
func (s *Schema) IsVoid(n *html.Node) bool {
	nt := s.NodeType(n)
	return nt != nil && nt.IsLeaf()
}

// ClosestBlock returns the nearest block ancestor of n (n included) strictly
// below stop, or nil.
func (s *Schema) ClosestBlock(n, stop *html.Node) *html.Node {
	for ; n != nil && n != stop; n = n.Parent {
		if s.IsBlock(n) {
			return n
		}
	}
	return nil
}

// IsEmptyBlock is true for a block without text content whose only children,
// if any, are line breaks.
func (s *Schema) IsEmptyBlock(n *html.Node) bool {
	if !s.IsBlock(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case IsElement(c, atom.Br):
		case IsText(c) && c.Data == "":
		default:
			return false
		}
	}
	return true
}
