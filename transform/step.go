// Package transform implements the mutations the platform applies to a
// document tree when it executes an editing command, and the native
// commands built from them.
//
// The natives reproduce the behavior of real contenteditable
// implementations, including their quirks, which can be switched on and
// off with Quirks. They are what patches wrap.
package transform

import (
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
)

// Step objects represent an atomic change to a tree. A step holds direct
// references to the nodes it changes, so it only makes sense for the tree
// it was created for, and only until that tree changes in some other way.
type Step interface {
	// Apply performs the change, returning a result that indicates failure
	// if the step can not be applied to the tree as it is now.
	Apply(root *html.Node) StepResult
}

// StepResult is the result of applying a step.
type StepResult struct {
	// Node is the node the step created or changed, if any.
	Node *html.Node
	// Text providing information about a failed step.
	Failed string
}

// OK creates a successful step result.
func OK(n *html.Node) StepResult {
	return StepResult{Node: n}
}

// Fail creates a failed step result.
func Fail(message string) StepResult {
	return StepResult{Failed: message}
}

// WrapStep replaces a run of consecutive siblings with a new element that
// contains them.
type WrapStep struct {
	Nodes   []*html.Node
	Wrapper *html.Node
}

// NewWrapStep is a constructor for WrapStep. wrapper must be a detached
// element without children.
func NewWrapStep(wrapper *html.Node, nodes ...*html.Node) *WrapStep {
	return &WrapStep{Nodes: nodes, Wrapper: wrapper}
}

// Apply is a method of the Step interface.
func (s *WrapStep) Apply(root *html.Node) StepResult {
	if len(s.Nodes) == 0 {
		return Fail("Nothing to wrap")
	}
	if s.Wrapper.Parent != nil || s.Wrapper.FirstChild != nil {
		return Fail("Wrapper is not a fresh element")
	}
	parent := s.Nodes[0].Parent
	if parent == nil || !model.Attached(root, parent) {
		return Fail("Wrapped nodes are not in the tree")
	}
	for i, n := range s.Nodes {
		if n.Parent != parent || (i > 0 && s.Nodes[i-1].NextSibling != n) {
			return Fail("Wrapped nodes are not consecutive siblings")
		}
	}
	parent.InsertBefore(s.Wrapper, s.Nodes[0])
	for _, n := range s.Nodes {
		parent.RemoveChild(n)
		s.Wrapper.AppendChild(n)
	}
	return OK(s.Wrapper)
}

// UnwrapStep replaces an element with its children.
type UnwrapStep struct {
	Node *html.Node
}

// NewUnwrapStep is a constructor for UnwrapStep.
func NewUnwrapStep(n *html.Node) *UnwrapStep {
	return &UnwrapStep{Node: n}
}

// Apply is a method of the Step interface.
func (s *UnwrapStep) Apply(root *html.Node) StepResult {
	n := s.Node
	if n == root || n.Parent == nil || !model.Attached(root, n) {
		return Fail("Node can not be unwrapped")
	}
	parent := n.Parent
	for n.FirstChild != nil {
		c := n.FirstChild
		n.RemoveChild(c)
		parent.InsertBefore(c, n)
	}
	parent.RemoveChild(n)
	return OK(parent)
}

var (
	_ Step = &WrapStep{}
	_ Step = &UnwrapStep{}
)
