package transform

import (
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
)

// SetAttrsStep can be used to change the attributes of an element. A nil
// value removes the attribute.
type SetAttrsStep struct {
	Node  *html.Node
	Attrs map[string]*string
}

// NewSetAttrsStep is a constructor for SetAttrsStep
func NewSetAttrsStep(n *html.Node, attrs map[string]*string) *SetAttrsStep {
	return &SetAttrsStep{Node: n, Attrs: attrs}
}

// NewRemoveAttrStep returns a step removing the given attributes.
func NewRemoveAttrStep(n *html.Node, keys ...string) *SetAttrsStep {
	attrs := make(map[string]*string, len(keys))
	for _, k := range keys {
		attrs[k] = nil
	}
	return NewSetAttrsStep(n, attrs)
}

// Apply is a method of the Step interface.
func (s *SetAttrsStep) Apply(root *html.Node) StepResult {
	target := s.Node
	if target == nil || target.Type != html.ElementNode {
		return Fail("No element to set attributes on")
	}
	if !model.Attached(root, target) {
		return Fail("Element is not in the tree")
	}
	for k, v := range s.Attrs {
		if v == nil {
			model.RemoveAttr(target, k)
		} else {
			model.SetAttr(target, k, *v)
		}
	}
	return OK(target)
}

// Invert returns the step restoring the attributes s changes, as they are
// on the node now. Call it before applying s.
func (s *SetAttrsStep) Invert() *SetAttrsStep {
	attrs := make(map[string]*string, len(s.Attrs))
	for k := range s.Attrs {
		if v, ok := model.Attr(s.Node, k); ok {
			v := v
			attrs[k] = &v
		} else {
			attrs[k] = nil
		}
	}
	return NewSetAttrsStep(s.Node, attrs)
}

var _ Step = &SetAttrsStep{}
