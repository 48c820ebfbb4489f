// Package builder provides short constructors for document trees in tests.
package builder

import (
	"fmt"

	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/schema/basic"
	"github.com/cozy/scribe-go/schema/list"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attrs can be passed to a NodeBuilder to set attributes on the element.
type Attrs map[string]string

// NodeBuilder creates an element. Its arguments may be strings (text
// children), nodes (element children), html.Attribute values or Attrs.
type NodeBuilder func(args ...interface{}) *html.Node

func block(tag atom.Atom) NodeBuilder {
	return func(args ...interface{}) *html.Node {
		el := model.NewElement(tag)
		for _, arg := range args {
			switch a := arg.(type) {
			case string:
				el.AppendChild(model.NewText(a))
			case *html.Node:
				el.AppendChild(a)
			case NodeBuilder:
				el.AppendChild(a())
			case html.Attribute:
				el.Attr = append(el.Attr, a)
			case Attrs:
				for k, v := range a {
					model.SetAttr(el, k, v)
				}
			default:
				panic(fmt.Errorf("builder: unsupported argument %T", arg))
			}
		}
		return el
	}
}

// Builders returns a NodeBuilder for each node type of the schema, keyed by
// the type name, plus "schema".
func Builders(schema *model.Schema) map[string]interface{} {
	result := map[string]interface{}{"schema": schema}
	for name, typ := range schema.Nodes {
		result[name] = block(typ.Spec.Tag)
	}
	return result
}

var testSchema, _ = model.NewSchema(&model.SchemaSpec{
	Nodes: list.AddListNodes(basic.Schema.Spec.Nodes, model.GroupBlock),
})

var out = Builders(testSchema)

var (
	Schema     = out["schema"].(*model.Schema)
	Div        = out["container"].(NodeBuilder)
	P          = out["paragraph"].(NodeBuilder)
	Blockquote = out["blockquote"].(NodeBuilder)
	Pre        = out["code_block"].(NodeBuilder)
	H1         = out["heading1"].(NodeBuilder)
	H2         = out["heading2"].(NodeBuilder)
	Li         = out["list_item"].(NodeBuilder)
	Ul         = out["bullet_list"].(NodeBuilder)
	Ol         = out["ordered_list"].(NodeBuilder)
	Br         = out["hard_break"].(NodeBuilder)
	Img        = out["image"].(NodeBuilder)
	Hr         = out["horizontal_rule"].(NodeBuilder)
	A          = out["link"].(NodeBuilder)
	Em         = out["em"].(NodeBuilder)
	Strong     = out["strong"].(NodeBuilder)
	Code       = out["code"].(NodeBuilder)
)

// Doc builds an editable root: a <div contenteditable> holding the given
// children.
func Doc(args ...interface{}) *html.Node {
	return Div(append([]interface{}{Attrs{"contenteditable": "true"}}, args...)...)
}

// FindText returns the first text node below root whose data equals text.
func FindText(root *html.Node, text string) *html.Node {
	return Find(root, func(n *html.Node) bool {
		return n.Type == html.TextNode && n.Data == text
	})
}

// FindTag returns the first element below root with the given tag.
func FindTag(root *html.Node, tag atom.Atom) *html.Node {
	return Find(root, func(n *html.Node) bool {
		return model.IsElement(n, tag)
	})
}

// Find returns the first node below root, in document order, matching pred.
func Find(root *html.Node, pred func(*html.Node) bool) *html.Node {
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if pred(c) {
			return c
		}
		if found := Find(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// MustHTML renders the children of n, panicking on error.
func MustHTML(n *html.Node) string {
	s, err := model.InnerHTML(n)
	if err != nil {
		panic(err)
	}
	return s
}
