package model

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Serialize renders the given nodes, one after the other, to markup.
//
// Rendering goes through html.Render, so void elements come out in their
// self-closing form (<br/>) and text is escaped. Two trees with the same
// structure, attributes in the same order and the same text always render
// to the same string.
func Serialize(nodes ...*html.Node) (string, error) {
	buf := new(bytes.Buffer)
	for _, n := range nodes {
		if err := html.Render(buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// InnerHTML renders the children of n.
func InnerHTML(n *html.Node) (string, error) {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return Serialize(children...)
}

// ParseFragment parses markup as the content of the given context element.
// The returned nodes are detached.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	if context == nil || context.Type != html.ElementNode {
		context = NewElement(atom.Div)
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}

// SetInnerHTML replaces the children of el with the parsed markup.
func SetInnerHTML(el *html.Node, markup string) error {
	nodes, err := ParseFragment(markup, el)
	if err != nil {
		return err
	}
	RemoveChildren(el)
	for _, n := range nodes {
		el.AppendChild(n)
	}
	return nil
}

// Normalize parses markup and renders it back, which gives the canonical
// form Serialize would produce for the same content.
func Normalize(markup string) (string, error) {
	nodes, err := ParseFragment(markup, nil)
	if err != nil {
		return "", err
	}
	return Serialize(nodes...)
}
