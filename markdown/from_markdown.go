// Package markdown converts between CommonMark and the markup of an
// editable root: ToHTML renders a markdown source with goldmark, and
// Serializer writes a tree back as markdown.
package markdown

import (
	"bytes"
	"strings"

	"github.com/cozy/scribe-go/model"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parser is the goldmark instance used by ToHTML.
var Parser = goldmark.New()

// ToHTML renders src to markup ready to be set as the content of an
// editable root. The whitespace goldmark puts between blocks is dropped, so
// that it does not end up as text in the tree.
func ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := Parser.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	nodes, err := model.ParseFragment(buf.String(), nil)
	if err != nil {
		return "", err
	}
	var kept []*html.Node
	for _, n := range nodes {
		if isBlank(n) {
			continue
		}
		trimBlockWhitespace(n)
		kept = append(kept, n)
	}
	return model.Serialize(kept...)
}

func isBlank(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}

// trimBlockWhitespace removes the blank text nodes of the elements holding
// blocks.
func trimBlockWhitespace(n *html.Node) {
	holdsBlocks := model.IsElement(n, atom.Blockquote, atom.Ul, atom.Ol, atom.Li, atom.Div)
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if holdsBlocks && isBlank(c) {
			n.RemoveChild(c)
		} else if c.Type == html.ElementNode && !model.IsElement(c, atom.Pre) {
			trimBlockWhitespace(c)
		}
		c = next
	}
}
