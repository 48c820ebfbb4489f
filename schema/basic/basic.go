// Package basic defines a basic document schema, whose node kinds can be
// reused in other schemas.
package basic

import (
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html/atom"
)

// Nodes are the specs for the nodes defined in this schema.
var Nodes = []*model.NodeSpec{
	// A plain paragraph textblock. Represented in the DOM as a <p> element.
	{Key: "paragraph", Tag: atom.P, Group: model.GroupBlock},

	// A blockquote (<blockquote>) wrapping one or more blocks.
	{Key: "blockquote", Tag: atom.Blockquote, Group: model.GroupBlock},

	// A generic container (<div>). Browsers insert these when a new line is
	// typed into an editable root that has no block left.
	{Key: "container", Tag: atom.Div, Group: model.GroupBlock},

	// A horizontal rule (<hr>).
	{Key: "horizontal_rule", Tag: atom.Hr, Group: model.GroupBlock, Void: true},

	// Heading textblocks, <h1> to <h6>.
	{Key: "heading1", Tag: atom.H1, Group: model.GroupBlock},
	{Key: "heading2", Tag: atom.H2, Group: model.GroupBlock},
	{Key: "heading3", Tag: atom.H3, Group: model.GroupBlock},
	{Key: "heading4", Tag: atom.H4, Group: model.GroupBlock},
	{Key: "heading5", Tag: atom.H5, Group: model.GroupBlock},
	{Key: "heading6", Tag: atom.H6, Group: model.GroupBlock},

	// A code listing. Represented as a <pre> element.
	{Key: "code_block", Tag: atom.Pre, Group: model.GroupBlock},

	// An inline image (<img>).
	{Key: "image", Tag: atom.Img, Group: model.GroupInline, Void: true},

	// A hard line break, represented in the DOM as <br>.
	{Key: "hard_break", Tag: atom.Br, Group: model.GroupInline, Void: true},

	// Formatting elements.
	{Key: "link", Tag: atom.A, Group: model.GroupInline},
	{Key: "em", Tag: atom.Em, Group: model.GroupInline},
	{Key: "italic", Tag: atom.I, Group: model.GroupInline},
	{Key: "strong", Tag: atom.Strong, Group: model.GroupInline},
	{Key: "bold", Tag: atom.B, Group: model.GroupInline},
	{Key: "underline", Tag: atom.U, Group: model.GroupInline},
	{Key: "code", Tag: atom.Code, Group: model.GroupInline},
	{Key: "span", Tag: atom.Span, Group: model.GroupInline},
}

// Schema classifies the nodes above.
//
// To reuse elements from this schema, extend or read from its Spec.Nodes.
var Schema, _ = model.NewSchema(&model.SchemaSpec{
	Nodes: Nodes,
})
