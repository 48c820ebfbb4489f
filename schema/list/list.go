// Package list exports list-related schema elements.
package list

import (
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html/atom"
)

var (
	// An ordered list node spec. Represented as an <ol> element.
	orderedList = model.NodeSpec{Key: "ordered_list", Tag: atom.Ol}

	// A bullet list node spec, represented in the DOM as <ul>.
	bulletList = model.NodeSpec{Key: "bullet_list", Tag: atom.Ul}

	// A list item (<li>) spec.
	listItem = model.NodeSpec{Key: "list_item", Tag: atom.Li}
)

func add(obj model.NodeSpec, group string) *model.NodeSpec {
	obj.Group = group
	return &obj
}

// AddListNodes is a convenience function for adding list-related node types
// to the node specs of a schema. Adds orderedList as "ordered_list",
// bulletList as "bullet_list", and listItem as "list_item", all in the given
// group, which is normally model.GroupBlock.
func AddListNodes(nodes []*model.NodeSpec, listGroup string) []*model.NodeSpec {
	out := make([]*model.NodeSpec, len(nodes), len(nodes)+3)
	copy(out, nodes)
	return append(
		out,
		add(orderedList, listGroup),
		add(bulletList, listGroup),
		add(listItem, listGroup),
	)
}
