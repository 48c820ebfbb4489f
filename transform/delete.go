package transform

import (
	"unicode/utf8"

	"github.com/cozy/scribe-go/command"
	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func (n *Natives) delete(ctx *command.Context, _ interface{}) error {
	return n.deleteContent(ctx, true)
}

func (n *Natives) forwardDelete(ctx *command.Context, _ interface{}) error {
	return n.deleteContent(ctx, false)
}

func (n *Natives) deleteContent(ctx *command.Context, backward bool) error {
	r, ok := current(ctx)
	if !ok {
		return nil
	}
	if !r.Collapsed() {
		return n.deleteRange(ctx, r)
	}
	return n.deleteChar(ctx, r.Start(), backward)
}

// deleteRange removes the selected content, then joins the blocks holding
// the two ends of the range.
func (n *Natives) deleteRange(ctx *command.Context, r *model.Range) error {
	root := ctx.Root
	start := r.Start()
	startBlock := n.Schema.ClosestBlock(start.Node, root)
	endBlock := n.Schema.ClosestBlock(r.EndContainer(), root)

	r.DeleteContents()
	caret := r.Start()
	if valid(root, start) {
		caret = start
	}

	if startBlock != nil && endBlock != nil &&
		!model.IsInclusiveAncestor(startBlock, endBlock) && !model.IsInclusiveAncestor(endBlock, startBlock) &&
		model.Attached(root, startBlock) && model.Attached(root, endBlock) {
		junction := n.merge(startBlock, endBlock)
		if !valid(root, caret) {
			caret = junction
		}
	}

	if root.FirstChild == nil {
		if n.Quirks.DeleteLeavesPristine {
			return setCaret(ctx, model.Point{Node: root})
		}
		para := n.emptyBlock(atom.P)
		root.AppendChild(para)
		return setCaret(ctx, model.Point{Node: para})
	}
	if startBlock != nil && model.Attached(root, startBlock) {
		if p, ok := n.placeholder(startBlock); ok {
			caret = p
		}
	}
	return setCaret(ctx, caret)
}

// merge moves the content of src to the end of dst and removes src. It
// returns the point where both contents meet.
func (n *Natives) merge(dst, src *html.Node) model.Point {
	if n.Schema.IsEmptyBlock(dst) {
		model.RemoveChildren(dst)
	}
	junction := model.Point{Node: dst, Offset: model.ChildCount(dst)}
	if !n.Schema.IsEmptyBlock(src) {
		for src.FirstChild != nil {
			c := src.FirstChild
			src.RemoveChild(c)
			dst.AppendChild(c)
		}
	}
	model.Detach(src)
	if p, ok := n.placeholder(dst); ok {
		return p
	}
	return junction
}

// deleteChar removes one character, or one void element, next to the
// caret. At the edge of a block it joins the block with its sibling.
func (n *Natives) deleteChar(ctx *command.Context, caret model.Point, backward bool) error {
	root := ctx.Root
	block := n.Schema.ClosestBlock(caret.Node, root)
	if block == nil {
		return nil
	}

	if t := caret.Node; model.IsText(t) {
		if backward && caret.Offset > 0 {
			_, size := utf8.DecodeLastRuneInString(t.Data[:caret.Offset])
			t.Data = t.Data[:caret.Offset-size] + t.Data[caret.Offset:]
			return n.afterCharDelete(ctx, block, model.Point{Node: t, Offset: caret.Offset - size})
		}
		if !backward && caret.Offset < len(t.Data) {
			_, size := utf8.DecodeRuneInString(t.Data[caret.Offset:])
			t.Data = t.Data[:caret.Offset] + t.Data[caret.Offset+size:]
			return n.afterCharDelete(ctx, block, caret)
		}
	}

	if leaf := n.adjacentLeaf(block, caret, backward); leaf != nil {
		var p model.Point
		switch {
		case model.IsText(leaf) && backward:
			_, size := utf8.DecodeLastRuneInString(leaf.Data)
			leaf.Data = leaf.Data[:len(leaf.Data)-size]
			p = model.Point{Node: leaf, Offset: len(leaf.Data)}
		case model.IsText(leaf):
			_, size := utf8.DecodeRuneInString(leaf.Data)
			leaf.Data = leaf.Data[size:]
			p = model.Point{Node: leaf}
		default:
			p = model.Before(leaf)
			model.Detach(leaf)
		}
		return n.afterCharDelete(ctx, block, p)
	}
	return n.joinBlocks(ctx, block, backward)
}

func (n *Natives) afterCharDelete(ctx *command.Context, block *html.Node, caret model.Point) error {
	if p, ok := n.placeholder(block); ok {
		caret = p
	}
	return setCaret(ctx, caret)
}

// adjacentLeaf returns the leaf of block just before (or after) the caret.
func (n *Natives) adjacentLeaf(block *html.Node, caret model.Point, backward bool) *html.Node {
	if n.Schema.IsEmptyBlock(block) {
		return nil
	}
	leaves := n.leaves(block)
	if backward {
		for i := len(leaves) - 1; i >= 0; i-- {
			if cmp, _ := model.ComparePoints(model.After(leaves[i]), caret); cmp <= 0 {
				return leaves[i]
			}
		}
		return nil
	}
	for _, leaf := range leaves {
		if cmp, _ := model.ComparePoints(model.Before(leaf), caret); cmp >= 0 {
			return leaf
		}
	}
	return nil
}

func (n *Natives) siblingBlock(block *html.Node, backward bool) *html.Node {
	s := block.NextSibling
	if backward {
		s = block.PrevSibling
	}
	if s != nil && n.Schema.IsBlock(s) {
		return s
	}
	return nil
}

func (n *Natives) joinBlocks(ctx *command.Context, block *html.Node, backward bool) error {
	root := ctx.Root
	if backward {
		if prev := n.siblingBlock(block, true); prev != nil {
			if n.Schema.IsEmptyBlock(block) {
				model.Detach(block)
				return setCaret(ctx, n.endOf(prev))
			}
			return setCaret(ctx, n.merge(prev, block))
		}
	} else if next := n.siblingBlock(block, false); next != nil {
		return setCaret(ctx, n.merge(block, next))
	}

	if n.Quirks.DeleteLeavesPristine && n.Schema.IsEmptyBlock(block) &&
		block.Parent == root && block.PrevSibling == nil && block.NextSibling == nil {
		model.Detach(block)
		return setCaret(ctx, model.Point{Node: root})
	}
	return nil
}
