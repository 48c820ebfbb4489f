package transform

import (
	"fmt"

	"github.com/cozy/scribe-go/command"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/selection"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Names of the native commands.
const (
	Indent          = "indent"
	Outdent         = "outdent"
	Delete          = "delete"
	ForwardDelete   = "forwardDelete"
	InsertParagraph = "insertParagraph"
)

// BlockquoteStyle is the inline style Chrome puts on the blockquotes created
// by its indent command.
const BlockquoteStyle = "margin: 0 0 0 40px; border: none; padding: 0px;"

// Quirks selects the platform bugs the natives reproduce.
type Quirks struct {
	// NestBlockquoteInEmptyParagraph makes indent put the new blockquote
	// inside an empty paragraph instead of around it.
	NestBlockquoteInEmptyParagraph bool `json:"nestBlockquoteInEmptyParagraph"`

	// BlockquoteStyle makes indent set BlockquoteStyle on the blockquote it
	// creates.
	BlockquoteStyle bool `json:"blockquoteStyle"`

	// DeleteLeavesPristine makes deleting the last empty paragraph, or the
	// whole content, leave the root without any block.
	DeleteLeavesPristine bool `json:"deleteLeavesPristine"`
}

// AllQuirks returns a Quirks with every bug enabled, which is how the
// browsers the patches target behave.
func AllQuirks() Quirks {
	return Quirks{
		NestBlockquoteInEmptyParagraph: true,
		BlockquoteStyle:                true,
		DeleteLeavesPristine:           true,
	}
}

// Natives implements the platform's editing commands over a schema.
type Natives struct {
	Schema *model.Schema
	Quirks Quirks
}

// NewNatives is a constructor for Natives.
func NewNatives(schema *model.Schema, quirks Quirks) *Natives {
	return &Natives{Schema: schema, Quirks: quirks}
}

// Register defines every native command on reg.
func (n *Natives) Register(reg *command.Registry) {
	reg.Define(Indent, n.indent)
	reg.Define(Outdent, n.outdent)
	reg.Define(Delete, n.delete)
	reg.Define(ForwardDelete, n.forwardDelete)
	reg.Define(InsertParagraph, n.insertParagraph)
}

func current(ctx *command.Context) (*model.Range, bool) {
	snap, err := selection.Capture(ctx.Selection)
	if err != nil {
		return nil, false
	}
	return snap.Range(), true
}

func setCaret(ctx *command.Context, p model.Point) error {
	r, err := model.NewRange(p.Node, p.Offset)
	if err != nil {
		return err
	}
	ctx.Selection.RemoveAllRanges()
	ctx.Selection.AddRange(r)
	return nil
}

func valid(root *html.Node, p model.Point) bool {
	return p.Node != nil && model.Attached(root, p.Node) && p.Offset <= model.Length(p.Node)
}

// selectedBlocks returns the consecutive siblings indent acts on: the
// closest block around the range, or the children of the root the range
// touches when it spans several of them.
func (n *Natives) selectedBlocks(root *html.Node, r *model.Range) []*html.Node {
	ca := r.CommonAncestorContainer()
	if b := n.Schema.ClosestBlock(ca, root); b != nil {
		return []*html.Node{b}
	}
	if ca != root {
		return nil
	}
	var first, last *html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if intersects(r, c) {
			if first == nil {
				first = c
			}
			last = c
		}
	}
	if first == nil {
		return nil
	}
	var nodes []*html.Node
	for c := first; ; c = c.NextSibling {
		nodes = append(nodes, c)
		if c == last {
			break
		}
	}
	return nodes
}

func intersects(r *model.Range, c *html.Node) bool {
	if model.IsInclusiveAncestor(c, r.StartContainer()) || model.IsInclusiveAncestor(c, r.EndContainer()) {
		return true
	}
	if r.Collapsed() {
		return false
	}
	before, _ := model.ComparePoints(model.Before(c), r.Start())
	after, _ := model.ComparePoints(model.After(c), r.End())
	return before >= 0 && after <= 0
}

func (n *Natives) indent(ctx *command.Context, _ interface{}) error {
	r, ok := current(ctx)
	if !ok {
		return nil
	}
	blocks := n.selectedBlocks(ctx.Root, r)
	if len(blocks) == 0 {
		return nil
	}

	var bq *html.Node
	if len(blocks) == 1 && n.Quirks.NestBlockquoteInEmptyParagraph &&
		model.IsElement(blocks[0], atom.P) && n.Schema.IsEmptyBlock(blocks[0]) {
		para := blocks[0]
		bq = model.NewElement(atom.Blockquote)
		for para.FirstChild != nil {
			c := para.FirstChild
			para.RemoveChild(c)
			bq.AppendChild(c)
		}
		if bq.FirstChild == nil {
			bq.AppendChild(model.NewElement(atom.Br))
		}
		para.AppendChild(bq)
		if err := setCaret(ctx, model.Point{Node: bq}); err != nil {
			return err
		}
	} else {
		parent, first := blocks[0].Parent, model.Index(blocks[0])
		res := NewWrapStep(model.NewElement(atom.Blockquote), blocks...).Apply(ctx.Root)
		if res.Failed != "" {
			return fmt.Errorf("indent: %s", res.Failed)
		}
		bq = res.Node

		// Boundaries in the parent of the wrapped blocks move into the
		// blockquote.
		start, end := r.Start(), r.End()
		if start.Node == parent {
			start = model.Point{Node: bq, Offset: clamp(start.Offset-first, 0, len(blocks))}
		}
		if end.Node == parent {
			end = model.Point{Node: bq, Offset: clamp(end.Offset-first, 0, len(blocks))}
		}
		nr, err := model.NewRange(start.Node, start.Offset)
		if err != nil {
			return err
		}
		if err := nr.SetEnd(end.Node, end.Offset); err != nil {
			return err
		}
		ctx.Selection.RemoveAllRanges()
		ctx.Selection.AddRange(nr)
	}

	if n.Quirks.BlockquoteStyle {
		style := BlockquoteStyle
		if res := NewSetAttrsStep(bq, map[string]*string{"style": &style}).Apply(ctx.Root); res.Failed != "" {
			return fmt.Errorf("indent: %s", res.Failed)
		}
	}
	return nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (n *Natives) outdent(ctx *command.Context, _ interface{}) error {
	r, ok := current(ctx)
	if !ok {
		return nil
	}
	var bq *html.Node
	for a := r.CommonAncestorContainer(); a != nil && a != ctx.Root; a = a.Parent {
		if model.IsElement(a, atom.Blockquote) {
			bq = a
			break
		}
	}
	if bq == nil {
		return nil
	}

	// A boundary inside the blockquote itself has to move to its parent.
	start, end := r.Start(), r.End()
	idx := model.Index(bq)
	if start.Node == bq {
		start = model.Point{Node: bq.Parent, Offset: idx + start.Offset}
	}
	if end.Node == bq {
		end = model.Point{Node: bq.Parent, Offset: idx + end.Offset}
	}

	if res := NewUnwrapStep(bq).Apply(ctx.Root); res.Failed != "" {
		return fmt.Errorf("outdent: %s", res.Failed)
	}
	nr, err := model.NewRange(start.Node, start.Offset)
	if err != nil {
		return err
	}
	if err := nr.SetEnd(end.Node, end.Offset); err != nil {
		return err
	}
	ctx.Selection.RemoveAllRanges()
	ctx.Selection.AddRange(nr)
	return nil
}

func (n *Natives) insertParagraph(ctx *command.Context, _ interface{}) error {
	r, ok := current(ctx)
	if !ok {
		return nil
	}
	root := ctx.Root
	if !r.Collapsed() {
		if err := n.deleteRange(ctx, r); err != nil {
			return err
		}
		if r, ok = current(ctx); !ok {
			return nil
		}
	}
	caret := r.Start()

	block := n.Schema.ClosestBlock(caret.Node, root)
	if block == nil {
		if caret.Node == root {
			// Nothing to split: the platform falls back to generic
			// containers.
			ref := model.ChildAt(root, caret.Offset)
			first, second := n.emptyBlock(atom.Div), n.emptyBlock(atom.Div)
			root.InsertBefore(first, ref)
			root.InsertBefore(second, ref)
			return setCaret(ctx, model.Point{Node: second})
		}
		top := caret.Node
		for top.Parent != root {
			top = top.Parent
		}
		res := NewWrapStep(model.NewElement(atom.Div), top).Apply(root)
		if res.Failed != "" {
			return fmt.Errorf("insertParagraph: %s", res.Failed)
		}
		block = res.Node
	}

	after, err := model.NewRange(caret.Node, caret.Offset)
	if err != nil {
		return err
	}
	if err := after.SetEnd(block, model.ChildCount(block)); err != nil {
		return err
	}
	tail := model.ShallowClone(block)
	for _, c := range after.CloneContents().Content {
		tail.AppendChild(c)
	}
	after.DeleteContents()
	n.prune(block)
	n.prune(tail)
	block.Parent.InsertBefore(tail, block.NextSibling)
	n.placeholder(block)
	n.placeholder(tail)
	return setCaret(ctx, n.startOf(tail))
}

func (n *Natives) emptyBlock(tag atom.Atom) *html.Node {
	el := model.NewElement(tag)
	el.AppendChild(model.NewElement(atom.Br))
	return el
}

// prune removes empty text nodes and empty inline elements below el.
func (n *Natives) prune(el *html.Node) {
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		isContainer := c.Type == html.ElementNode && !n.Schema.IsVoid(c)
		if isContainer {
			n.prune(c)
		}
		if (model.IsText(c) && c.Data == "") || (isContainer && !n.Schema.IsBlock(c) && c.FirstChild == nil) {
			el.RemoveChild(c)
		}
		c = next
	}
}

// placeholder makes sure an empty block holds a <br>, so that it keeps a
// line box, and returns the caret position inside it.
func (n *Natives) placeholder(block *html.Node) (model.Point, bool) {
	if !n.Schema.IsEmptyBlock(block) {
		return model.Point{}, false
	}
	if !model.IsElement(block.FirstChild, atom.Br) || block.FirstChild != block.LastChild {
		model.RemoveChildren(block)
		block.AppendChild(model.NewElement(atom.Br))
	}
	return model.Point{Node: block}, true
}

func (n *Natives) startOf(block *html.Node) model.Point {
	for _, leaf := range n.leaves(block) {
		if model.IsText(leaf) {
			return model.Point{Node: leaf}
		}
		break
	}
	return model.Point{Node: block}
}

func (n *Natives) endOf(block *html.Node) model.Point {
	if n.Schema.IsEmptyBlock(block) {
		return model.Point{Node: block}
	}
	leaves := n.leaves(block)
	if len(leaves) > 0 {
		if last := leaves[len(leaves)-1]; model.IsText(last) {
			return model.Point{Node: last, Offset: len(last.Data)}
		}
	}
	return model.Point{Node: block, Offset: model.ChildCount(block)}
}

// leaves returns the non-empty text nodes and void elements below el, in
// document order.
func (n *Natives) leaves(el *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(parent *html.Node) {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			switch {
			case model.IsText(c):
				if c.Data != "" {
					out = append(out, c)
				}
			case n.Schema.IsVoid(c):
				out = append(out, c)
			default:
				walk(c)
			}
		}
	}
	walk(el)
	return out
}
