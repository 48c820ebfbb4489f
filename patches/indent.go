package patches

import (
	"errors"
	"fmt"

	"github.com/cozy/scribe-go/command"
	"github.com/cozy/scribe-go/editor"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/selection"
	"github.com/cozy/scribe-go/transform"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Marker is the invisible character put in a paragraph before indenting
// it, so that the paragraph is not empty.
const Marker = "\uFEFF"

func isBlockquote(n *html.Node) bool {
	return model.IsElement(n, atom.Blockquote)
}

// Indent patches the indent command.
//
// Chrome nests the blockquote inside an empty paragraph instead of wrapping
// the paragraph, and sets a redundant style attribute on the blockquote it
// creates. The patch puts a marker in the paragraph before delegating, and
// removes the style afterwards.
func Indent() editor.Plugin {
	return func(e *editor.Editor) error {
		p, err := e.PatchedCommands().NewPatch(transform.Indent)
		if err != nil {
			return err
		}
		return p.Install(func(ctx *command.Context, value interface{}) error {
			snap, err := selection.Capture(ctx.Selection)
			if err != nil {
				// Nothing selected, nothing to indent.
				return nil
			}
			if inParagraph(snap.CommonAncestorContainer()) {
				if err := insertMarker(snap); err != nil {
					return fmt.Errorf("indent: %w", err)
				}
			}

			if err := p.Original(ctx, value); err != nil {
				return err
			}

			snap, err = selection.Capture(ctx.Selection)
			if errors.Is(err, selection.ErrNoSelection) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("indent: %w", err)
			}
			bq, err := snap.FindAncestor(isBlockquote)
			if err != nil {
				return fmt.Errorf("indent: blockquote: %w", err)
			}
			if res := transform.NewRemoveAttrStep(bq, "style").Apply(ctx.Root); res.Failed != "" {
				return fmt.Errorf("indent: %s", res.Failed)
			}

			e.PushHistory()
			e.Trigger(editor.EventContentChanged)
			return nil
		})
	}
}

// inParagraph is true for a paragraph, or for an empty text node in one.
func inParagraph(n *html.Node) bool {
	if model.IsText(n) && n.Data == "" {
		n = n.Parent
	}
	return model.IsElement(n, atom.P)
}

// insertMarker inserts a Marker at the start of the snapshot's range and
// puts the caret at its beginning.
func insertMarker(snap *selection.Snapshot) error {
	r := snap.Range()
	marker := model.NewText(Marker)
	if err := r.InsertNode(marker); err != nil {
		return err
	}
	caret, err := model.NewRange(marker, 0)
	if err != nil {
		return err
	}
	return snap.ReplaceWith(caret)
}
