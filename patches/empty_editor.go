package patches

import (
	"github.com/cozy/scribe-go/editor"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/selection"
)

// EmptyContent is what the editor is reset to.
const EmptyContent = "<p><br></p>"

// EmptyEditorWhenDeleting keeps delete and backspace from leaving the
// editor without any block.
//
// Chrome and Firefox delete the last paragraph when backspace is pressed in
// it while it is empty, and Firefox does the same when the whole content is
// selected. A new line typed in such a pristine editor gets a <div> instead
// of a <p>. In both cases the patch replaces the default behavior with a
// reset to an empty paragraph.
func EmptyEditorWhenDeleting() editor.Plugin {
	return func(e *editor.Editor) error {
		e.AddKeyHook(func(ev editor.KeyEvent) (editor.Decision, error) {
			if ev.Code != editor.KeyBackspace && ev.Code != editor.KeyDelete {
				return editor.Allow, nil
			}
			snap, err := selection.Capture(e.Selection())
			if err != nil {
				return editor.Allow, nil
			}
			allSelected, err := snap.EqualsContent(selection.ContentRange(e.El()))
			if err != nil {
				return editor.Allow, err
			}
			if !shouldReset(snap.IsCollapsed(), allSelected, e.Text()) {
				return editor.Allow, nil
			}
			return editor.SuppressWith(func() error {
				return reset(e, snap)
			}), nil
		})
		return nil
	}
}

// shouldReset tells whether a delete or backspace would leave the editor
// pristine.
func shouldReset(collapsed, allSelected bool, text string) bool {
	return (collapsed && text == "") || (!collapsed && allSelected)
}

func reset(e *editor.Editor, snap *selection.Snapshot) error {
	if err := e.SetHTML(EmptyContent); err != nil {
		return err
	}
	caret, err := model.NewRange(e.El().FirstChild, 0)
	if err != nil {
		return err
	}
	if err := snap.ReplaceWith(caret); err != nil {
		return err
	}
	e.PushHistory()
	e.Trigger(editor.EventContentChanged)
	return nil
}
