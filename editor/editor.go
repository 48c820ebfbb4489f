// Package editor is a host for command patches: an editable root with a
// selection, an undo history, events, key hooks and a registry of the
// platform's commands.
//
// Patches attach to an editor through plugins:
//
//	e := editor.New(nil, editor.DefaultConfig())
//	if err := e.Use(patches.Core()...); err != nil {
//		return err
//	}
//	err := e.ExecCommand("indent", nil)
//
// An Editor is not safe for concurrent use.
package editor

import (
	"errors"
	"fmt"

	"github.com/cozy/scribe-go/command"
	"github.com/cozy/scribe-go/history"
	"github.com/cozy/scribe-go/markdown"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/selection"
	"github.com/cozy/scribe-go/transform"
	"golang.org/x/net/html"
)

// Plugin extends an editor when it is passed to Use.
type Plugin func(e *Editor) error

// Editor holds an editable root and everything the patches need around it.
type Editor struct {
	el        *html.Node
	cfg       Config
	selection *selection.Live
	commands  *command.Registry
	history   *history.History
	listeners map[string][]Listener
	keyHooks  []KeyHook
}

// New creates an editor over el. When el is nil, a detached editable
// element of cfg.RootTag is created. The current content is recorded as the
// first history checkpoint.
func New(el *html.Node, cfg Config) *Editor {
	if cfg.Schema == nil {
		cfg.Schema = defaultSchema
	}
	if el == nil {
		el = model.NewElement(cfg.RootTag, html.Attribute{Key: "contenteditable", Val: "true"})
	}
	e := &Editor{
		el:        el,
		cfg:       cfg,
		selection: selection.NewLive(el),
		commands:  command.NewRegistry(),
		history:   history.NewHistory(cfg.MaxHistory),
		listeners: make(map[string][]Listener),
	}
	transform.NewNatives(cfg.Schema, cfg.Quirks).Register(e.commands)
	e.pushHistory()
	return e
}

func (e *Editor) logf(format string, args ...interface{}) {
	if e.cfg.Logf != nil {
		e.cfg.Logf(format, args...)
	}
}

// El returns the editable root.
func (e *Editor) El() *html.Node {
	return e.el
}

// Schema returns the schema the editor was configured with.
func (e *Editor) Schema() *model.Schema {
	return e.cfg.Schema
}

// Selection returns the selection of the editable root.
func (e *Editor) Selection() *selection.Live {
	return e.selection
}

// History returns the undo history.
func (e *Editor) History() *history.History {
	return e.history
}

// PatchedCommands returns the registry of the commands of the editor, native
// and patched.
func (e *Editor) PatchedCommands() *command.Registry {
	return e.commands
}

// Context returns the context commands of this editor run with.
func (e *Editor) Context() *command.Context {
	return &command.Context{Root: e.el, Selection: e.selection}
}

// Text returns the text content of the root.
func (e *Editor) Text() string {
	return model.TextContent(e.el)
}

// HTML returns the markup of the content.
func (e *Editor) HTML() (string, error) {
	return model.InnerHTML(e.el)
}

// SetHTML replaces the content with the parsed markup. The selection is
// left as it is, and is dropped by the next capture if it pointed into the
// old content.
func (e *Editor) SetHTML(markup string) error {
	if err := model.SetInnerHTML(e.el, markup); err != nil {
		return fmt.Errorf("editor: set html: %w", err)
	}
	return nil
}

// SetMarkdown replaces the content with the rendering of a markdown source.
func (e *Editor) SetMarkdown(src string) error {
	markup, err := markdown.ToHTML(src)
	if err != nil {
		return fmt.Errorf("editor: set markdown: %w", err)
	}
	return e.SetHTML(markup)
}

// Markdown returns the content written as markdown.
func (e *Editor) Markdown() string {
	return markdown.NewDefaultSerializer(e.cfg.Schema).Serialize(e.el)
}

// PushHistory records the current content and selection as a checkpoint.
func (e *Editor) PushHistory() {
	e.pushHistory()
}

func (e *Editor) pushHistory() bool {
	markup, err := e.HTML()
	if err != nil {
		e.logf("editor: history not recorded: %v", err)
		return false
	}
	entry := &history.Entry{HTML: markup}
	if snap, err := selection.Capture(e.selection); err == nil {
		r := snap.Range()
		start, okStart := history.NewBookmark(e.el, r.Start())
		end, okEnd := history.NewBookmark(e.el, r.End())
		entry.Selected = okStart && okEnd
		entry.Start, entry.End = start, end
	}
	pushed := e.history.Push(entry)
	if pushed {
		e.logf("editor: history checkpoint %d", e.history.Len())
	}
	return pushed
}

// Undo restores the previous checkpoint.
func (e *Editor) Undo() error {
	entry, err := e.history.Undo()
	if err != nil {
		return err
	}
	return e.restore(entry)
}

// Redo restores the checkpoint Undo stepped back from.
func (e *Editor) Redo() error {
	entry, err := e.history.Redo()
	if err != nil {
		return err
	}
	return e.restore(entry)
}

func (e *Editor) restore(entry *history.Entry) error {
	if err := e.SetHTML(entry.HTML); err != nil {
		return err
	}
	e.selection.RemoveAllRanges()
	if entry.Selected {
		e.restoreSelection(entry.Start, entry.End)
	}
	e.Trigger(EventContentChanged)
	return nil
}

func (e *Editor) restoreSelection(start, end history.Bookmark) {
	s, err := start.Resolve(e.el)
	if err != nil {
		e.logf("editor: selection not restored: %v", err)
		return
	}
	r, err := model.NewRange(s.Node, s.Offset)
	if err != nil {
		e.logf("editor: selection not restored: %v", err)
		return
	}
	p, err := end.Resolve(e.el)
	if err == nil {
		err = r.SetEnd(p.Node, p.Offset)
	}
	if err != nil {
		e.logf("editor: selection end not restored: %v", err)
	}
	e.selection.AddRange(r)
}

// ExecCommand runs a command through its patch, if it has one. A change of
// the content not recorded by the command itself is checkpointed and
// announced.
func (e *Editor) ExecCommand(name string, value interface{}) error {
	e.logf("editor: exec %s", name)
	if err := e.commands.Execute(e.Context(), name, value); err != nil {
		e.logf("editor: %s failed: %v", name, err)
		return err
	}
	if e.pushHistory() {
		e.Trigger(EventContentChanged)
	}
	return nil
}

// ErrNilPlugin is returned by Use for a nil plugin.
var ErrNilPlugin = errors.New("editor: nil plugin")

// Use attaches plugins, in order. It stops at the first failing one.
func (e *Editor) Use(plugins ...Plugin) error {
	for i, p := range plugins {
		if p == nil {
			return fmt.Errorf("%w at %d", ErrNilPlugin, i)
		}
		if err := p(e); err != nil {
			return fmt.Errorf("editor: plugin %d: %w", i, err)
		}
		e.logf("editor: plugin %d attached", i)
	}
	return nil
}
