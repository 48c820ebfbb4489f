package editor_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/cozy/scribe-go/command"
	. "github.com/cozy/scribe-go/editor"
	"github.com/cozy/scribe-go/history"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/test/builder"
	"github.com/cozy/scribe-go/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func newEditor(t *testing.T, markup string, cfg Config) *Editor {
	t.Helper()
	e := New(nil, cfg)
	require.NoError(t, e.SetHTML(markup))
	e.PushHistory()
	return e
}

func content(t *testing.T, e *Editor) string {
	t.Helper()
	markup, err := e.HTML()
	require.NoError(t, err)
	return markup
}

func countEvents(e *Editor) *int {
	n := 0
	e.On(EventContentChanged, func(string) { n++ })
	return &n
}

func TestNew(t *testing.T) {
	e := New(nil, DefaultConfig())
	assert.True(t, model.IsElement(e.El(), atom.Div))
	v, _ := model.Attr(e.El(), "contenteditable")
	assert.Equal(t, "true", v)
	assert.Equal(t, 1, e.History().Len(), "the initial content is a checkpoint")
	assert.Empty(t, e.PatchedCommands().Names())
	assert.True(t, e.PatchedCommands().IsSupported(transform.Indent))

	root := builder.Doc(builder.P("x"))
	e = New(root, DefaultConfig().WithRootTag(atom.Section))
	assert.Equal(t, root, e.El())
	assert.Equal(t, root, e.Context().Root)
	assert.Equal(t, e.Selection(), e.Context().Selection)
	assert.Equal(t, "x", e.Text())
}

func TestConfig(t *testing.T) {
	base := DefaultConfig()
	cfg := base.WithMaxHistory(3).WithQuirks(transform.Quirks{}).WithSchema(builder.Schema)
	assert.Equal(t, history.DefaultMaxEntries, base.MaxHistory, "With methods return copies")
	assert.Equal(t, transform.AllQuirks(), base.Quirks)
	assert.Equal(t, 3, cfg.MaxHistory)
	assert.Equal(t, transform.Quirks{}, cfg.Quirks)
	assert.Equal(t, builder.Schema, New(nil, cfg).Schema())
}

func TestSetHTML(t *testing.T) {
	e := newEditor(t, "<p>Hello <em>world</em></p>", DefaultConfig())
	assert.Equal(t, "<p>Hello <em>world</em></p>", content(t, e))
	assert.Equal(t, "Hello world", e.Text())

	require.NoError(t, e.SetHTML("<p><br></p>"))
	assert.Equal(t, "<p><br/></p>", content(t, e))
	assert.Equal(t, "", e.Text())
}

func TestMarkdown(t *testing.T) {
	e := New(nil, DefaultConfig())
	require.NoError(t, e.SetMarkdown("# Title\n\nSome *text*"))
	assert.Equal(t, "<h1>Title</h1><p>Some <em>text</em></p>", content(t, e))
	assert.Equal(t, "# Title\n\nSome *text*", e.Markdown())
}

func TestExecCommandRecordsHistory(t *testing.T) {
	e := New(nil, DefaultConfig().WithQuirks(transform.Quirks{}))
	require.NoError(t, e.SetHTML("<p>Hello</p>"))
	events := countEvents(e)
	text := builder.FindText(e.El(), "Hello")
	require.NoError(t, e.Selection().Collapse(text, 2))
	e.PushHistory()

	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, "<blockquote><p>Hello</p></blockquote>", content(t, e))
	assert.Equal(t, 1, *events)
	assert.Equal(t, 3, e.History().Len())

	require.NoError(t, e.Undo())
	assert.Equal(t, "<p>Hello</p>", content(t, e))
	assert.Equal(t, 2, *events)
	r := e.Selection().RangeAt(0)
	require.NotNil(t, r, "the selection is restored")
	assert.Equal(t, "Hello", r.StartContainer().Data)
	assert.Equal(t, 2, r.StartOffset())

	require.NoError(t, e.Redo())
	assert.Equal(t, "<blockquote><p>Hello</p></blockquote>", content(t, e))
	assert.True(t, errors.Is(e.Redo(), history.ErrNothingToRedo))

	// a command changing nothing records nothing
	e.Selection().RemoveAllRanges()
	require.NoError(t, e.ExecCommand(transform.Outdent, nil))
	assert.Equal(t, 3, e.History().Len())
}

func TestUndoWithoutHistory(t *testing.T) {
	e := New(nil, DefaultConfig())
	assert.True(t, errors.Is(e.Undo(), history.ErrNothingToUndo))
}

func TestExecUnknownCommand(t *testing.T) {
	e := New(nil, DefaultConfig())
	events := countEvents(e)
	err := e.ExecCommand("bold", nil)
	assert.True(t, errors.Is(err, command.ErrUnknownCommand))
	assert.Equal(t, 0, *events)
}

func TestKeyDownDefault(t *testing.T) {
	e := newEditor(t, "<p>Hello</p>", DefaultConfig())
	events := countEvents(e)
	require.NoError(t, e.Selection().Collapse(builder.FindText(e.El(), "Hello"), 5))

	d, err := e.KeyDown(KeyEvent{Code: KeyBackspace})
	require.NoError(t, err)
	assert.False(t, d.Suppress)
	assert.Equal(t, "<p>Hell</p>", content(t, e))
	assert.Equal(t, 1, *events)

	require.NoError(t, e.Selection().Collapse(builder.FindText(e.El(), "Hell"), 0))
	_, err = e.KeyDown(KeyEvent{Code: KeyDelete})
	require.NoError(t, err)
	assert.Equal(t, "<p>ell</p>", content(t, e))

	_, err = e.KeyDown(KeyEvent{Code: 65})
	require.NoError(t, err)
	assert.Equal(t, "<p>ell</p>", content(t, e))
	assert.Equal(t, 2, *events)
}

func TestKeyHooks(t *testing.T) {
	e := newEditor(t, "<p>Hello</p>", DefaultConfig())
	require.NoError(t, e.Selection().Collapse(builder.FindText(e.El(), "Hello"), 5))

	var calls []string
	e.AddKeyHook(func(ev KeyEvent) (Decision, error) {
		calls = append(calls, fmt.Sprintf("first %d", ev.Code))
		return Allow, nil
	})
	e.AddKeyHook(func(ev KeyEvent) (Decision, error) {
		calls = append(calls, "second")
		return SuppressWith(func() error {
			calls = append(calls, "replacement")
			return nil
		}), nil
	})
	e.AddKeyHook(func(ev KeyEvent) (Decision, error) {
		calls = append(calls, "third")
		return Allow, nil
	})

	d, err := e.KeyDown(KeyEvent{Code: KeyBackspace})
	require.NoError(t, err)
	assert.True(t, d.Suppress)
	assert.Equal(t, []string{"first 8", "second", "replacement"}, calls)
	assert.Equal(t, "<p>Hello</p>", content(t, e), "the default behavior did not run")
}

func TestKeyHookError(t *testing.T) {
	e := newEditor(t, "<p>Hello</p>", DefaultConfig())
	require.NoError(t, e.Selection().Collapse(builder.FindText(e.El(), "Hello"), 5))
	boom := errors.New("boom")

	e.AddKeyHook(func(ev KeyEvent) (Decision, error) { return Allow, boom })
	_, err := e.KeyDown(KeyEvent{Code: KeyBackspace})
	assert.Equal(t, boom, err)
	assert.Equal(t, "<p>Hello</p>", content(t, e))

	e = newEditor(t, "<p>Hello</p>", DefaultConfig())
	e.AddKeyHook(func(ev KeyEvent) (Decision, error) {
		return SuppressWith(func() error { return boom }), nil
	})
	_, err = e.KeyDown(KeyEvent{Code: KeyDelete})
	assert.Equal(t, boom, err)
}

func TestUse(t *testing.T) {
	e := New(nil, DefaultConfig())
	var order []int
	plugin := func(i int) Plugin {
		return func(got *Editor) error {
			assert.Equal(t, e, got)
			order = append(order, i)
			return nil
		}
	}
	require.NoError(t, e.Use(plugin(1), plugin(2)))
	assert.Equal(t, []int{1, 2}, order)

	err := e.Use(plugin(3), nil, plugin(4))
	assert.True(t, errors.Is(err, ErrNilPlugin))
	assert.Equal(t, []int{1, 2, 3}, order)

	boom := errors.New("boom")
	err = e.Use(func(*Editor) error { return boom })
	assert.True(t, errors.Is(err, boom))
}

func TestLogger(t *testing.T) {
	var lines []string
	cfg := DefaultConfig().WithLogger(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	})
	e := New(nil, cfg)
	_ = e.ExecCommand("bold", nil)
	assert.Contains(t, lines, "editor: exec bold")
}

func TestUndoWithStaleSelectionEnd(t *testing.T) {
	var lines []string
	e := New(nil, DefaultConfig().WithLogger(func(format string, args ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}))
	e.History().Push(&history.Entry{
		HTML:     "<p>ab</p>",
		Selected: true,
		Start:    history.Bookmark{Path: []int{0, 0}, Offset: 1},
		End:      history.Bookmark{Path: []int{3}},
	})
	e.History().Push(&history.Entry{HTML: "<p>abc</p>"})

	require.NoError(t, e.Undo())
	assert.Equal(t, "<p>ab</p>", content(t, e))
	assert.Contains(t, lines, "editor: selection end not restored: "+history.ErrStaleBookmark.Error())
	r := e.Selection().RangeAt(0)
	require.NotNil(t, r, "the start is still restored")
	assert.True(t, r.Collapsed())
	assert.Equal(t, 1, r.StartOffset())
}
