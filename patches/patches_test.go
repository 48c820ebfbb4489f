package patches

import (
	"errors"
	"testing"

	"github.com/cozy/scribe-go/command"
	"github.com/cozy/scribe-go/editor"
	"github.com/cozy/scribe-go/model"
	"github.com/cozy/scribe-go/selection"
	"github.com/cozy/scribe-go/test/builder"
	"github.com/cozy/scribe-go/transform"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	doc        = builder.Doc
	p          = builder.P
	blockquote = builder.Blockquote
	br         = builder.Br
	findText   = builder.FindText
	render     = builder.MustHTML
)

const styled = `<blockquote style="` + transform.BlockquoteStyle + `">`

type recorder struct {
	*editor.Editor
	events int
}

func setup(t *testing.T, root *html.Node, plugins ...editor.Plugin) *recorder {
	t.Helper()
	e := &recorder{Editor: editor.New(root, editor.DefaultConfig())}
	e.On(editor.EventContentChanged, func(string) { e.events++ })
	require.NoError(t, e.Use(plugins...))
	return e
}

func (e *recorder) caret(t *testing.T, n *html.Node, offset int) {
	t.Helper()
	require.NoError(t, e.Selection().Collapse(n, offset))
}

// checkBlockquotes fails when a blockquote sits inside a paragraph or
// carries a style attribute.
func checkBlockquotes(t *testing.T, root *html.Node) {
	t.Helper()
	found := false
	builder.Find(root, func(n *html.Node) bool {
		if model.IsElement(n, atom.Blockquote) {
			found = true
			assert.False(t, model.IsElement(n.Parent, atom.P), "blockquote nested in a paragraph: %s", render(root))
			_, ok := model.Attr(n, "style")
			assert.False(t, ok, "blockquote has a style: %s", render(root))
		}
		return false
	})
	assert.True(t, found, "no blockquote in %s", render(root))
}

func TestIndentEmptyParagraph(t *testing.T) {
	e := setup(t, doc(p()), Indent())
	e.caret(t, e.El().FirstChild, 0)

	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, "<blockquote><p>"+Marker+"</p></blockquote>", render(e.El()))
	checkBlockquotes(t, e.El())

	// without the patch
	e = setup(t, doc(p()))
	e.caret(t, e.El().FirstChild, 0)
	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, "<p>"+styled+"<br/></blockquote></p>", render(e.El()))
}

func TestIndentEmptyParagraphs(t *testing.T) {
	for _, root := range []*html.Node{
		doc(p()),
		doc(p(br)),
		doc(p("before"), p(br), p("after")),
		doc(blockquote(p("quoted")), p()),
		doc(blockquote(p(br))),
		doc(p("")),
		doc(p("before"), p("", br)),
	} {
		e := setup(t, root, Indent())
		empty := builder.Find(root, func(n *html.Node) bool {
			return model.IsElement(n, atom.P) && e.Schema().IsEmptyBlock(n)
		})
		require.NotNil(t, empty)
		if model.IsText(empty.FirstChild) {
			// the caret sits in the empty text node
			e.caret(t, empty.FirstChild, 0)
		} else {
			e.caret(t, empty, 0)
		}

		require.NoError(t, e.ExecCommand(transform.Indent, nil))
		checkBlockquotes(t, e.El())
	}
}

func TestIndentNonEmptyParagraph(t *testing.T) {
	patched := setup(t, doc(p("Hello"), p("World")), Indent())
	patched.caret(t, findText(patched.El(), "Hello"), 3)
	require.NoError(t, patched.ExecCommand(transform.Indent, nil))

	native := setup(t, doc(p("Hello"), p("World")))
	native.caret(t, findText(native.El(), "Hello"), 3)
	require.NoError(t, native.ExecCommand(transform.Indent, nil))
	bq := builder.FindTag(native.El(), atom.Blockquote)
	model.RemoveAttr(bq, "style")

	if diff := cmp.Diff(render(native.El()), render(patched.El())); diff != "" {
		t.Errorf("patched indent differs from the native one (-native +patched):\n%s", diff)
	}
	assert.Equal(t, "<blockquote><p>Hello</p></blockquote><p>World</p>", render(patched.El()))
}

func TestIndentAllSelected(t *testing.T) {
	for _, root := range []*html.Node{
		doc(p("a"), p("b")),
		doc(p("a")),
	} {
		e := setup(t, root, Indent())
		e.Selection().SelectAllChildren(root)
		want := "<blockquote>" + render(root) + "</blockquote>"

		require.NoError(t, e.ExecCommand(transform.Indent, nil))
		assert.Equal(t, want, render(root))
		checkBlockquotes(t, root)
		assert.Equal(t, 1, e.events)
	}
}

func TestIndentSelectionLost(t *testing.T) {
	e := setup(t, doc(p("a")))
	e.PatchedCommands().Define(transform.Indent, func(ctx *command.Context, _ interface{}) error {
		ctx.Selection.RemoveAllRanges()
		return nil
	})
	require.NoError(t, e.Use(Indent()))
	require.NoError(t, e.Selection().Collapse(findText(e.El(), "a"), 0))

	assert.NoError(t, e.ExecCommand(transform.Indent, nil), "nothing left to fix up")
	assert.Equal(t, 0, e.events)
}

func TestIndentNestedBlockquote(t *testing.T) {
	e := setup(t, doc(blockquote(p("x"))), Indent())
	e.caret(t, findText(e.El(), "x"), 1)

	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, "<blockquote><blockquote><p>x</p></blockquote></blockquote>", render(e.El()))
}

func TestIndentRecordsOnce(t *testing.T) {
	e := setup(t, doc(p(br)), Indent())
	e.caret(t, e.El().FirstChild, 0)
	before := e.History().Len()

	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, 1, e.events)
	assert.Equal(t, before+1, e.History().Len())
	markup, err := e.HTML()
	require.NoError(t, err)
	assert.Equal(t, markup, e.History().Current().HTML)
}

func TestIndentWithoutSelection(t *testing.T) {
	e := setup(t, doc(p("Hello")), Indent())

	require.NoError(t, e.ExecCommand(transform.Indent, nil))
	assert.Equal(t, "<p>Hello</p>", render(e.El()))
	assert.Equal(t, 0, e.events)
}

func TestIndentWithoutBlockquote(t *testing.T) {
	e := setup(t, doc(), Indent())
	e.caret(t, e.El(), 0)

	err := e.ExecCommand(transform.Indent, nil)
	assert.True(t, errors.Is(err, selection.ErrNotFound))
	assert.Equal(t, 0, e.events)

	patch, lookupErr := e.PatchedCommands().Lookup(transform.Indent)
	require.NoError(t, lookupErr)
	assert.True(t, patch.Installed(), "a failed invocation leaves the patch in place")
}

func TestIndentPatchedTwice(t *testing.T) {
	e := setup(t, doc(p("x")), Indent())
	err := e.Use(Indent())
	assert.True(t, errors.Is(err, command.ErrAlreadyPatched))
}

func TestShouldReset(t *testing.T) {
	assert.True(t, shouldReset(true, false, ""))
	assert.True(t, shouldReset(true, true, ""))
	assert.False(t, shouldReset(true, false, "a"))
	assert.True(t, shouldReset(false, true, "a"))
	assert.True(t, shouldReset(false, true, ""))
	assert.False(t, shouldReset(false, false, ""))
	assert.False(t, shouldReset(false, false, "a"))
}

func TestDeleteInEmptyEditor(t *testing.T) {
	cases := []struct {
		root  *html.Node
		caret func(root *html.Node) (*html.Node, int)
	}{
		{doc(), func(root *html.Node) (*html.Node, int) { return root, 0 }},
		{doc(p()), func(root *html.Node) (*html.Node, int) { return root.FirstChild, 0 }},
		{doc(p(br)), func(root *html.Node) (*html.Node, int) { return root.FirstChild, 0 }},
		{doc(p(br), p(br)), func(root *html.Node) (*html.Node, int) { return root.LastChild, 0 }},
		{doc(builder.Div(br)), func(root *html.Node) (*html.Node, int) { return root.FirstChild, 1 }},
	}
	for _, code := range []int{editor.KeyBackspace, editor.KeyDelete} {
		for _, c := range cases {
			root := model.DeepClone(c.root)
			e := setup(t, root, EmptyEditorWhenDeleting())
			n, offset := c.caret(root)
			e.caret(t, n, offset)

			d, err := e.KeyDown(editor.KeyEvent{Code: code})
			require.NoError(t, err)
			assert.True(t, d.Suppress)
			assert.Equal(t, "<p><br/></p>", render(root))
			assert.Equal(t, "<p><br/></p>", e.History().Current().HTML)
			assert.Equal(t, 1, e.events)

			r := e.Selection().RangeAt(0)
			require.NotNil(t, r)
			assert.Equal(t, root.FirstChild, r.StartContainer(), "the caret is in the paragraph")
		}
	}
}

func TestDeleteAllSelected(t *testing.T) {
	for _, code := range []int{editor.KeyBackspace, editor.KeyDelete} {
		root := doc(p("Hello"), blockquote(p("World")))
		e := setup(t, root, EmptyEditorWhenDeleting())
		hello := root.FirstChild
		e.Selection().SelectAllChildren(root)

		d, err := e.KeyDown(editor.KeyEvent{Code: code})
		require.NoError(t, err)
		assert.True(t, d.Suppress, "the native deletion does not run")
		assert.Equal(t, "<p><br/></p>", render(root))
		assert.Nil(t, hello.Parent, "the old content was replaced, not edited")
	}
}

func TestDeleteFullTextSelection(t *testing.T) {
	root := doc(p("Hello"))
	e := setup(t, root, EmptyEditorWhenDeleting())
	text := findText(root, "Hello")
	r, err := model.NewRange(text, 0)
	require.NoError(t, err)
	require.NoError(t, r.SetEnd(text, 5))
	e.Selection().AddRange(r)

	d, err := e.KeyDown(editor.KeyEvent{Code: editor.KeyBackspace})
	require.NoError(t, err)
	assert.False(t, d.Suppress, "the text alone is not the whole content")
	assert.Equal(t, "<p><br/></p>", render(root))
}

func TestDeleteAllowsDefault(t *testing.T) {
	root := doc(p("Hello"))
	e := setup(t, root, EmptyEditorWhenDeleting())

	// no selection
	d, err := e.KeyDown(editor.KeyEvent{Code: editor.KeyBackspace})
	require.NoError(t, err)
	assert.False(t, d.Suppress)

	e.caret(t, findText(root, "Hello"), 5)
	d, err = e.KeyDown(editor.KeyEvent{Code: editor.KeyBackspace})
	require.NoError(t, err)
	assert.False(t, d.Suppress)
	assert.Equal(t, "<p>Hell</p>", render(root))

	// other keys
	e.Selection().SelectAllChildren(root)
	d, err = e.KeyDown(editor.KeyEvent{Code: 13})
	require.NoError(t, err)
	assert.False(t, d.Suppress)
	assert.Equal(t, "<p>Hell</p>", render(root))
}

func TestNoPristineState(t *testing.T) {
	// Without the patch, backspace in the last empty paragraph removes it,
	// and a new line then creates generic containers.
	root := doc(p(br))
	e := setup(t, root)
	e.caret(t, root.FirstChild, 0)
	_, err := e.KeyDown(editor.KeyEvent{Code: editor.KeyBackspace})
	require.NoError(t, err)
	assert.Equal(t, "", render(root))
	require.NoError(t, e.ExecCommand(transform.InsertParagraph, nil))
	assert.Equal(t, "<div><br/></div><div><br/></div>", render(root))

	root = doc(p(br))
	e = setup(t, root, Core()...)
	e.caret(t, root.FirstChild, 0)
	_, err = e.KeyDown(editor.KeyEvent{Code: editor.KeyBackspace})
	require.NoError(t, err)
	assert.Equal(t, "<p><br/></p>", render(root))
	require.NoError(t, e.ExecCommand(transform.InsertParagraph, nil))
	assert.Equal(t, "<p><br/></p><p><br/></p>", render(root))
}
