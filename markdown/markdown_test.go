package markdown

import (
	"testing"

	"github.com/cozy/scribe-go/test/builder"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

var (
	doc        = builder.Doc
	blockquote = builder.Blockquote
	p          = builder.P
	h1         = builder.H1
	h2         = builder.H2
	li         = builder.Li
	ol         = builder.Ol
	ul         = builder.Ul
	pre        = builder.Pre
	a          = builder.A
	br         = builder.Br
	em         = builder.Em
	strong     = builder.Strong
	code       = builder.Code
	img        = builder.Img

	serializer = NewDefaultSerializer(builder.Schema)
)

func TestMarkdown(t *testing.T) {
	parse := func(text string, root *html.Node) {
		actual, err := ToHTML(text)
		require.NoError(t, err)
		expected := builder.MustHTML(root)
		if diff := cmp.Diff(expected, actual); diff != "" {
			t.Errorf("ToHTML(%q) mismatch (-want +got):\n%s", text, diff)
		}
	}

	serialize := func(root *html.Node, text string) {
		assert.Equal(t, text, serializer.Serialize(root))
	}

	same := func(text string, root *html.Node) {
		parse(text, root)
		serialize(root, text)
	}

	// parses a paragraph
	same("hello!",
		doc(p("hello!")))

	// parses headings
	same("# one\n\n## two\n\nthree",
		doc(h1("one"), h2("two"), p("three")))

	// parses a blockquote
	same("> once\n\n> > twice",
		doc(blockquote(p("once")), blockquote(blockquote(p("twice")))))

	// parses a bullet list
	same("* foo\n\n  * bar\n\n  * baz\n\n* quux",
		doc(ul(li(p("foo"), ul(li(p("bar")), li(p("baz")))), li(p("quux")))))

	// parses an ordered list
	same("1. Hello\n\n2. Goodbye\n\n3. Nest\n\n   1. Hey\n\n   2. Aye",
		doc(ol(li(p("Hello")), li(p("Goodbye")), li(p("Nest"), ol(li(p("Hey")), li(p("Aye")))))))

	// preserves ordered list start number
	same("3. Foo\n\n4. Bar",
		doc(ol(builder.Attrs{"start": "3"}, li(p("Foo")), li(p("Bar")))))

	// parses a code block
	same("Some code:\n\n```\nHere it is\n```\n\nPara",
		doc(p("Some code:"), pre(code("Here it is\n")), p("Para")))

	// parses inline marks
	same("Hello. Some *em* text, some **strong** text, and some `code`",
		doc(p("Hello. Some ", em("em"), " text, some ", strong("strong"), " text, and some ", code("code"))))

	// parses links
	same("My [link](foo) goes to foo",
		doc(p("My ", a(builder.Attrs{"href": "foo"}, "link"), " goes to foo")))

	// parses an autolink
	same("Visit <https://cozy.io>",
		doc(p("Visit ", a(builder.Attrs{"href": "https://cozy.io"}, "https://cozy.io"))))
}

func TestSerializeOnly(t *testing.T) {
	// expels enclosing whitespace from inside emphasis
	assert.Equal(t, "a *b* c", serializer.Serialize(doc(p("a", em(" b "), "c"))))

	// writes hard breaks
	assert.Equal(t, "a\\\nb", serializer.Serialize(doc(p("a", br, "b"))))

	// drops trailing hard breaks
	assert.Equal(t, "a", serializer.Serialize(doc(p("a", br))))

	// writes images
	assert.Equal(t, "![x](img.png)", serializer.Serialize(doc(p(img(builder.Attrs{"src": "img.png", "alt": "x"})))))

	// escapes special characters
	assert.Equal(t, "\\*not em\\*", serializer.Serialize(doc(p("*not em*"))))

	// loose inline content in the root becomes a paragraph
	assert.Equal(t, "one\n\ntwo", serializer.Serialize(doc("one", p("two"))))

	// tight lists
	assert.Equal(t, "* a\n* b",
		serializer.Serialize(doc(ul(li(p("a")), li(p("b")))), map[string]interface{}{"tightLists": true}))

	// empty paragraph
	assert.Equal(t, "", serializer.Serialize(doc(p(br))))
}

func TestToHTMLDropsBlockWhitespace(t *testing.T) {
	markup, err := ToHTML("> a\n> \n> b\n")
	require.NoError(t, err)
	assert.Equal(t, "<blockquote><p>a</p><p>b</p></blockquote>", markup)

	markup, err = ToHTML("")
	require.NoError(t, err)
	assert.Equal(t, "", markup)
}
