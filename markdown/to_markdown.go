package markdown

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/cozy/scribe-go/model"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// NodeSerializerFunc writes a block, or an inline leaf, to the state.
type NodeSerializerFunc func(state *SerializerState, node, parent *html.Node, index int)

// MarkSerializerSpec is the serializer info for an inline formatting
// element.
type MarkSerializerSpec struct {
	Open                     interface{} // string or MarkStringFunc
	Close                    interface{} // string or MarkStringFunc
	ExpelEnclosingWhitespace bool
	NoEscape                 bool
}

// MarkStringFunc computes the opening or closing string of a mark.
type MarkStringFunc func(state *SerializerState, mark *html.Node) string

// Serializer writes the content of an editable root as CommonMark. Node
// kinds are looked up in Schema.
type Serializer struct {
	Schema *model.Schema
	Nodes  map[string]NodeSerializerFunc
	Marks  map[string]MarkSerializerSpec
}

// NewSerializer returns a serializer writing the node kinds of nodes, keyed
// by schema type name, and wrapping the inline elements of marks in their
// Open and Close strings. Inline elements without a mark spec are
// transparent: only their content is written.
//
// A mark with NoEscape has its text written as is. ExpelEnclosingWhitespace
// moves leading and trailing spaces out of the mark, as CommonMark emphasis
// cannot start or end with whitespace.
func NewSerializer(schema *model.Schema, nodes map[string]NodeSerializerFunc, marks map[string]MarkSerializerSpec) *Serializer {
	return &Serializer{
		Schema: schema,
		Nodes:  nodes,
		Marks:  marks,
	}
}

// Serialize returns the children of root as markdown. The only option read
// is "tightLists".
func (s *Serializer) Serialize(root *html.Node, options ...map[string]interface{}) string {
	var opts map[string]interface{}
	if len(options) > 0 {
		opts = options[0]
	}
	state := NewSerializerState(s, opts)
	state.RenderContent(root)
	return state.Out
}

var backticksRegexp = regexp.MustCompile("`{3,}")

// DefaultNodes are the node serializers of NewDefaultSerializer, keyed by
// the node names of the basic and list schemas.
var DefaultNodes = map[string]NodeSerializerFunc{
	"blockquote": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.WrapBlock("> ", nil, node, func() { state.RenderContent(node) })
	},
	"code_block": func(state *SerializerState, node, _parent *html.Node, _index int) {
		fence := "```"
		content := strings.TrimSuffix(model.TextContent(node), "\n")
		matches := backticksRegexp.FindAllString(content, -1)
		for _, backticks := range matches {
			if len(backticks) >= len(fence) {
				fence = backticks + "`"
			}
		}

		params := ""
		if code := node.FirstChild; model.IsElement(code, atom.Code) {
			class, _ := model.Attr(code, "class")
			params = strings.TrimPrefix(class, "language-")
		}
		state.Write(fence + params + "\n")
		state.Text(content, false)
		state.EnsureNewLine()
		state.Write(fence)
		state.CloseBlock(node)
	},
	"heading1": heading(1),
	"heading2": heading(2),
	"heading3": heading(3),
	"heading4": heading(4),
	"heading5": heading(5),
	"heading6": heading(6),
	"horizontal_rule": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.Write("---")
		state.CloseBlock(node)
	},
	"bullet_list": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.RenderList(node, "  ", func(_ int) string { return "* " })
	},
	"ordered_list": func(state *SerializerState, node, _parent *html.Node, _index int) {
		start := 1
		if v, ok := model.Attr(node, "start"); ok {
			if n, err := strconv.Atoi(v); err == nil {
				start = n
			}
		}
		maxW := len(fmt.Sprintf("%d", start+model.ChildCount(node)-1))
		space := strings.Repeat(" ", maxW+2)
		state.RenderList(node, space, func(i int) string {
			nStr := fmt.Sprintf("%d", start+i)
			return strings.Repeat(" ", maxW-len(nStr)) + nStr + ". "
		})
	},
	"list_item": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.RenderContent(node)
	},
	"paragraph": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.RenderInline(node)
		state.CloseBlock(node)
	},
	"container": func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.RenderContent(node)
	},
	"image": func(state *SerializerState, node, _parent *html.Node, _index int) {
		alt, _ := model.Attr(node, "alt")
		src, _ := model.Attr(node, "src")
		src = strings.ReplaceAll(src, "(", "\\(")
		src = strings.ReplaceAll(src, ")", "\\)")
		title := ""
		if t, ok := model.Attr(node, "title"); ok {
			title = ` "` + strings.ReplaceAll(t, `"`, `\"`) + `"`
		}
		state.Write(fmt.Sprintf("![%s](%s)%s", state.Esc(alt), src, title))
	},
	"hard_break": func(state *SerializerState, node, parent *html.Node, index int) {
		for c := node.NextSibling; c != nil; c = c.NextSibling {
			if !model.IsElement(c, atom.Br) {
				state.Write("\\\n")
				return
			}
		}
	},
}

func heading(level int) NodeSerializerFunc {
	return func(state *SerializerState, node, _parent *html.Node, _index int) {
		state.Write(strings.Repeat("#", level) + " ")
		state.RenderInline(node)
		state.CloseBlock(node)
	}
}

// DefaultMarks are the mark serializers of NewDefaultSerializer.
var DefaultMarks = map[string]MarkSerializerSpec{
	"em":     {Open: "*", Close: "*", ExpelEnclosingWhitespace: true},
	"italic": {Open: "*", Close: "*", ExpelEnclosingWhitespace: true},
	"strong": {Open: "**", Close: "**", ExpelEnclosingWhitespace: true},
	"bold":   {Open: "**", Close: "**", ExpelEnclosingWhitespace: true},
	"link": {
		Open: MarkStringFunc(func(state *SerializerState, mark *html.Node) string {
			state.InAutoLink = isPlainURL(mark)
			if state.InAutoLink {
				return "<"
			}
			return "["
		}),
		Close: MarkStringFunc(func(state *SerializerState, mark *html.Node) string {
			if state.InAutoLink {
				state.InAutoLink = false
				return ">"
			}
			href, _ := model.Attr(mark, "href")
			href = strings.ReplaceAll(href, "(", "\\(")
			href = strings.ReplaceAll(href, ")", "\\)")
			href = strings.ReplaceAll(href, `"`, `\"`)
			title, _ := model.Attr(mark, "title")
			if title != "" {
				title = ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
			}
			return fmt.Sprintf("](%s%s)", href, title)
		}),
	},
	"code": {
		Open: MarkStringFunc(func(_state *SerializerState, mark *html.Node) string {
			return backticksFor(model.TextContent(mark), -1)
		}),
		Close: MarkStringFunc(func(_state *SerializerState, mark *html.Node) string {
			return backticksFor(model.TextContent(mark), 1)
		}),
		NoEscape: true,
	},
}

// NewDefaultSerializer returns a serializer with DefaultNodes and
// DefaultMarks for the given schema.
func NewDefaultSerializer(schema *model.Schema) *Serializer {
	return NewSerializer(schema, DefaultNodes, DefaultMarks)
}

func backticksFor(text string, side int) string {
	length := 0
	ticks := strings.FieldsFunc(text, func(r rune) bool { return r != '`' })
	for _, t := range ticks {
		if l := len(t); l > length {
			length = l
		}
	}
	result := "`"
	if length > 0 && side > 0 {
		result = " `"
	}
	for i := 0; i < length; i++ {
		result += "`"
	}
	if length > 0 && side < 0 {
		result += " "
	}
	return result
}

func isPlainURL(link *html.Node) bool {
	if _, ok := model.Attr(link, "title"); ok {
		return false
	}
	href, _ := model.Attr(link, "href")
	if !strings.Contains(href, ":") {
		return false
	}
	content := link.FirstChild
	return content != nil && content == link.LastChild && model.IsText(content) && content.Data == href
}

// SerializerState is the output being built by one Serialize call, along
// with the block and list context the node functions write into.
type SerializerState struct {
	*Serializer
	Delim        string
	Out          string
	Closed       *html.Node
	InAutoLink   bool
	AtBlockStart bool
	InTightList  bool
	tightLists   bool
}

// NewSerializerState returns an empty state. A true "tightLists" option
// writes list items without blank lines between them.
func NewSerializerState(s *Serializer, options map[string]interface{}) *SerializerState {
	tight := false
	if t, ok := options["tightLists"].(bool); ok {
		tight = t
	}
	return &SerializerState{
		Serializer: s,
		tightLists: tight,
	}
}

func (s *SerializerState) typeName(n *html.Node) string {
	if nt := s.Schema.NodeType(n); nt != nil {
		return nt.Name
	}
	return ""
}

func (s *SerializerState) flushClose(size ...int) {
	if s.Closed == nil {
		return
	}
	s.EnsureNewLine()
	siz := 2
	if len(size) > 0 {
		siz = size[0]
	}
	if siz > 1 {
		delimMin := strings.TrimRightFunc(s.Delim, unicode.IsSpace)
		for i := 1; i < siz; i++ {
			s.Out += delimMin + "\n"
		}
	}
	s.Closed = nil
}

// WrapBlock runs f with delim prepended to every line it writes, or
// firstDelim for the first one when given, then closes node.
func (s *SerializerState) WrapBlock(delim string, firstDelim *string, node *html.Node, f func()) {
	old := s.Delim
	d := delim
	if firstDelim != nil {
		d = *firstDelim
	}
	s.Write(d)
	s.Delim += delim
	f()
	s.Delim = old
	s.CloseBlock(node)
}

func (s *SerializerState) atBlank() bool {
	if len(s.Out) == 0 {
		return true
	}
	return s.Out[len(s.Out)-1] == '\n'
}

// EnsureNewLine starts a new line unless the output already ends one.
func (s *SerializerState) EnsureNewLine() {
	if !s.atBlank() {
		s.Out += "\n"
	}
}

// Write flushes a pending block close and the line delimiter, then appends
// content, unescaped.
func (s *SerializerState) Write(content ...string) {
	s.flushClose()
	if s.Delim != "" && s.atBlank() {
		s.Out += s.Delim
	}
	if len(content) > 0 {
		s.Out += content[0]
	}
}

// CloseBlock marks node as ended; the separation is written lazily.
func (s *SerializerState) CloseBlock(node *html.Node) {
	s.Closed = node
}

var textRegexp1 = regexp.MustCompile(`(^|[^\\])\!$`)

// Text appends text line by line, escaped unless escape is false.
func (s *SerializerState) Text(text string, escape ...bool) {
	lines := strings.Split(text, "\n")
	esc := true
	if len(escape) > 0 {
		esc = escape[0]
	}
	for i, line := range lines {
		s.Write()
		// a "!" right before "[" would turn a link into an image
		if !esc && strings.HasPrefix(line, "[") && textRegexp1.MatchString(s.Out) {
			s.Out = s.Out[:len(s.Out)-1] + "\\!"
		}
		if esc {
			s.Out += s.Esc(line, s.AtBlockStart)
		} else {
			s.Out += line
		}
		if i != len(lines)-1 {
			s.Out += "\n"
		}
	}
}

// Render writes node with the function registered for its kind, if any.
func (s *SerializerState) Render(node, parent *html.Node, index int) {
	if fn, ok := s.Nodes[s.typeName(node)]; ok {
		fn(s, node, parent, index)
	}
}

// RenderContent renders the contents of `parent` as block nodes. Runs of
// inline content found among the blocks are written as paragraphs.
func (s *SerializerState) RenderContent(parent *html.Node) {
	i := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if s.Schema.IsBlock(c) {
			s.Render(c, parent, i)
			i++
			continue
		}
		first := c
		for c.NextSibling != nil && !s.Schema.IsBlock(c.NextSibling) {
			c = c.NextSibling
			i++
		}
		s.renderInlineRun(first, c.NextSibling, parent)
		s.CloseBlock(first)
		i++
	}
}

// RenderInline writes the children of parent as one inline run.
func (s *SerializerState) RenderInline(parent *html.Node) {
	s.renderInlineRun(parent.FirstChild, nil, parent)
}

func (s *SerializerState) renderInlineRun(from, to, parent *html.Node) {
	s.AtBlockStart = true
	i := 0
	for c := from; c != to; c = c.NextSibling {
		s.renderInlineNode(c, parent, i)
		i++
	}
	s.AtBlockStart = false
}

func (s *SerializerState) renderInlineNode(node, parent *html.Node, index int) {
	if model.IsText(node) {
		s.Text(node.Data, !s.InAutoLink)
		return
	}
	if node.Type != html.ElementNode {
		return
	}
	name := s.typeName(node)
	if _, ok := s.Nodes[name]; ok {
		s.Render(node, parent, index)
		return
	}
	info, ok := s.Marks[name]
	if !ok {
		s.renderMarkContent(node)
		return
	}

	// Move whitespace out of the mark.
	var leading, trailing string
	if info.ExpelEnclosingWhitespace {
		node = model.DeepClone(node)
		if first := firstText(node); first != nil {
			trimmed := strings.TrimLeftFunc(first.Data, unicode.IsSpace)
			leading = first.Data[:len(first.Data)-len(trimmed)]
			first.Data = trimmed
		}
		if last := lastText(node); last != nil {
			trimmed := strings.TrimRightFunc(last.Data, unicode.IsSpace)
			trailing = last.Data[len(trimmed):]
			last.Data = trimmed
		}
	}
	if leading != "" {
		s.Text(leading)
	}
	if model.TextContent(node) != "" || firstVoid(node) {
		s.Text(s.MarkString(node, true), false)
		if info.NoEscape {
			s.Text(model.TextContent(node), false)
		} else {
			s.renderMarkContent(node)
		}
		s.Text(s.MarkString(node, false), false)
	}
	if trailing != "" {
		s.Text(trailing)
	}
}

func (s *SerializerState) renderMarkContent(mark *html.Node) {
	i := 0
	for c := mark.FirstChild; c != nil; c = c.NextSibling {
		s.renderInlineNode(c, mark, i)
		i++
	}
}

func firstText(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.FirstChild {
		if model.IsText(c) {
			return c
		}
	}
	return nil
}

func lastText(n *html.Node) *html.Node {
	for c := n.LastChild; c != nil; c = c.LastChild {
		if model.IsText(c) {
			return c
		}
	}
	return nil
}

func firstVoid(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if model.IsElement(c, atom.Img, atom.Br) {
			return true
		}
	}
	return false
}

// RenderList writes the items of a list element. Continuation lines of an
// item are indented with delim; firstDelim gives the marker of item i.
func (s *SerializerState) RenderList(node *html.Node, delim string, firstDelim func(i int) string) {
	if s.Closed != nil && s.typeName(s.Closed) == s.typeName(node) {
		s.flushClose(3)
	} else if s.InTightList {
		s.flushClose(1)
	}

	isTight := s.tightLists
	prevTight := s.InTightList
	s.InTightList = isTight
	i := 0
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode {
			continue
		}
		if i > 0 && isTight {
			s.flushClose(1)
		}
		first := firstDelim(i)
		index := i
		s.WrapBlock(delim, &first, node, func() { s.Render(child, node, index) })
		i++
	}
	s.InTightList = prevTight
}

var (
	escRegexp1 = regexp.MustCompile("([`*\\\\~\\[\\]])")
	escRegexp2 = regexp.MustCompile(`(\b_)|(_\b)`)
	escRegexp3 = regexp.MustCompile(`^([#\-*+>])`)
	escRegexp4 = regexp.MustCompile(`(\s*\d+)\.`)
)

// Esc backslash-escapes the markdown syntax characters of str, and those
// only special at the start of a line when startOfLine is true.
func (s *SerializerState) Esc(str string, startOfLine ...bool) string {
	start := false
	if len(startOfLine) > 0 {
		start = startOfLine[0]
	}
	str = escRegexp1.ReplaceAllString(str, "\\$1")
	str = escRegexp2.ReplaceAllString(str, "\\_")
	if start {
		str = escRegexp3.ReplaceAllString(str, "\\$1")
		str = escRegexp4.ReplaceAllString(str, "$1\\.")
	}
	return str
}

// MarkString returns the opening or closing string of mark.
func (s *SerializerState) MarkString(mark *html.Node, open bool) string {
	info := s.Marks[s.typeName(mark)]
	value := info.Open
	if !open {
		value = info.Close
	}
	switch value := value.(type) {
	case string:
		return value
	case MarkStringFunc:
		return value(s, mark)
	}
	return ""
}
