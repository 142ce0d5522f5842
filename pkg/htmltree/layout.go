package htmltree

import (
	"strings"
	"unicode"

	"github.com/amonks/findpage/pkg/find"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Line is one line of the document's text as laid out for display.
type Line []Span

// Span is a run of text on a line. Mark is set if the text is inside a
// marker.
type Span struct {
	Text string
	Mark *Mark
}

func (l Line) String() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

var blocks = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Br: true, atom.Dd: true, atom.Div: true,
	atom.Dl: true, atom.Dt: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Header: true, atom.Hr: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Tr: true, atom.Ul: true,
}

type layout struct {
	doc   *Document
	skip  find.Exclusion
	lines []Line
	cur   Line
	pre   int

	// pendingSpace is set when collapsed whitespace should become a
	// single space before the next visible text on the line.
	pendingSpace bool
}

// Layout flattens the body into display lines. Block elements start new
// lines, whitespace is collapsed outside <pre>, and excluded subtrees are
// left out. Markers come out as their own spans so that callers can style
// them and find which line they're on.
func (d *Document) Layout(skip find.Exclusion) []Line {
	root := d.Body()
	if root == nil {
		return nil
	}
	l := &layout{doc: d, skip: skip}
	l.node(root, nil)
	l.breakLine()
	return l.lines
}

func (l *layout) node(n *html.Node, mark *Mark) {
	switch n.Type {
	case html.TextNode:
		l.text(n.Data, mark)
		return
	case html.ElementNode:
		if l.skip != nil && l.skip(element{n}) {
			return
		}
		if m, ok := l.doc.marks[n]; ok {
			mark = m
		}
	}

	isBlock := n.Type == html.ElementNode && blocks[n.DataAtom]
	if isBlock {
		l.breakLine()
	}
	if n.DataAtom == atom.Pre {
		l.pre++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		l.node(c, mark)
	}
	if n.DataAtom == atom.Pre {
		l.pre--
	}
	if isBlock {
		l.breakLine()
	}
}

func (l *layout) text(s string, mark *Mark) {
	if l.pre > 0 {
		for i, part := range strings.Split(s, "\n") {
			if i > 0 {
				l.newline()
			}
			l.emit(part, mark)
		}
		return
	}

	var b strings.Builder
	for _, r := range s {
		if unicode.IsSpace(r) {
			l.pendingSpace = len(l.cur) != 0 || b.Len() != 0
			continue
		}
		if l.pendingSpace {
			// A space carried over from an earlier node belongs
			// outside of this one.
			if b.Len() == 0 {
				l.emit(" ", nil)
			} else {
				b.WriteByte(' ')
			}
			l.pendingSpace = false
		}
		b.WriteRune(r)
	}
	l.emit(b.String(), mark)
}

func (l *layout) emit(s string, mark *Mark) {
	if s == "" {
		return
	}
	if n := len(l.cur); n > 0 && l.cur[n-1].Mark == mark {
		l.cur[n-1].Text += s
		return
	}
	l.cur = append(l.cur, Span{Text: s, Mark: mark})
}

// breakLine ends the current line unless it is empty.
func (l *layout) breakLine() {
	if len(l.cur) == 0 {
		l.pendingSpace = false
		return
	}
	l.newline()
}

func (l *layout) newline() {
	l.lines = append(l.lines, l.cur)
	l.cur = nil
	l.pendingSpace = false
}
