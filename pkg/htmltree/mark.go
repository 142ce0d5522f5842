package htmltree

import (
	"strings"

	"github.com/amonks/findpage/pkg/find"
	"golang.org/x/net/html"
)

// Mark implements find.Marker
var _ find.Marker = &Mark{}

// Mark is a marker span inserted by [Document.Split].
type Mark struct {
	node    *html.Node
	doc     *Document
	current bool
}

func (m *Mark) Node() *html.Node { return m.node }

// Text is the text inside the span.
func (m *Mark) Text() string {
	var b strings.Builder
	collectText(m.node, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func (m *Mark) Current() bool { return m.current }

func (m *Mark) SetCurrent(current bool) {
	m.current = current
	class := m.doc.hitClass
	if current {
		class += " " + m.doc.activeClass
	}
	setAttr(m.node, "class", class)
}
