package htmltree

import (
	"strings"

	"github.com/amonks/findpage/pkg/find"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// textLeaf is a text node seen as a [find.Leaf]. Converting a node pointer
// gives the same leaf every time, so leaves from separate walks compare
// equal.
type textLeaf html.Node

func (t *textLeaf) Text() string { return t.Data }

func (t *textLeaf) node() *html.Node { return (*html.Node)(t) }

func leafNode(l find.Leaf) *html.Node {
	t, ok := l.(*textLeaf)
	if !ok || t == nil {
		return nil
	}
	return t.node()
}

// Walk visits the text nodes under the body in document order.
func (d *Document) Walk(skip find.Exclusion, visit func(find.Leaf) bool) {
	root := d.Body()
	if root == nil {
		return
	}
	walk(root, skip, visit)
}

func walk(n *html.Node, skip find.Exclusion, visit func(find.Leaf) bool) bool {
	switch n.Type {
	case html.TextNode:
		return visit((*textLeaf)(n))
	case html.ElementNode:
		if skip != nil && skip(element{n}) {
			return true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, skip, visit) {
			return false
		}
	}
	return true
}

// Split replaces the segment's text node with text nodes and marker spans.
func (d *Document) Split(seg find.Segment, frags []find.Fragment) ([]find.Marker, error) {
	n := leafNode(seg.Leaf)
	if n == nil || n.Parent == nil || n.Type != html.TextNode || n.Data != seg.Text {
		return nil, find.ErrDetached
	}

	var joined strings.Builder
	for _, f := range frags {
		joined.WriteString(f.Text)
	}
	if joined.String() != n.Data {
		return nil, find.ErrDetached
	}

	parent := n.Parent
	var marks []find.Marker
	for _, f := range frags {
		if !f.Marked {
			if f.Text != "" {
				parent.InsertBefore(&html.Node{Type: html.TextNode, Data: f.Text}, n)
			}
			continue
		}
		el := &html.Node{
			Type:     html.ElementNode,
			Data:     atom.Span.String(),
			DataAtom: atom.Span,
			Attr:     []html.Attribute{{Key: "class", Val: d.hitClass}},
		}
		el.AppendChild(&html.Node{Type: html.TextNode, Data: f.Text})
		parent.InsertBefore(el, n)

		m := &Mark{node: el, doc: d}
		d.marks[el] = m
		marks = append(marks, m)
	}
	parent.RemoveChild(n)
	return marks, nil
}

// Unwrap replaces a marker span with a text node holding its text.
func (d *Document) Unwrap(m find.Marker) (find.Leaf, error) {
	mk, ok := m.(*Mark)
	if !ok || mk == nil || mk.doc != d {
		return nil, find.ErrDetached
	}
	el := mk.node
	delete(d.marks, el)
	if el.Parent == nil {
		return nil, find.ErrDetached
	}

	t := &html.Node{Type: html.TextNode, Data: mk.Text()}
	el.Parent.InsertBefore(t, el)
	el.Parent.RemoveChild(el)
	return (*textLeaf)(t), nil
}

// Merge joins l with the text nodes next to it, like the DOM's
// Node.normalize restricted to one run.
func (d *Document) Merge(l find.Leaf) {
	n := leafNode(l)
	if n == nil || n.Parent == nil || n.Type != html.TextNode {
		return
	}
	parent := n.Parent

	first := n
	for first.PrevSibling != nil && first.PrevSibling.Type == html.TextNode {
		first = first.PrevSibling
	}

	var b strings.Builder
	for c := first; c != nil && c.Type == html.TextNode; {
		next := c.NextSibling
		b.WriteString(c.Data)
		if c != first {
			parent.RemoveChild(c)
		}
		c = next
	}

	first.Data = b.String()
	if first.Data == "" {
		parent.RemoveChild(first)
	}
}
