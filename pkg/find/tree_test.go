package find_test

import (
	"strings"

	"github.com/amonks/findpage/pkg/find"
)

// fakeTree is a list of paragraphs, each a run of text leaves and markers.
// It renders markers as [text], and the current one as [*text*].
type fakeTree struct {
	paras  []*fakePara
	splits int
}

type fakePara struct {
	tag   string
	nodes []any
}

type fakeText struct{ text string }

func (t *fakeText) Text() string { return t.text }

type fakeMark struct {
	text    string
	current bool
}

func (m *fakeMark) Text() string      { return m.text }
func (m *fakeMark) Current() bool     { return m.current }
func (m *fakeMark) SetCurrent(c bool) { m.current = c }

type fakeElement struct{ tag string }

func (el fakeElement) Tag() string             { return el.tag }
func (fakeElement) Attr(string) (string, bool) { return "", false }

var _ find.Tree = &fakeTree{}

// newFakeTree makes one paragraph per argument. A paragraph written as
// "tag|text" gets that tag; otherwise it is a "p".
func newFakeTree(paras ...string) *fakeTree {
	t := &fakeTree{}
	for _, p := range paras {
		tag, text, ok := strings.Cut(p, "|")
		if !ok {
			tag, text = "p", p
		}
		t.paras = append(t.paras, &fakePara{tag: tag, nodes: []any{&fakeText{text}}})
	}
	return t
}

func (t *fakeTree) Walk(skip find.Exclusion, visit func(find.Leaf) bool) {
	for _, p := range t.paras {
		if skip != nil && skip(fakeElement{p.tag}) {
			continue
		}
		for _, n := range p.nodes {
			if l, ok := n.(*fakeText); ok && !visit(l) {
				return
			}
		}
	}
}

func (t *fakeTree) locate(x any) (*fakePara, int, bool) {
	for _, p := range t.paras {
		for i, n := range p.nodes {
			if n == x {
				return p, i, true
			}
		}
	}
	return nil, 0, false
}

func (t *fakeTree) Split(seg find.Segment, frags []find.Fragment) ([]find.Marker, error) {
	leaf, _ := seg.Leaf.(*fakeText)
	p, i, ok := t.locate(leaf)
	if !ok || leaf.text != seg.Text {
		return nil, find.ErrDetached
	}
	var joined strings.Builder
	for _, f := range frags {
		joined.WriteString(f.Text)
	}
	if joined.String() != leaf.text {
		return nil, find.ErrDetached
	}
	t.splits++

	var (
		nodes   []any
		markers []find.Marker
	)
	for _, f := range frags {
		switch {
		case f.Marked:
			m := &fakeMark{text: f.Text}
			nodes = append(nodes, m)
			markers = append(markers, m)
		case f.Text != "":
			nodes = append(nodes, &fakeText{f.Text})
		}
	}
	p.nodes = append(p.nodes[:i], append(nodes, p.nodes[i+1:]...)...)
	return markers, nil
}

func (t *fakeTree) Unwrap(m find.Marker) (find.Leaf, error) {
	p, i, ok := t.locate(m)
	if !ok {
		return nil, find.ErrDetached
	}
	l := &fakeText{m.Text()}
	p.nodes[i] = l
	return l, nil
}

func (t *fakeTree) Merge(l find.Leaf) {
	p, i, ok := t.locate(l)
	if !ok {
		return
	}
	isText := func(j int) bool {
		_, ok := p.nodes[j].(*fakeText)
		return ok
	}
	start, end := i, i
	for start > 0 && isText(start-1) {
		start--
	}
	for end+1 < len(p.nodes) && isText(end+1) {
		end++
	}
	var b strings.Builder
	for _, n := range p.nodes[start : end+1] {
		b.WriteString(n.(*fakeText).text)
	}
	var merged []any
	if b.Len() != 0 {
		first := p.nodes[start].(*fakeText)
		first.text = b.String()
		merged = []any{first}
	}
	p.nodes = append(p.nodes[:start], append(merged, p.nodes[end+1:]...)...)
}

func (t *fakeTree) String() string {
	lines := make([]string, len(t.paras))
	for i, p := range t.paras {
		var b strings.Builder
		for _, n := range p.nodes {
			switch n := n.(type) {
			case *fakeText:
				b.WriteString(n.text)
			case *fakeMark:
				if n.current {
					b.WriteString("[*" + n.text + "*]")
				} else {
					b.WriteString("[" + n.text + "]")
				}
			}
		}
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// leaves counts the nodes in every paragraph.
func (t *fakeTree) leaves() int {
	n := 0
	for _, p := range t.paras {
		n += len(p.nodes)
	}
	return n
}
