// Htmltree implements [find.Tree] over a parsed HTML document.
//
// Markers are <span> elements carrying a "hit" class; the current marker
// also carries an "active" class. Only the <body> is searched.
package htmltree

import (
	"bytes"
	"io"
	"strings"

	"github.com/amonks/findpage/pkg/find"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	DefaultHitClass    = "pageSearchHit"
	DefaultActiveClass = "pageSearchActive"
)

// Document implements [find.Tree]
var _ find.Tree = &Document{}

type Document struct {
	root *html.Node

	hitClass    string
	activeClass string

	// marks holds every marker this document has inserted and not yet
	// unwrapped, so that walking the tree can recover the Mark for a
	// marker element.
	marks map[*html.Node]*Mark
}

func New(root *html.Node, mods ...func(*Document)) *Document {
	d := &Document{
		root:        root,
		hitClass:    DefaultHitClass,
		activeClass: DefaultActiveClass,
		marks:       map[*html.Node]*Mark{},
	}
	for _, mod := range mods {
		mod(d)
	}
	return d
}

func Parse(r io.Reader, mods ...func(*Document)) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return New(root, mods...), nil
}

func ParseString(s string, mods ...func(*Document)) (*Document, error) {
	return Parse(strings.NewReader(s), mods...)
}

// WithClasses sets the class names given to markers. Empty names keep the
// defaults.
func WithClasses(hit, active string) func(*Document) {
	return func(d *Document) {
		if hit != "" {
			d.hitClass = hit
		}
		if active != "" {
			d.activeClass = active
		}
	}
}

func (d *Document) Root() *html.Node {
	if d == nil {
		return nil
	}
	return d.root
}

// Body is the root of the searchable content: the <body> element if there
// is one, otherwise the document root.
func (d *Document) Body() *html.Node {
	if d == nil || d.root == nil {
		return nil
	}
	if body := findElement(d.root, atom.Body); body != nil {
		return body
	}
	return d.root
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

// Render writes the document, markers included, as HTML.
func (d *Document) Render(w io.Writer) error {
	if d == nil || d.root == nil {
		return nil
	}
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	var b bytes.Buffer
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

// Text concatenates every text leaf outside the excluded subtrees.
func (d *Document) Text(skip find.Exclusion) string {
	var b strings.Builder
	d.Walk(skip, func(l find.Leaf) bool {
		b.WriteString(l.Text())
		return true
	})
	return b.String()
}

// Mark returns the marker wrapping n, if n is a live marker element.
func (d *Document) Mark(n *html.Node) (*Mark, bool) {
	m, ok := d.marks[n]
	return m, ok
}

type element struct{ n *html.Node }

func (el element) Tag() string { return el.n.Data }

func (el element) Attr(key string) (string, bool) {
	return attr(el.n, key)
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
