// Find locates and highlights every occurrence of a query in the text of a
// document, and steps through the occurrences in document order.
//
// The document is anything that implements [Tree]. See package
// github.com/amonks/findpage/pkg/htmltree for an implementation over
// parsed HTML.
package find

import "errors"

// ErrDetached is returned by a [Tree] when asked to mutate a location that
// is no longer part of the tree, or whose text has changed since it was
// extracted.
var ErrDetached = errors.New("location detached from tree")

// Tree is the host document. Find only ever reads leaf text, splits a
// leaf into plain and marked fragments, and undoes that split; it never
// assumes it owns the rest of the tree.
type Tree interface {
	// Walk calls visit for each text leaf in document order, stopping
	// if visit returns false. Subtrees rooted at an element for which
	// skip returns true are not entered. skip may be nil.
	Walk(skip Exclusion, visit func(Leaf) bool)

	// Split replaces the segment's leaf with frags, in order. It
	// returns one Marker per marked fragment. Empty plain fragments
	// are not inserted.
	Split(seg Segment, frags []Fragment) ([]Marker, error)

	// Unwrap replaces a marker with a plain text leaf holding the
	// marker's text.
	Unwrap(m Marker) (Leaf, error)

	// Merge joins the run of adjacent text leaves containing l into a
	// single leaf, dropping empty ones. Merging a leaf that has
	// already been merged away is a no-op.
	Merge(l Leaf)
}

// Leaf is a run of plain text in a Tree. Leaves are compared with ==, so
// implementations should be pointers.
type Leaf interface {
	Text() string
}

// Element is a non-text location in a Tree, as seen by an [Exclusion].
type Element interface {
	Tag() string
	Attr(key string) (string, bool)
}

// Exclusion reports whether the subtree rooted at an element must never be
// searched or mutated.
type Exclusion func(Element) bool

// Marker wraps one matched span of text.
type Marker interface {
	// Text is the matched text, in the case it was found in.
	Text() string
	Current() bool
	SetCurrent(bool)
}

// Fragment is one piece of a split leaf.
type Fragment struct {
	Text   string
	Marked bool
}

// Revealer brings a marker into the user's view.
type Revealer interface {
	Reveal(m Marker)
}

// RevealFunc adapts a function to a [Revealer].
type RevealFunc func(Marker)

func (f RevealFunc) Reveal(m Marker) { f(m) }

// Any combines exclusions; an element is excluded if any of them excludes
// it.
func Any(exclusions ...Exclusion) Exclusion {
	return func(el Element) bool {
		for _, ex := range exclusions {
			if ex != nil && ex(el) {
				return true
			}
		}
		return false
	}
}
