package find

import (
	"iter"
	"strings"
)

// Segment is a run of searchable text and the leaf it came from. Text is
// the leaf's text at the time it was extracted.
type Segment struct {
	Leaf Leaf
	Text string
}

// Extract returns the searchable segments of t in document order. Leaves
// under an excluded element, and leaves that are empty or all whitespace,
// are left out.
//
// Nothing is cached: every range over the returned sequence walks the tree
// as it is at that moment.
func Extract(t Tree, skip Exclusion) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		if t == nil {
			return
		}
		t.Walk(skip, func(l Leaf) bool {
			text := l.Text()
			if strings.TrimSpace(text) == "" {
				return true
			}
			return yield(Segment{Leaf: l, Text: text})
		})
	}
}
