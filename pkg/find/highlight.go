package find

// Renderer wraps matches in markers, and removes them again.
//
// Between Apply and Clear the tree holds exactly one marker per match in
// the applied MatchSet. After Clear the tree's text is exactly what it was
// before Apply.
type Renderer struct {
	tree    Tree
	markers []Marker
}

func NewRenderer(t Tree) *Renderer {
	return &Renderer{tree: t}
}

// Markers returns the live markers, in document order.
func (r *Renderer) Markers() []Marker { return r.markers }

// Apply clears any existing markers, then marks every match in ms.
//
// Each segment is split once, with all of its matches, so earlier
// insertions can't shift the offsets of later ones. If a segment can't be
// split (its leaf has left the tree or changed) its matches are dropped
// from ms rather than failing the whole run.
func (r *Renderer) Apply(ms *MatchSet) []Marker {
	r.Clear()
	if r.tree == nil || ms.Len() == 0 {
		return nil
	}

	var kept []Match
	for i := 0; i < len(ms.Matches); {
		seg := ms.Matches[i].Segment
		j := i + 1
		for j < len(ms.Matches) && ms.Matches[j].Segment.Leaf == seg.Leaf {
			j++
		}
		group := ms.Matches[i:j]
		i = j

		frags, ok := fragments(seg.Text, group)
		if !ok {
			continue
		}
		markers, err := r.tree.Split(seg, frags)
		if err != nil {
			continue
		}
		if len(markers) != len(group) {
			r.unwind(markers)
			continue
		}
		kept = append(kept, group...)
		r.markers = append(r.markers, markers...)
	}

	ms.Matches = kept
	if ms.Current >= len(kept) {
		ms.Current = -1
	}
	return r.markers
}

// Clear replaces every marker with its plain text and merges the text back
// into its neighbors. It is a no-op when nothing is marked.
func (r *Renderer) Clear() {
	if len(r.markers) == 0 {
		return
	}
	r.unwind(r.markers)
	r.markers = nil
}

func (r *Renderer) unwind(markers []Marker) {
	leaves := make([]Leaf, 0, len(markers))
	for _, m := range markers {
		l, err := r.tree.Unwrap(m)
		if err != nil {
			continue
		}
		leaves = append(leaves, l)
	}
	for _, l := range leaves {
		r.tree.Merge(l)
	}
}

// fragments cuts text around the matches, which must be ordered and
// disjoint.
func fragments(text string, matches []Match) ([]Fragment, bool) {
	frags := make([]Fragment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m.Start < last || m.End <= m.Start || m.End > len(text) {
			return nil, false
		}
		if m.Start > last {
			frags = append(frags, Fragment{Text: text[last:m.Start]})
		}
		frags = append(frags, Fragment{Text: text[m.Start:m.End], Marked: true})
		last = m.End
	}
	if last < len(text) {
		frags = append(frags, Fragment{Text: text[last:]})
	}
	return frags, true
}
