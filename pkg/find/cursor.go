package find

// Cursor selects the current match of a MatchSet.
type Cursor struct {
	set     *MatchSet
	markers []Marker
	reveal  Revealer
}

// NewCursor returns a cursor over set, whose matches are wrapped by
// markers (one per match, in the same order). reveal may be nil.
func NewCursor(set *MatchSet, markers []Marker, reveal Revealer) *Cursor {
	return &Cursor{set: set, markers: markers, reveal: reveal}
}

// Index is the current match, or -1.
func (c *Cursor) Index() int {
	if c == nil || c.set == nil {
		return -1
	}
	return c.set.Current
}

// Goto makes the ith match current and reveals it. Out-of-range indices
// wrap: -1 is the last match and Len() is the first. Goto does nothing if
// there are no matches.
func (c *Cursor) Goto(i int) {
	if c == nil {
		return
	}
	n := c.set.Len()
	if n == 0 || len(c.markers) != n {
		return
	}
	i = modulo(i, n)

	if prev := c.set.Current; prev >= 0 && prev < n {
		c.markers[prev].SetCurrent(false)
	}
	c.markers[i].SetCurrent(true)
	c.set.Current = i

	if c.reveal != nil {
		c.reveal.Reveal(c.markers[i])
	}
}

func (c *Cursor) Next()     { c.Goto(c.Index() + 1) }
func (c *Cursor) Previous() { c.Goto(c.Index() - 1) }

func modulo(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}
