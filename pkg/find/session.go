package find

import "fmt"

// Session is one independent find-on-page over one tree: the active query,
// its MatchSet, the markers in the tree, and the current match.
//
// A Session is not safe for concurrent use. Callers are expected to drive
// it from a single event loop.
type Session struct {
	tree     Tree
	skip     Exclusion
	reveal   Revealer
	patterns bool

	renderer *Renderer
	cursor   *Cursor
	set      *MatchSet
}

func NewSession(t Tree, mods ...func(*Session)) *Session {
	s := &Session{tree: t, renderer: NewRenderer(t)}
	for _, mod := range mods {
		mod(s)
	}
	return s
}

// WithExclusion keeps matching and marking out of excluded subtrees.
func WithExclusion(skip Exclusion) func(*Session) {
	return func(s *Session) { s.skip = skip }
}

// WithRevealer is called with each marker as it becomes current.
func WithRevealer(r Revealer) func(*Session) {
	return func(s *Session) { s.reveal = r }
}

// WithPatterns interprets queries as regular expressions.
func WithPatterns(s *Session) { s.patterns = true }

func (s *Session) Tree() Tree { return s.tree }

// Query is the active query; it is empty when no search is active.
func (s *Session) Query() Query {
	if s.set == nil {
		return Query{}
	}
	return s.set.Query
}

// MatchSet is the live MatchSet, or nil when no search is active.
func (s *Session) MatchSet() *MatchSet { return s.set }

func (s *Session) Markers() []Marker { return s.renderer.Markers() }

func (s *Session) Len() int { return s.set.Len() }

// Index is the current match, or -1.
func (s *Session) Index() int { return s.cursor.Index() }

// Status is the "current / total" counter, "0 / 0" when nothing is
// selected.
func (s *Session) Status() string {
	return fmt.Sprintf("%d / %d", s.Index()+1, s.Len())
}

func (s *Session) newQuery(text string) Query {
	if s.patterns {
		return NewPattern(text)
	}
	return NewQuery(text)
}

// Search marks every match for text and selects the first one.
//
// An empty query clears the search. Searching again for the query that is
// already active does nothing. Any other query tears down the previous
// search before the new one is built.
func (s *Session) Search(text string) {
	q := s.newQuery(text)
	if q.Empty() {
		s.Clear()
		return
	}
	if s.set != nil && s.set.Query.Equal(q) {
		return
	}
	s.run(q)
}

func (s *Session) run(q Query) {
	s.renderer.Clear()
	set := Locate(Extract(s.tree, s.skip), q)
	markers := s.renderer.Apply(set)
	s.set = set
	s.cursor = NewCursor(set, markers, s.reveal)
	s.cursor.Goto(0)
}

// Refresh rebuilds the active search from the tree's current text. Use it
// after the tree changes underneath the session.
func (s *Session) Refresh() {
	if s.set == nil {
		return
	}
	s.run(s.set.Query)
}

// SetPatterns switches between literal and pattern queries, re-running the
// active search in the new mode.
func (s *Session) SetPatterns(on bool) {
	if s.patterns == on {
		return
	}
	s.patterns = on
	if s.set != nil {
		s.run(s.newQuery(s.set.Query.Text()))
	}
}

func (s *Session) Patterns() bool { return s.patterns }

// Reset points the session at a new tree. Markers are removed from the old
// tree first, and the active query, if any, is searched for again in the
// new one.
func (s *Session) Reset(t Tree) {
	q := s.Query()
	s.Clear()
	s.tree = t
	s.renderer = NewRenderer(t)
	if !q.Empty() {
		s.run(q)
	}
}

// Clear removes every marker and forgets the active query. It is safe to
// call at any time.
func (s *Session) Clear() {
	s.renderer.Clear()
	s.set = nil
	s.cursor = nil
}

func (s *Session) Goto(i int) { s.cursor.Goto(i) }
func (s *Session) Next()      { s.cursor.Next() }
func (s *Session) Previous()  { s.cursor.Previous() }
