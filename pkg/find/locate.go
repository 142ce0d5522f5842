package find

import (
	"iter"
	"regexp"
	"strings"
)

// Query is a normalized search string. The zero Query is empty, meaning no
// search is active.
type Query struct {
	text    string
	pattern bool
}

// NewQuery returns a literal query: every character in s, including
// regexp metacharacters, matches itself.
func NewQuery(s string) Query {
	s = strings.TrimSpace(s)
	return Query{text: s}
}

// NewPattern returns a query that is interpreted as a regular expression.
// Patterns that don't compile match nothing.
func NewPattern(s string) Query {
	q := NewQuery(s)
	q.pattern = true
	return q
}

// Text is the trimmed query as the user typed it.
func (q Query) Text() string { return q.text }

func (q Query) IsPattern() bool { return q.pattern }
func (q Query) Empty() bool     { return q.text == "" }

// Equal reports whether two queries find the same matches. Literal
// queries compare with the same simple case folding the matcher uses.
// Patterns compare exactly, since folding would confuse escapes like \s
// and \S.
func (q Query) Equal(other Query) bool {
	if q.pattern != other.pattern {
		return false
	}
	if q.pattern {
		return q.text == other.text
	}
	return strings.EqualFold(q.text, other.text)
}

func (q Query) String() string { return q.text }

// compile returns nil if the query can't match anything.
func (q Query) compile() *regexp.Regexp {
	if q.Empty() {
		return nil
	}
	expr := q.text
	if !q.pattern {
		expr = regexp.QuoteMeta(expr)
	}
	re, err := regexp.Compile("(?i)" + expr)
	if err != nil {
		return nil
	}
	return re
}

// Match is one occurrence of a query within a segment. Start and End are
// byte offsets into Segment.Text, with Start < End.
type Match struct {
	Segment Segment
	Start   int
	End     int
}

// Text is the matched slice of the segment, in its original case.
func (m Match) Text() string { return m.Segment.Text[m.Start:m.End] }

// MatchSet is every match for a query, in document order, and the index of
// the current one. Current is -1 when there is no current match.
type MatchSet struct {
	Query   Query
	Matches []Match
	Current int
}

func (ms *MatchSet) Len() int {
	if ms == nil {
		return 0
	}
	return len(ms.Matches)
}

// Locate finds every case-insensitive occurrence of q in segs.
//
// Within a segment, matches are found left to right and never overlap:
// scanning resumes after the end of each match, so "aa" occurs twice in
// "aaaa". A match never spans two segments. Matches are ordered as their
// segments are, so the result is in document order.
//
// Locate never fails. A query that can't be compiled, and zero-width
// pattern matches, produce no matches.
func Locate(segs iter.Seq[Segment], q Query) *MatchSet {
	ms := &MatchSet{Query: q, Current: -1}
	re := q.compile()
	if re == nil || segs == nil {
		return ms
	}
	for seg := range segs {
		for _, loc := range re.FindAllStringIndex(seg.Text, -1) {
			if loc[0] == loc[1] {
				continue
			}
			ms.Matches = append(ms.Matches, Match{
				Segment: seg,
				Start:   loc[0],
				End:     loc[1],
			})
		}
	}
	return ms
}
