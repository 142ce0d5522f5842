package htmltree_test

import (
	"strings"
	"testing"

	"github.com/amonks/findpage/pkg/find"
	"github.com/amonks/findpage/pkg/htmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const (
	hit    = `<span class="pageSearchHit">`
	active = `<span class="pageSearchHit pageSearchActive">`
)

func parse(t *testing.T, src string, mods ...func(*htmltree.Document)) *htmltree.Document {
	t.Helper()
	doc, err := htmltree.ParseString(src, mods...)
	require.NoError(t, err)
	return doc
}

// body renders the children of the body element.
func body(t *testing.T, doc *htmltree.Document) string {
	t.Helper()
	var b strings.Builder
	for c := doc.Body().FirstChild; c != nil; c = c.NextSibling {
		require.NoError(t, html.Render(&b, c))
	}
	return b.String()
}

func TestSearch(t *testing.T) {
	for _, tc := range []struct {
		title  string
		src    string
		query  string
		moves  int
		expect string
		status string
	}{
		{"two paragraphs", "<p>The cat sat.</p><p>A cat ran.</p>", "cat", 0,
			"<p>The " + active + "cat</span> sat.</p><p>A " + hit + "cat</span> ran.</p>", "1 / 2"},
		{"next", "<p>The cat sat.</p><p>A cat ran.</p>", "cat", 1,
			"<p>The " + hit + "cat</span> sat.</p><p>A " + active + "cat</span> ran.</p>", "2 / 2"},
		{"case preserved", "<p>The CaT sat.</p>", "cat", 0,
			"<p>The " + active + "CaT</span> sat.</p>", "1 / 1"},
		{"inside inline element", "<p>The <b>cat</b> sat.</p>", "cat", 0,
			"<p>The <b>" + active + "cat</span></b> sat.</p>", "1 / 1"},
		{"never across elements", "<p>ca<b>t</b></p>", "cat", 0,
			"<p>ca<b>t</b></p>", "0 / 0"},
		{"entities", "<p>Tom &amp; Jerry</p>", "&", 0,
			"<p>Tom " + active + "&amp;</span> Jerry</p>", "1 / 1"},
		{"whole leaf", "<p>cat</p>", "cat", 0,
			"<p>" + active + "cat</span></p>", "1 / 1"},
		{"script is skipped", "<p>cat</p><script>var cat = 1</script>", "cat", 0,
			"<p>" + active + "cat</span></p><script>var cat = 1</script>", "1 / 1"},
		{"search box is skipped", `<div id="pageSearchBox">cat</div><p>cat</p>`, "cat", 0,
			`<div id="pageSearchBox">cat</div><p>` + active + "cat</span></p>", "1 / 1"},
		{"form controls are skipped", "<textarea>cat</textarea><button>cat</button>", "cat", 0,
			"<textarea>cat</textarea><button>cat</button>", "0 / 0"},
	} {
		t.Run(tc.title, func(t *testing.T) {
			doc := parse(t, tc.src)
			s := find.NewSession(doc, find.WithExclusion(htmltree.MustExclude(htmltree.DefaultExclude...)))
			s.Search(tc.query)
			for range tc.moves {
				s.Next()
			}
			assert.Equal(t, tc.expect, body(t, doc))
			assert.Equal(t, tc.status, s.Status())
		})
	}
}

func TestClearRestoresDocument(t *testing.T) {
	for _, src := range []string{
		"<p>The cat sat.</p><p>A cat ran.</p>",
		"<p>The <b>cat</b> sat. Cats!</p>",
		"<ul><li>cat</li><li>dog</li><li>catcat</li></ul>",
		"<p>Tom &amp; Jerry &lt;3 cats</p>",
		"<pre>  cat\n\tcat  </pre>",
		"<p>no match</p>",
	} {
		t.Run(src, func(t *testing.T) {
			doc := parse(t, src)
			before := doc.String()
			textNodes := countText(doc.Root())

			s := find.NewSession(doc)
			s.Search("cat")
			s.Next()
			s.Clear()

			assert.Empty(t, htmltree.Diff(before, doc.String()))
			assert.Equal(t, textNodes, countText(doc.Root()), "text nodes should be merged back together")
		})
	}
}

func countText(n *html.Node) int {
	count := 0
	if n.Type == html.TextNode {
		count++
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count += countText(c)
	}
	return count
}

func TestWithClasses(t *testing.T) {
	doc := parse(t, "<p>a cat</p>", htmltree.WithClasses("hl", ""))
	s := find.NewSession(doc)
	s.Search("cat")
	assert.Equal(t, `<p>a <span class="hl pageSearchActive">cat</span></p>`, body(t, doc))
}

func TestMarkLookup(t *testing.T) {
	doc := parse(t, "<p>a cat</p>")
	s := find.NewSession(doc)
	s.Search("cat")
	require.Len(t, s.Markers(), 1)

	mk := s.Markers()[0].(*htmltree.Mark)
	got, ok := doc.Mark(mk.Node())
	assert.True(t, ok)
	assert.Same(t, mk, got)
	assert.Equal(t, "cat", mk.Text())
	assert.True(t, mk.Current())

	s.Clear()
	_, ok = doc.Mark(mk.Node())
	assert.False(t, ok)
}

func TestSplitRejectsStaleSegments(t *testing.T) {
	doc := parse(t, "<p>The cat sat.</p>")
	var seg find.Segment
	for s := range find.Extract(doc, nil) {
		seg = s
	}

	_, err := doc.Split(find.Segment{Leaf: seg.Leaf, Text: "changed"}, []find.Fragment{{Text: "changed"}})
	assert.ErrorIs(t, err, find.ErrDetached)

	_, err = doc.Split(seg, []find.Fragment{{Text: "The cat", Marked: true}})
	assert.ErrorIs(t, err, find.ErrDetached)

	markers, err := doc.Split(seg, []find.Fragment{{Text: "The "}, {Text: "cat", Marked: true}, {Text: " sat."}})
	require.NoError(t, err)
	assert.Len(t, markers, 1)

	// The leaf has been replaced, so a second split must fail.
	_, err = doc.Split(seg, []find.Fragment{{Text: seg.Text}})
	assert.ErrorIs(t, err, find.ErrDetached)
}

func TestUnwrapForeignMarker(t *testing.T) {
	a, b := parse(t, "<p>cat</p>"), parse(t, "<p>cat</p>")
	s := find.NewSession(a)
	s.Search("cat")

	_, err := b.Unwrap(s.Markers()[0])
	assert.ErrorIs(t, err, find.ErrDetached)
}

func TestText(t *testing.T) {
	doc := parse(t, "<p>one</p><script>two</script><p>three</p>")
	assert.Equal(t, "onetwothree", doc.Text(nil))
	assert.Equal(t, "onethree", doc.Text(htmltree.MustExclude("script")))
}

func TestNilDocument(t *testing.T) {
	var doc *htmltree.Document
	assert.Nil(t, doc.Root())
	assert.Nil(t, doc.Body())
	assert.Equal(t, "", doc.String())
	assert.Nil(t, doc.Layout(nil))
}

func TestVerify(t *testing.T) {
	src := []byte("<p>The cat sat.</p><p>A <i>cat</i> ran.</p>")
	diff, err := htmltree.Verify(src, find.NewQuery("cat"), nil)
	require.NoError(t, err)
	assert.Empty(t, diff)
}

func TestDiff(t *testing.T) {
	assert.Empty(t, htmltree.Diff("same", "same"))
	diff := htmltree.Diff("The cat sat.", "The dog sat.")
	assert.Contains(t, diff, "The ")
	assert.Contains(t, diff, "cat")
	assert.Contains(t, diff, "dog")
}
