package htmltree

import (
	"bytes"

	"github.com/amonks/findpage/pkg/find"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a readable diff from before to after, or "" if they are the
// same.
func Diff(before, after string) string {
	if before == after {
		return ""
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	return dmp.DiffPrettyText(dmp.DiffCleanupSemantic(diffs))
}

// Verify searches a copy of the document for query, clears the
// highlights, and reports any difference between the HTML it started with
// and the HTML it ended with. It returns "" when the document round-trips.
func Verify(src []byte, query find.Query, skip find.Exclusion) (string, error) {
	doc, err := Parse(bytes.NewReader(src))
	if err != nil {
		return "", err
	}
	before := doc.String()

	r := find.NewRenderer(doc)
	r.Apply(find.Locate(find.Extract(doc, skip), query))
	r.Clear()

	return Diff(before, doc.String()), nil
}
