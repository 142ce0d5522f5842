// Seq checks that lines of rendered output appear in a given order.
package seq

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertStringContainsSequence(t *testing.T, str string, want ...string) bool {
	t.Helper()
	return assert.NoError(t, StringContainsSequence(str, want...))
}

func AssertContainsSequence(t *testing.T, lines []string, want ...string) bool {
	t.Helper()
	return assert.NoError(t, ContainsSequence(lines, want...))
}

func StringContainsSequence(str string, want ...string) error {
	return ContainsSequence(strings.Split(str, "\n"), want...)
}

// ContainsSequence reports whether each of want is contained in some
// line, each on a later line than the one before it. Lines in between
// are ignored.
func ContainsSequence(lines []string, want ...string) error {
	at := 0
	for i, w := range want {
		found := false
		for ; at < len(lines); at++ {
			if strings.Contains(lines[at], w) {
				found = true
				at++
				break
			}
		}
		if !found {
			return fmt.Errorf("item %d of %d, %q, not found in order\n\nwant:\n%s\n\ngot:\n%s",
				i+1, len(want), w,
				strings.Join(want, "\n"),
				strings.Join(lines, "\n"))
		}
	}
	return nil
}
