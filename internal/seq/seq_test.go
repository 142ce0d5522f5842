package seq_test

import (
	"testing"

	"github.com/amonks/findpage/internal/seq"
	"github.com/stretchr/testify/assert"
)

func TestContainsSequence(t *testing.T) {
	for _, tc := range []struct {
		name  string
		lines []string
		want  []string
		ok    bool
	}{
		{"adjacent", []string{"a", "b", "c", "d"}, []string{"b", "c"}, true},
		{"gap", []string{"a", "b", "c", "d"}, []string{"a", "d"}, true},
		{"substring", []string{"The cat sat.", "A cat ran."}, []string{"cat sat", "ran"}, true},
		{"missing", []string{"a", "b"}, []string{"z"}, false},
		{"out of order", []string{"a", "b", "c"}, []string{"c", "a"}, false},
		{"one line per item", []string{"ab"}, []string{"a", "b"}, false},
		{"nothing wanted", []string{"a"}, nil, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := seq.ContainsSequence(tc.lines, tc.want...)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestStringContainsSequence(t *testing.T) {
	assert.NoError(t, seq.StringContainsSequence("one\ntwo\nthree", "one", "three"))
	assert.Error(t, seq.StringContainsSequence("one\ntwo", "two", "one"))
}
