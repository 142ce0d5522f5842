package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/amonks/findpage/internal/config"
	"github.com/amonks/findpage/internal/watcher"
	"github.com/amonks/findpage/pkg/finder"
	"github.com/amonks/findpage/pkg/htmltree"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><p>The cat sat.</p><script>var cat</script><p>A cat ran.</p></body></html>`

func TestRunPrint(t *testing.T) {
	skip := htmltree.MustExclude(htmltree.DefaultExclude...)
	for _, tc := range []struct {
		title    string
		opts     printOptions
		contains []string
		status   string
	}{
		{"html", printOptions{query: "cat", format: "html"}, []string{
			`<p>The <span class="pageSearchHit pageSearchActive">cat</span> sat.</p>`,
			`<script>var cat</script>`,
			`<p>A <span class="pageSearchHit">cat</span> ran.</p>`,
		}, "1 / 2\n"},
		{"verified", printOptions{query: "cat", format: "html", verify: true}, []string{
			`<span class="pageSearchHit">cat</span>`,
		}, "1 / 2\n"},
		{"text", printOptions{query: "cat", format: "text"}, []string{"The ", " sat.\n", " ran.\n"}, "1 / 2\n"},
		{"no query", printOptions{format: "html"}, []string{"<p>The cat sat.</p>"}, "0 / 0\n"},
		{"patterns", printOptions{query: "[cr]a[tn]", format: "html", patterns: true}, []string{
			`<span class="pageSearchHit">ran</span>`,
		}, "1 / 3\n"},
		{"classes", printOptions{query: "ran", format: "html", docOpts: []func(*htmltree.Document){htmltree.WithClasses("a", "b")}}, []string{
			`<span class="a b">ran</span>`,
		}, "1 / 1\n"},
	} {
		t.Run(tc.title, func(t *testing.T) {
			tc.opts.skip = skip
			var stdout, status bytes.Buffer
			require.NoError(t, runPrint(&stdout, &status, []byte(page), tc.opts))
			for _, want := range tc.contains {
				assert.Contains(t, stdout.String(), want)
			}
			assert.Equal(t, tc.status, status.String())
		})
	}
}

func TestRunPrintTestdata(t *testing.T) {
	src, err := os.ReadFile("testdata/page.html")
	require.NoError(t, err)
	cfg := config.Default()
	skip, err := cfg.Exclusion()
	require.NoError(t, err)

	var stdout, status bytes.Buffer
	require.NoError(t, runPrint(&stdout, &status, src, printOptions{
		skip:    skip,
		query:   "cat",
		format:  "text",
		verify:  true,
		docOpts: cfg.DocumentOptions(),
	}))
	assert.Equal(t, "1 / 7\n", status.String())
	assert.NotContains(t, stdout.String(), "hidden")
	assert.Contains(t, stdout.String(), "Dogs bark.")
}

func TestRunPrintBadFormat(t *testing.T) {
	var stdout, status bytes.Buffer
	err := runPrint(&stdout, &status, []byte(page), printOptions{format: "pdf"})
	assert.ErrorContains(t, err, "-format")
}

func TestWatchReloads(t *testing.T) {
	watcher.Mock()
	defer watcher.Unmock()

	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte("<p>one cat</p>"), 0o644))

	msgs := make(chan tea.Msg, 1)
	stop, err := watch(path, config.Default(), func(msg tea.Msg) { msgs <- msg })
	require.NoError(t, err)
	defer stop()

	require.NoError(t, os.WriteFile(path, []byte("<p>two cats</p>"), 0o644))
	watcher.Dispatch(path)

	select {
	case msg := <-msgs:
		reload, ok := msg.(finder.ReloadMsg)
		require.True(t, ok)
		assert.Contains(t, reload.Document.String(), "two cats")
	case <-time.After(time.Second):
		t.Fatal("no reload after the file changed")
	}
}
