// Finder is a [bubbletea.Model] that pages through an HTML document and
// lets the user find text in it.
package finder

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/amonks/findpage/pkg/find"
	"github.com/amonks/findpage/pkg/htmltree"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
)

//go:generate go run golang.org/x/tools/cmd/stringer -type=State -trimprefix=State

// State is where the find UI is in its lifecycle.
type State int

const (
	// The search bar is hidden and nothing is highlighted.
	StateClosed State = iota
	// The search bar is showing with an empty query.
	StateIdle
	// The search bar is showing and the query's matches are marked.
	StateSearching
)

const DefaultDebounce = 120 * time.Millisecond

var zoneOnce sync.Once

func New(doc *htmltree.Document, mods ...func(*Model)) *Model {
	zoneOnce.Do(zone.NewGlobal)

	inp := textinput.New()
	inp.Prompt = "/"
	inp.Placeholder = "Search this page…"

	m := &Model{
		doc:      doc,
		input:    &inp,
		keys:     defaultKeys,
		styles:   DefaultStyles,
		debounce: DefaultDebounce,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, mod := range mods {
		mod(m)
	}

	sessionMods := []func(*find.Session){
		find.WithExclusion(m.skip),
		find.WithRevealer(find.RevealFunc(m.reveal)),
	}
	if m.patterns {
		sessionMods = append(sessionMods, find.WithPatterns)
	}
	m.session = find.NewSession(doc, sessionMods...)
	m.layout()
	return m
}

// WithExclusion keeps excluded subtrees out of both the search and the
// display.
func WithExclusion(skip find.Exclusion) func(*Model) {
	return func(m *Model) { m.skip = skip }
}

// WithDebounce sets how long the query must stay unchanged before it is
// searched for. Zero searches on every keystroke.
func WithDebounce(d time.Duration) func(*Model) {
	return func(m *Model) { m.debounce = d }
}

func WithPatterns(m *Model) { m.patterns = true }

func WithLogger(l *log.Logger) func(*Model) {
	return func(m *Model) { m.logger = l }
}

func WithStyles(s *Styles) func(*Model) {
	return func(m *Model) { m.styles = s }
}

// [Model] implements [tea.Model]
var _ tea.Model = &Model{}

type Model struct {
	width  int
	height int

	state    State
	showHelp bool

	doc      *htmltree.Document
	skip     find.Exclusion
	patterns bool
	session  *find.Session

	input  *textinput.Model
	keys   keyMap
	styles *Styles
	logger *log.Logger

	debounce time.Duration

	// gen increases every time the query changes. A scheduled search
	// only runs if it carries the latest generation.
	gen     int
	pending *searchMsg

	// runs counts searches that changed the session's matches. Repeating
	// the active query doesn't count.
	runs int

	// lines is the document laid out for the current width, and
	// markLines maps each marker to the line it starts on.
	lines     []string
	markLines map[*htmltree.Mark]int

	// revealing is the marker that most recently became current. The
	// next layout scrolls it to the middle of the pane.
	revealing find.Marker

	// scrollPosition is the line pinned to the top of the pane.
	scrollPosition int
}

type searchMsg struct {
	gen   int
	query string
}

// ReloadMsg replaces the document, for example after the file it came
// from changed on disk.
type ReloadMsg struct {
	Document *htmltree.Document
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) State() State                 { return m.state }
func (m *Model) Session() *find.Session       { return m.session }
func (m *Model) Document() *htmltree.Document { return m.doc }
func (m *Model) Query() string                { return m.input.Value() }
func (m *Model) Status() string               { return m.session.Status() }
func (m *Model) Runs() int                    { return m.runs }

func (m *Model) SetDimensions(width, height int) {
	m.width, m.height = width, height

	// Keep the current match in view across resizes.
	if i := m.session.Index(); i >= 0 {
		m.revealing = m.session.Markers()[i]
	}
	m.layout()
}

// Open shows the search bar and focuses the query field.
func (m *Model) Open() tea.Cmd {
	if m.state == StateClosed {
		m.state = StateIdle
	}
	return m.input.Focus()
}

// Close hides the search bar. The document is returned to its original
// state before Close returns, and any search still waiting out the
// debounce is dropped.
func (m *Model) Close() {
	m.gen++
	m.pending = nil
	m.session.Clear()
	m.input.SetValue("")
	m.input.Blur()
	m.state = StateClosed
	m.layout()
}

// Search searches for query right away, opening the search bar if it is
// closed.
func (m *Model) Search(query string) {
	if m.state == StateClosed {
		m.state = StateIdle
	}
	m.gen++
	m.pending = nil
	m.input.SetValue(query)
	m.search(query)
}

// SetQuery changes the query as if it had been typed. The search runs
// once the returned command's tick arrives, unless the query changes
// again first.
func (m *Model) SetQuery(query string) tea.Cmd {
	if m.state == StateClosed {
		m.state = StateIdle
	}
	m.input.SetValue(query)
	return m.handleQueryChange()
}

func (m *Model) Next() {
	m.session.Next()
	m.layout()
}

func (m *Model) Previous() {
	m.session.Previous()
	m.layout()
}

// Clear empties the query and removes every marker, leaving the search
// bar as it was.
func (m *Model) Clear() {
	m.gen++
	m.pending = nil
	m.input.SetValue("")
	m.session.Clear()
	if m.state == StateSearching {
		m.state = StateIdle
	}
	m.layout()
}

// SetPatterns switches between literal and regular expression queries.
func (m *Model) SetPatterns(on bool) {
	m.patterns = on
	m.session.SetPatterns(on)
	m.layout()
}

// Reload swaps in a new document and repeats the active search in it.
func (m *Model) Reload(doc *htmltree.Document) {
	m.logger.Printf("reload: query %q", m.session.Query().Text())
	m.doc = doc
	m.session.Reset(doc)
	m.layout()
}

func (m *Model) reveal(mk find.Marker) { m.revealing = mk }
