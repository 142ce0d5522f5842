package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/amonks/findpage/internal/color"
	"github.com/amonks/findpage/pkg/find"
	"github.com/amonks/findpage/pkg/htmltree"
	"github.com/muesli/termenv"
)

type printOptions struct {
	skip     find.Exclusion
	patterns bool
	query    string
	format   string
	verify   bool
	docOpts  []func(*htmltree.Document)
}

var errNotRoundTrip = errors.New("clearing the highlights did not restore the document")

// runPrint searches the document once and writes the result to stdout.
// The match counter goes to status.
func runPrint(stdout, status io.Writer, src []byte, opts printOptions) error {
	doc, err := htmltree.Parse(bytes.NewReader(src), opts.docOpts...)
	if err != nil {
		return err
	}

	var mods []func(*find.Session)
	mods = append(mods, find.WithExclusion(opts.skip))
	if opts.patterns {
		mods = append(mods, find.WithPatterns)
	}
	session := find.NewSession(doc, mods...)
	session.Search(opts.query)

	if opts.verify {
		diff, err := htmltree.Verify(src, session.Query(), opts.skip)
		if err != nil {
			return err
		}
		if diff != "" {
			fmt.Fprintln(status, diff)
			return errNotRoundTrip
		}
	}

	switch opts.format {
	case "html":
		if err := doc.Render(stdout); err != nil {
			return err
		}
		fmt.Fprintln(stdout)
	case "text":
		writeText(stdout, doc, opts.skip)
	default:
		return fmt.Errorf("invalid value '%s' for flag -format. Legal values are 'html' and 'text'", opts.format)
	}

	fmt.Fprintln(status, session.Status())
	return nil
}

// writeText writes the document's text, highlighting markers if w is a
// terminal that supports color.
func writeText(w io.Writer, doc *htmltree.Document, skip find.Exclusion) {
	out := termenv.NewOutput(w)
	var (
		hitBG    = out.Color(color.HitBackgroundHex)
		activeBG = out.Color(color.ActiveBackgroundHex)
		fg       = out.Color(color.HitForegroundHex)
	)
	for _, line := range doc.Layout(skip) {
		for _, span := range line {
			switch {
			case span.Mark == nil:
				io.WriteString(w, span.Text)
			case span.Mark.Current():
				io.WriteString(w, out.String(span.Text).Background(activeBG).Foreground(fg).Bold().String())
			default:
				io.WriteString(w, out.String(span.Text).Background(hitBG).Foreground(fg).String())
			}
		}
		io.WriteString(w, "\n")
	}
}
