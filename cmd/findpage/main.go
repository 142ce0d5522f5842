package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"reflect"
	"strings"
	"syscall"

	"github.com/amonks/findpage/internal/config"
	"github.com/amonks/findpage/pkg/find"
	"github.com/amonks/findpage/pkg/finder"
	"github.com/amonks/findpage/pkg/htmltree"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"
)

var (
	fUI     = flag.String("ui", "", "Force a particular ui. Legal values are 'tui' and 'print'.")
	fQuery  = flag.String("query", "", "Search for this as soon as the document is loaded.")
	fRegexp = flag.Bool("regexp", false, "Treat queries as regular expressions instead of literal text.")
	fWatch  = flag.Bool("watch", false, "Reload the document whenever its file changes. Only applies to the tui.")
	fConfig = flag.String("config", "", "Load settings from this file. By default, findpage.toml is loaded from the document's directory if it exists.")
	fFormat = flag.String("format", "html", "Output format for -ui=print. 'html' writes the document with its matches wrapped in marker spans; 'text' writes the document's text with its matches highlighted.")
	fVerify = flag.Bool("verify", false, "With -ui=print, check that removing the highlights restores the document byte for byte, and print a diff if it doesn't.")

	fVersion = flag.Bool("version", false, "Display the version and exit.")
	fHelp    = flag.Bool("help", false, "Display the help text and exit.")
)

var headerStyle = lipgloss.NewStyle().Bold(true)

func main() {
	flag.Parse()

	if *fVersion {
		fmt.Println(versionText())
		os.Exit(0)
	} else if *fHelp {
		fmt.Println("\n" + helpText())
		os.Exit(0)
	}

	if os.Getenv("FINDPAGE_DEBUG") != "" {
		f, err := tea.LogToFile("findpage-debug.log", "findpage")
		if err != nil {
			fmt.Println("Error opening debug log:", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	filename := flag.Arg(0)
	if filename == "" {
		fmt.Println(helpText())
		os.Exit(0)
	}

	if err := run(filename); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}
}

func run(filename string) error {
	cfg, err := loadConfig(filename)
	if err != nil {
		return err
	}
	skip, err := cfg.Exclusion()
	if err != nil {
		return err
	}
	patterns := cfg.Regexp || *fRegexp

	src, err := readSource(filename)
	if err != nil {
		return err
	}

	ui := *fUI
	if ui == "" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			ui = "tui"
		} else {
			ui = "print"
		}
	}

	switch ui {
	case "print":
		return runPrint(os.Stdout, os.Stderr, src, printOptions{
			skip:     skip,
			patterns: patterns,
			query:    *fQuery,
			format:   *fFormat,
			verify:   *fVerify,
			docOpts:  cfg.DocumentOptions(),
		})
	case "tui":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGHUP, syscall.SIGTERM)
		go func() {
			<-sigs
			cancel()
		}()

		return runTUI(ctx, filename, src, cfg, skip, patterns)
	default:
		return fmt.Errorf("invalid value '%s' for flag -ui. Legal values are 'tui' and 'print'", ui)
	}
}

func loadConfig(filename string) (config.Config, error) {
	if *fConfig != "" {
		return config.Load(*fConfig)
	}
	if filename == "-" {
		return config.Find(".")
	}
	return config.Find(filepath.Dir(filename))
}

func readSource(filename string) ([]byte, error) {
	if filename == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(filename)
}

func runTUI(ctx context.Context, filename string, src []byte, cfg config.Config, skip find.Exclusion, patterns bool) error {
	doc, err := htmltree.Parse(bytes.NewReader(src), cfg.DocumentOptions()...)
	if err != nil {
		return err
	}

	mods := []func(*finder.Model){
		finder.WithExclusion(skip),
		finder.WithDebounce(cfg.Debounce.Duration()),
		finder.WithLogger(log.Default()),
	}
	if patterns {
		mods = append(mods, finder.WithPatterns)
	}
	model := finder.New(doc, mods...)
	if *fQuery != "" {
		model.Search(*fQuery)
	}

	opts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}
	if filename == "-" {
		// The document came in on stdin, so keys have to come from
		// the terminal.
		opts = append(opts, tea.WithInputTTY())
	}
	program := tea.NewProgram(model, opts...)

	if *fWatch && filename != "-" {
		stop, err := watch(filename, cfg, program.Send)
		if err != nil {
			return err
		}
		defer stop()
	}

	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func init() {
	flag.Usage = func() {
		w := flag.CommandLine.Output()
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, usageText())
		fmt.Fprintln(w, flagText())
		os.Exit(0)
	}
}

func helpText() string {
	b := &strings.Builder{}
	b.WriteString("Findpage finds text in an HTML document, highlights every match,\n")
	b.WriteString("and steps through the matches in order.\n")
	b.WriteString("\n")
	b.WriteString(usageText())
	b.WriteString("\n")
	b.WriteString(flagText())
	b.WriteString("\n")
	b.WriteString(keysText())
	b.WriteString("\n")
	b.WriteString(versionText())
	return b.String()
}

func usageText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("USAGE"))
	b.WriteString("  findpage [flags] <file.html>\n")
	b.WriteString("  findpage [flags] -          (read the document from stdin)\n")
	return b.String()
}

func keysText() string {
	b := &strings.Builder{}
	fmt.Fprintln(b, headerStyle.Render("KEYS"))
	for _, k := range [][2]string{
		{"ctrl+f, /", "open the search bar"},
		{"enter, f3", "next match"},
		{"shift+f3", "previous match"},
		{"ctrl+r", "toggle regexp queries"},
		{"esc", "close the search bar and clear highlights"},
		{"?", "show all keys"},
	} {
		fmt.Fprintf(b, "  %-10s %s\n", k[0], k[1])
	}
	return b.String()
}

func flagText() string {
	var b strings.Builder
	fmt.Fprintln(&b, headerStyle.Render("FLAGS"))

	f := flag.CommandLine

	f.VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, "  -%s", f.Name)
		name, usage := flag.UnquoteUsage(f)
		if len(name) > 0 {
			b.WriteString("=")
			b.WriteString(name)
		}
		// Print the default value only if it differs to the zero value
		// for this flag type.
		if isZero := isZeroValue(f, f.DefValue); !isZero {
			fmt.Fprintf(&b, " (default %q)", f.DefValue)
		}
		b.WriteString("\n")

		usage = strings.ReplaceAll(usage, "\n", "\n    \t")
		usage = wordwrap.String(usage, 52)
		usage = indent.String(usage, 8)
		b.WriteString(usage)

		b.WriteString("\n")
	})
	return b.String()
}

// isZeroValue determines whether the string represents the zero
// value for a flag.
func isZeroValue(f *flag.Flag, value string) (ok bool) {
	typ := reflect.TypeOf(f.Value)
	var z reflect.Value
	if typ.Kind() == reflect.Pointer {
		z = reflect.New(typ.Elem())
	} else {
		z = reflect.Zero(typ)
	}
	return value == z.Interface().(flag.Value).String()
}
