package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/amonks/findpage/pkg/find"
	"github.com/amonks/findpage/pkg/htmltree"
)

// Filename is the config file looked for next to a document.
const Filename = "findpage.toml"

// DefaultDebounce is how long the query must stay unchanged before it is
// searched for.
const DefaultDebounce = 120 * time.Millisecond

// Config defines the type of findpage.toml files.
type Config struct {
	Debounce    Duration `toml:"debounce"`
	Exclude     []string `toml:"exclude"`
	Regexp      bool     `toml:"regexp"`
	HitClass    string   `toml:"hit_class"`
	ActiveClass string   `toml:"active_class"`
}

func Default() Config {
	return Config{
		Debounce:    Duration(DefaultDebounce),
		Exclude:     append([]string(nil), htmltree.DefaultExclude...),
		HitClass:    htmltree.DefaultHitClass,
		ActiveClass: htmltree.DefaultActiveClass,
	}
}

// Duration is a time.Duration written in toml as a string, like "150ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	dur, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(dur)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d Duration) Duration() time.Duration { return time.Duration(d) }

// Find loads findpage.toml from dir, or returns the default config if
// there isn't one.
func Find(dir string) (Config, error) {
	path := filepath.Join(dir, Filename)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Load reads a config file. Settings it leaves out keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("loading %s: %w", path, err)
	}

	var problems []string
	for _, key := range md.Undecoded() {
		problems = append(problems, fmt.Sprintf("unknown setting '%s'", key.String()))
	}
	if err := cfg.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) != 0 {
		return Config{}, errors.New(strings.Join(append([]string{"invalid config " + path}, problems...), "\n"))
	}
	return cfg, nil
}

// Validate reports every problem with the config at once.
func (cfg Config) Validate() error {
	var problems []error
	if cfg.Debounce < 0 {
		problems = append(problems, fmt.Errorf("debounce must not be negative, got %s", cfg.Debounce.Duration()))
	}
	if _, err := htmltree.Exclude(cfg.Exclude...); err != nil {
		problems = append(problems, err)
	}
	for _, c := range []struct{ name, class string }{
		{"hit_class", cfg.HitClass},
		{"active_class", cfg.ActiveClass},
	} {
		name, class := c.name, c.class
		if class == "" {
			problems = append(problems, fmt.Errorf("%s must not be empty", name))
		} else if strings.ContainsFunc(class, isSpace) {
			problems = append(problems, fmt.Errorf("%s '%s' must be a single class name", name, class))
		}
	}
	if cfg.HitClass != "" && cfg.HitClass == cfg.ActiveClass {
		problems = append(problems, errors.New("hit_class and active_class must differ"))
	}
	return errors.Join(problems...)
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f' }

// Exclusion compiles the exclude rules.
func (cfg Config) Exclusion() (find.Exclusion, error) {
	return htmltree.Exclude(cfg.Exclude...)
}

// DocumentOptions carries the marker classes into an htmltree.Document.
func (cfg Config) DocumentOptions() []func(*htmltree.Document) {
	return []func(*htmltree.Document){htmltree.WithClasses(cfg.HitClass, cfg.ActiveClass)}
}
