package htmltree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amonks/findpage/pkg/find"
	"github.com/gobwas/glob"
)

// SearchBoxID is the id of the find-on-page UI's own container, which is
// never searched.
const SearchBoxID = "pageSearchBox"

// DefaultExclude lists the subtrees that are never searched: embedded
// code and styles, frames, form controls, and the search box itself.
var DefaultExclude = []string{
	"script", "style", "noscript", "iframe",
	"textarea", "input", "select", "button",
	"#" + SearchBoxID,
}

// Exclude compiles exclusion rules into a [find.Exclusion].
//
// Each rule is a glob, matched against an element's tag name, against
// "#" followed by its id, and against "." followed by each of its
// classes. So "h?" excludes headings h1 through h6, "#nav" excludes the
// element with id "nav", and ".ad-*" excludes anything with a class
// starting with "ad-".
func Exclude(rules ...string) (find.Exclusion, error) {
	var (
		globs    []glob.Glob
		problems []error
	)
	for _, rule := range rules {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			problems = append(problems, errors.New("empty exclusion rule"))
			continue
		}
		g, err := glob.Compile(rule)
		if err != nil {
			problems = append(problems, fmt.Errorf("exclusion rule '%s': %w", rule, err))
			continue
		}
		globs = append(globs, g)
	}
	if len(problems) != 0 {
		return nil, errors.Join(problems...)
	}

	return func(el find.Element) bool {
		names := []string{strings.ToLower(el.Tag())}
		if id, ok := el.Attr("id"); ok && id != "" {
			names = append(names, "#"+id)
		}
		if class, ok := el.Attr("class"); ok {
			for _, c := range strings.Fields(class) {
				names = append(names, "."+c)
			}
		}
		for _, g := range globs {
			for _, name := range names {
				if g.Match(name) {
					return true
				}
			}
		}
		return false
	}, nil
}

// MustExclude is like [Exclude] but panics if a rule doesn't compile. It
// is meant for rules written in code.
func MustExclude(rules ...string) find.Exclusion {
	ex, err := Exclude(rules...)
	if err != nil {
		panic(err)
	}
	return ex
}
