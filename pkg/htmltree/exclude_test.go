package htmltree_test

import (
	"testing"

	"github.com/amonks/findpage/pkg/htmltree"
	"github.com/stretchr/testify/assert"
)

type el struct {
	tag   string
	attrs map[string]string
}

func (e el) Tag() string { return e.tag }

func (e el) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

func TestExclude(t *testing.T) {
	for _, tc := range []struct {
		rule    string
		element el
		expect  bool
	}{
		{"script", el{tag: "script"}, true},
		{"script", el{tag: "SCRIPT"}, true},
		{"script", el{tag: "p"}, false},
		{"h?", el{tag: "h2"}, true},
		{"h?", el{tag: "hr"}, true},
		{"h[1-6]", el{tag: "hr"}, false},
		{"#nav", el{tag: "div", attrs: map[string]string{"id": "nav"}}, true},
		{"#nav", el{tag: "div", attrs: map[string]string{"id": "navigation"}}, false},
		{"#nav", el{tag: "nav"}, false},
		{".ad-*", el{tag: "div", attrs: map[string]string{"class": "box ad-banner"}}, true},
		{".ad-*", el{tag: "div", attrs: map[string]string{"class": "bad-banner"}}, false},
		{"{aside,footer}", el{tag: "footer"}, true},
		{"#pageSearchBox", el{tag: "div", attrs: map[string]string{"id": "pageSearchBox"}}, true},
	} {
		t.Run(tc.rule+" "+tc.element.tag, func(t *testing.T) {
			ex, err := htmltree.Exclude(tc.rule)
			assert.NoError(t, err)
			assert.Equal(t, tc.expect, ex(tc.element))
		})
	}
}

func TestExcludeDefaults(t *testing.T) {
	ex := htmltree.MustExclude(htmltree.DefaultExclude...)
	for _, tag := range []string{"script", "style", "noscript", "iframe", "textarea", "input", "select", "button"} {
		assert.True(t, ex(el{tag: tag}), tag)
	}
	assert.True(t, ex(el{tag: "div", attrs: map[string]string{"id": htmltree.SearchBoxID}}))
	assert.False(t, ex(el{tag: "p"}))
	assert.False(t, ex(el{tag: "span", attrs: map[string]string{"class": "pageSearchHit"}}))
}

func TestExcludeInvalid(t *testing.T) {
	_, err := htmltree.Exclude("p", "  ", "[")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "empty exclusion rule")
	assert.Contains(t, err.Error(), "exclusion rule '['")

	assert.Panics(t, func() { htmltree.MustExclude("") })
}

func TestExcludeNothing(t *testing.T) {
	ex, err := htmltree.Exclude()
	assert.NoError(t, err)
	assert.False(t, ex(el{tag: "script"}))
}
