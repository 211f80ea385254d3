package goquery_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// selectFirst parses html and returns the first element matching selector.
func selectFirst(t *testing.T, html, selector string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	sel := doc.Find(selector).First()
	require.Equal(t, 1, sel.Length(), "selector %q matched nothing", selector)
	return sel
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

// fakeImagePolicy is a func-field ImagePolicy for tests.
type fakeImagePolicy struct {
	TooSmallFn   func(img *goquery.Selection) bool
	DisallowedFn func(img *goquery.Selection) bool
	OversizedFn  func(img *goquery.Selection) bool
	ScaleFn      func(img *goquery.Selection)
}

func (p *fakeImagePolicy) TooSmall(img *goquery.Selection) bool {
	if p.TooSmallFn == nil {
		return false
	}
	return p.TooSmallFn(img)
}

func (p *fakeImagePolicy) Disallowed(img *goquery.Selection) bool {
	if p.DisallowedFn == nil {
		return false
	}
	return p.DisallowedFn(img)
}

func (p *fakeImagePolicy) Oversized(img *goquery.Selection) bool {
	if p.OversizedFn == nil {
		return false
	}
	return p.OversizedFn(img)
}

func (p *fakeImagePolicy) Scale(img *goquery.Selection) {
	if p.ScaleFn != nil {
		p.ScaleFn(img)
	}
}
