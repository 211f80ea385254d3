package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ImagePolicy inspects and rescales image elements during extraction.
type ImagePolicy interface {
	// TooSmall reports whether the image is below the minimum display size.
	TooSmall(img *goquery.Selection) bool

	// Disallowed reports whether the image is excluded from media lists.
	Disallowed(img *goquery.Selection) bool

	// Oversized reports whether the image exceeds the maximum display width.
	Oversized(img *goquery.Selection) bool

	// Scale rewrites an oversized image in place to fit the maximum width.
	Scale(img *goquery.Selection)
}

// RegionFunc reports whether a node lies within a region of the document.
type RegionFunc func(node *goquery.Selection) bool

// Image policy defaults.
const (
	DefaultMinImageSize  = 48
	DefaultMaxImageWidth = 1280
)

// DefaultDisallowedClasses mark images (or their containers) that never
// appear in media lists: icons, maintenance templates, navigation boxes and
// interactive maps.
var DefaultDisallowedClasses = []string{"noviewer", "metadata", "navbox", "mw-kartographer-map"}

// spokenSelector matches the container of a spoken version of the article.
const spokenSelector = "#section_SpokenWikipedia, .spoken-wikipedia"

// thumbPath matches the width segment of a thumbnail URL, e.g. "/1600px-Cat.jpg".
var thumbPath = regexp.MustCompile(`/(\d+)px-([^/]+)$`)

// Ensure DefaultImagePolicy implements ImagePolicy at compile time.
var _ ImagePolicy = (*DefaultImagePolicy)(nil)

// DefaultImagePolicy decides image eligibility from the width and height
// attributes and container classes.
type DefaultImagePolicy struct {
	// MinSize is the smallest width or height, in pixels, an image may have.
	// Zero disables the check.
	MinSize int

	// MaxWidth is the largest display width before an image is scaled down.
	// Zero disables scaling.
	MaxWidth int

	// DisallowedClasses exclude images carrying any of them on the image
	// itself or an ancestor.
	DisallowedClasses []string
}

// NewImagePolicy creates a DefaultImagePolicy with default thresholds.
func NewImagePolicy() *DefaultImagePolicy {
	return &DefaultImagePolicy{
		MinSize:           DefaultMinImageSize,
		MaxWidth:          DefaultMaxImageWidth,
		DisallowedClasses: DefaultDisallowedClasses,
	}
}

// TooSmall reports whether either declared dimension is below MinSize.
// Images without declared dimensions are never too small.
func (p *DefaultImagePolicy) TooSmall(img *goquery.Selection) bool {
	if w, ok := intAttr(img, "width"); ok && w < p.MinSize {
		return true
	}
	if h, ok := intAttr(img, "height"); ok && h < p.MinSize {
		return true
	}
	return false
}

// Disallowed reports whether the image or an ancestor has a disallowed class.
func (p *DefaultImagePolicy) Disallowed(img *goquery.Selection) bool {
	for _, class := range p.DisallowedClasses {
		if img.Closest("."+class).Length() > 0 {
			return true
		}
	}
	return false
}

// Oversized reports whether the declared width exceeds MaxWidth.
func (p *DefaultImagePolicy) Oversized(img *goquery.Selection) bool {
	if p.MaxWidth <= 0 {
		return false
	}
	w, ok := intAttr(img, "width")
	return ok && w > p.MaxWidth
}

// Scale caps the image at MaxWidth. The height is scaled proportionally, a
// thumbnail src is rewritten to the capped width, and srcset is dropped
// since its higher densities exceed the cap.
func (p *DefaultImagePolicy) Scale(img *goquery.Selection) {
	if !p.Oversized(img) {
		return
	}
	w, _ := intAttr(img, "width")

	img.SetAttr("width", strconv.Itoa(p.MaxWidth))
	if h, ok := intAttr(img, "height"); ok {
		img.SetAttr("height", strconv.Itoa(h*p.MaxWidth/w))
	}

	if src, ok := img.Attr("src"); ok {
		if m := thumbPath.FindStringSubmatch(src); m != nil {
			if px, err := strconv.Atoi(m[1]); err == nil && px > p.MaxWidth {
				img.SetAttr("src", strings.TrimSuffix(src, m[0])+"/"+strconv.Itoa(p.MaxWidth)+"px-"+m[2])
			}
		}
	}
	img.RemoveAttr("srcset")
}

// InSpokenSection reports whether node lies within the spoken version
// section of an article.
func InSpokenSection(node *goquery.Selection) bool {
	return node.Closest(spokenSelector).Length() > 0
}

// intAttr returns an attribute parsed as an integer.
func intAttr(sel *goquery.Selection, name string) (int, bool) {
	v, ok := sel.Attr(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}
