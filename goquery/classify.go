package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemedia"
)

// Markup conventions of the upstream converter.
const (
	timelineTypeOfPrefix = "mw:Extension/timeline"
	mediaLinkRel         = "mw:MediaLink"
	brokenMediaSelector  = "span.mw-broken-media"
)

var (
	// mediaTypeOf matches type indicators of embedded files.
	mediaTypeOf = regexp.MustCompile(`\bmw:(File|Image|Video|Audio)\b`)

	// audioTypeOf matches the audio type indicator. Older markup renders
	// audio files with a <video> element under this indicator.
	audioTypeOf = regexp.MustCompile(`\bmw:Audio\b`)
)

// mathClasses mark fallback images rendered for math formulae.
var mathClasses = []string{"mwe-math-fallback-image-inline", "mwe-math-fallback-image-display"}

// Classify determines the media variant of a single element.
// Elements that carry no recognizable media markup are VariantUnknown.
//
// Precedence:
//  1. a media type indicator, resolved by the element's media child;
//  2. a timeline extension type indicator;
//  3. any other type indicator is unknown;
//  4. a media link relation (pronunciation clips);
//  5. a math fallback image class.
func Classify(node *goquery.Selection) pagemedia.MediaVariant {
	if typeOf, ok := node.Attr("typeof"); ok {
		switch {
		case mediaTypeOf.MatchString(typeOf):
			return classifyFile(node, typeOf)
		case strings.HasPrefix(typeOf, timelineTypeOfPrefix):
			return pagemedia.VariantTimelineImage
		}
		return pagemedia.VariantUnknown
	}

	if rel, ok := node.Attr("rel"); ok && hasToken(rel, mediaLinkRel) {
		return pagemedia.VariantPronunciation
	}

	for _, class := range mathClasses {
		if node.HasClass(class) {
			return pagemedia.VariantMathImage
		}
	}

	return pagemedia.VariantUnknown
}

// classifyFile maps the media child of an embedded file to its variant.
// Broken media placeholders are unknown so broken links never surface.
func classifyFile(node *goquery.Selection, typeOf string) pagemedia.MediaVariant {
	switch {
	case node.Find("img").Length() > 0:
		return pagemedia.VariantImage
	case node.Find("audio").Length() > 0:
		return pagemedia.VariantAudio
	case node.Find("video").Length() > 0:
		if audioTypeOf.MatchString(typeOf) {
			return pagemedia.VariantAudio
		}
		return pagemedia.VariantVideo
	case node.Find(brokenMediaSelector).Length() > 0:
		return pagemedia.VariantUnknown
	}
	return pagemedia.VariantUnknown
}

// ResourceElement returns the element holding the identifying attributes
// of a node of the given variant. The selection is empty when the node has
// no such element.
func ResourceElement(variant pagemedia.MediaVariant, node *goquery.Selection) *goquery.Selection {
	switch variant {
	case pagemedia.VariantImage, pagemedia.VariantTimelineImage:
		return node.Find("img").First()
	case pagemedia.VariantVideo:
		return node.Find("video").First()
	case pagemedia.VariantAudio:
		if audio := node.Find("audio").First(); audio.Length() > 0 {
			return audio
		}
		return node.Find("video").First()
	case pagemedia.VariantPronunciation, pagemedia.VariantMathImage:
		return node
	case pagemedia.VariantUnknown:
		return node.Slice(0, 0)
	}
	panic("goquery: unhandled media variant " + string(variant))
}

// hasToken reports whether a space-separated attribute value contains token.
func hasToken(value, token string) bool {
	for _, field := range strings.Fields(value) {
		if field == token {
			return true
		}
	}
	return false
}
