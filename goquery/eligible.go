package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemedia"
)

// timelineExt is the only format timeline renderings ship as.
const timelineExt = ".png"

// Eligible reports whether a classified node should be reported.
// Ineligible nodes are skipped without error.
func Eligible(variant pagemedia.MediaVariant, node, resource *goquery.Selection, images ImagePolicy) bool {
	switch variant {
	case pagemedia.VariantImage:
		if resource.Length() == 0 {
			return false
		}
		return !images.TooSmall(resource) && !images.Disallowed(resource)
	case pagemedia.VariantTimelineImage:
		if resource.Length() == 0 {
			return false
		}
		src, _ := resource.Attr("src")
		return strings.HasSuffix(strings.ToLower(src), timelineExt)
	case pagemedia.VariantVideo, pagemedia.VariantAudio, pagemedia.VariantPronunciation, pagemedia.VariantMathImage:
		return true
	case pagemedia.VariantUnknown:
		return false
	}
	panic("goquery: unhandled media variant " + string(variant))
}
