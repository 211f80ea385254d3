package goquery

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemedia"
)

// Fixed MIME types of renderer-generated images.
const (
	mathMime     = "image/svg"
	timelineMime = "image/png"
)

// extractItem builds the media item for an eligible node.
func (e *Extractor) extractItem(variant pagemedia.MediaVariant, node, resource *goquery.Selection) (*pagemedia.MediaItem, error) {
	item := &pagemedia.MediaItem{
		Title:         resourceTitle(resource),
		SectionID:     sectionID(node),
		Type:          variant.ItemType(),
		Caption:       caption(node),
		GalleryID:     galleryID(node),
		ShowInGallery: variant.ShowInGallery(),
	}

	switch variant {
	case pagemedia.VariantImage:
		images := e.images()
		if images.Oversized(resource) {
			images.Scale(resource)
		}
		src, _ := resource.Attr("src")
		srcset, _ := resource.Attr("srcset")
		item.Srcset = pagemedia.ImageSrcset(src, srcset)
	case pagemedia.VariantVideo:
		item.StartTime, item.EndTime, item.ThumbTime = videoTimings(node, resource)
		item.Sources = videoSources(resource)
	case pagemedia.VariantAudio:
		item.AudioType = pagemedia.AudioGeneric
		if e.spoken()(node) {
			item.AudioType = pagemedia.AudioSpoken
		}
	case pagemedia.VariantPronunciation:
		item.AudioType = pagemedia.AudioPronunciation
	case pagemedia.VariantMathImage:
		src, _ := resource.Attr("src")
		if src == "" {
			return nil, pagemedia.Errorf(pagemedia.EINVALID, "math image has no src")
		}
		item.Original = &pagemedia.Original{Source: src, Mime: mathMime}
	case pagemedia.VariantTimelineImage:
		src, _ := resource.Attr("src")
		item.Original = &pagemedia.Original{Source: src, Mime: timelineMime}
	case pagemedia.VariantUnknown:
		return nil, pagemedia.Errorf(pagemedia.EINVALID, "cannot extract unknown media")
	default:
		panic("goquery: unhandled media variant " + string(variant))
	}

	return item, nil
}

// resourceTitle returns the file page title a resource element refers to.
func resourceTitle(resource *goquery.Selection) string {
	resourceAttr, ok := resource.Attr("resource")
	if !ok {
		return ""
	}
	return pagemedia.NormalizeTitle(resourceAttr)
}

// sectionID returns the id of the nearest enclosing section.
func sectionID(node *goquery.Selection) *int {
	v, ok := node.Closest("section[data-mw-section-id]").Attr("data-mw-section-id")
	if !ok {
		return nil
	}
	id, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return nil
	}
	return &id
}

// galleryID returns the id of the nearest enclosing gallery.
func galleryID(node *goquery.Selection) string {
	id, _ := node.Closest(".gallery").Attr("id")
	return id
}

// caption returns the node's figure caption or, inside a gallery box, the
// box's gallery text. Empty captions are absent.
func caption(node *goquery.Selection) *pagemedia.Caption {
	sel := node.Find("figcaption").First()
	if sel.Length() == 0 {
		sel = node.Closest("li.gallerybox").Find(".gallerytext").First()
	}
	if sel.Length() == 0 {
		return nil
	}

	html, err := sel.Html()
	if err != nil {
		html = ""
	}
	html = strings.TrimSpace(html)
	text := strings.TrimSpace(sel.Text())
	if html == "" && text == "" {
		return nil
	}
	return &pagemedia.Caption{HTML: html, Text: text}
}

// videoTimings reads start, end and thumbnail times from the structured
// data attribute of the node, then of its video element. Each timing comes
// from the first source that carries it. Malformed data is skipped.
func videoTimings(node, video *goquery.Selection) (start, end, thumb *float64) {
	for _, sel := range []*goquery.Selection{node, video} {
		fields := dataMW(sel)
		if start == nil {
			start = timing(fields, "startTime", "starttime")
		}
		if end == nil {
			end = timing(fields, "endTime", "endtime")
		}
		if thumb == nil {
			thumb = timing(fields, "thumbTime", "thumbtime")
		}
	}
	return start, end, thumb
}

// dataMW decodes the data-mw attribute of sel, or returns nil.
func dataMW(sel *goquery.Selection) map[string]any {
	raw, ok := sel.Attr("data-mw")
	if !ok {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil
	}
	return fields
}

// timing returns the first of keys holding a valid timestamp in seconds.
func timing(fields map[string]any, keys ...string) *float64 {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case float64:
			if v >= 0 {
				return &v
			}
		case string:
			if secs, ok := pagemedia.ParseSeconds(v); ok {
				return &secs
			}
		}
	}
	return nil
}

// videoSources lists the playable encodings of a video in document order.
func videoSources(video *goquery.Selection) []pagemedia.Source {
	var sources []pagemedia.Source
	video.Find("source").Each(func(_ int, s *goquery.Selection) {
		typ, _ := s.Attr("type")
		mime, codecs := pagemedia.ParseMIMEType(typ)
		src, _ := s.Attr("src")
		name, _ := s.Attr("data-title")
		shortName, _ := s.Attr("data-shorttitle")

		sources = append(sources, pagemedia.Source{
			URL:       src,
			Mime:      mime,
			Codecs:    codecs,
			Name:      name,
			ShortName: shortName,
			Width:     dimension(s, "data-file-width", "data-width"),
			Height:    dimension(s, "data-file-height", "data-height"),
		})
	})
	return sources
}

// dimension returns the first of attrs that parses as an integer.
// The file dimension is authoritative over the display dimension.
func dimension(s *goquery.Selection, attrs ...string) int {
	for _, attr := range attrs {
		if n, ok := intAttr(s, attr); ok {
			return n
		}
	}
	return 0
}
