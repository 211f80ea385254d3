package pagemedia

import "encoding/json"

// MediaVariant is the classified media kind of a candidate element.
type MediaVariant string

// Media variants. VariantUnknown marks an element that is not reportable.
const (
	VariantUnknown       MediaVariant = ""
	VariantImage         MediaVariant = "image"
	VariantVideo         MediaVariant = "video"
	VariantAudio         MediaVariant = "audio"
	VariantPronunciation MediaVariant = "pronunciation"
	VariantMathImage     MediaVariant = "math"
	VariantTimelineImage MediaVariant = "timeline"
)

// Item types emitted in MediaItem.Type.
const (
	TypeImage = "image"
	TypeVideo = "video"
	TypeAudio = "audio"
)

// ItemType returns the canonical item type reported for the variant.
// Returns "" for VariantUnknown.
func (v MediaVariant) ItemType() string {
	switch v {
	case VariantImage, VariantMathImage, VariantTimelineImage:
		return TypeImage
	case VariantVideo:
		return TypeVideo
	case VariantAudio, VariantPronunciation:
		return TypeAudio
	case VariantUnknown:
		return ""
	}
	panic("pagemedia: unhandled media variant " + string(v))
}

// ShowInGallery reports whether items of the variant belong in a gallery view.
func (v MediaVariant) ShowInGallery() bool {
	return v == VariantImage || v == VariantVideo
}

// String returns a printable name, using "unknown" for VariantUnknown.
func (v MediaVariant) String() string {
	if v == VariantUnknown {
		return "unknown"
	}
	return string(v)
}

// AudioType distinguishes the kinds of audio items.
type AudioType string

// Audio types.
const (
	AudioPronunciation AudioType = "pronunciation"
	AudioSpoken        AudioType = "spoken"
	AudioGeneric       AudioType = "generic"
)

// Caption holds an item's caption in serialized HTML and plain-text form.
type Caption struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// Source is one playable encoding of a video.
type Source struct {
	URL       string   `json:"url"`
	Mime      string   `json:"mime,omitempty"`
	Codecs    []string `json:"codecs,omitempty"`
	Name      string   `json:"name,omitempty"`
	ShortName string   `json:"shortName,omitempty"`
	Width     int      `json:"width,omitempty"`
	Height    int      `json:"height,omitempty"`
}

// SrcsetEntry is one responsive descriptor of an image.
type SrcsetEntry struct {
	Src   string `json:"src"`
	Scale string `json:"scale"`
}

// Original describes the original file behind an item.
type Original struct {
	Source string `json:"source"`
	Mime   string `json:"mime,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// MediaItem is one media entry of a page, in document order.
// Fields that do not apply to the item's variant are left at their zero
// value and omitted from JSON.
type MediaItem struct {
	Title         string        `json:"title,omitempty"`
	LeadImage     bool          `json:"leadImage"`
	SectionID     *int          `json:"sectionId,omitempty"`
	Type          string        `json:"type,omitempty"`
	Caption       *Caption      `json:"caption,omitempty"`
	StartTime     *float64      `json:"startTime,omitempty"`
	EndTime       *float64      `json:"endTime,omitempty"`
	ThumbTime     *float64      `json:"thumbTime,omitempty"`
	AudioType     AudioType     `json:"audioType,omitempty"`
	GalleryID     string        `json:"galleryId,omitempty"`
	Sources       []Source      `json:"sources,omitempty"`
	ShowInGallery bool          `json:"showInGallery"`
	Srcset        []SrcsetEntry `json:"srcset,omitempty"`
	Original      *Original     `json:"original,omitempty"`

	// Extra holds merged metadata fields that have no typed field above.
	// They are flattened into the item's JSON object. Keys never collide
	// with typed field names.
	Extra map[string]any `json:"-"`
}

// itemFields lists the JSON keys owned by typed MediaItem fields.
var itemFields = map[string]bool{
	"title":         true,
	"leadImage":     true,
	"sectionId":     true,
	"type":          true,
	"caption":       true,
	"startTime":     true,
	"endTime":       true,
	"thumbTime":     true,
	"audioType":     true,
	"galleryId":     true,
	"sources":       true,
	"showInGallery": true,
	"srcset":        true,
	"original":      true,
}

// Key returns the identity used for deduplication: the title when present,
// otherwise the original source. Returns "" when the item has neither.
func (m *MediaItem) Key() string {
	if m.Title != "" {
		return m.Title
	}
	if m.Original != nil {
		return m.Original.Source
	}
	return ""
}

// clone returns a shallow copy of the item with its own Extra map.
func (m *MediaItem) clone() *MediaItem {
	other := *m
	if m.Extra != nil {
		other.Extra = make(map[string]any, len(m.Extra))
		for k, v := range m.Extra {
			other.Extra[k] = v
		}
	}
	return &other
}

// MarshalJSON flattens Extra into the item's JSON object.
func (m MediaItem) MarshalJSON() ([]byte, error) {
	type item MediaItem
	b, err := json.Marshal(item(m))
	if err != nil || len(m.Extra) == 0 {
		return b, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if itemFields[k] {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// UnmarshalJSON decodes typed fields and collects the remaining keys in Extra.
func (m *MediaItem) UnmarshalJSON(data []byte) error {
	type item MediaItem
	var v item
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for k, raw := range fields {
		if itemFields[k] {
			continue
		}
		var x any
		if err := json.Unmarshal(raw, &x); err != nil {
			return err
		}
		if v.Extra == nil {
			v.Extra = make(map[string]any)
		}
		v.Extra[k] = x
	}

	*m = MediaItem(v)
	return nil
}
