package pagemedia

import (
	"context"
	"encoding/json"
	"sort"
)

// Metadata holds extra fields for one file page, as returned by a
// metadata lookup.
type Metadata map[string]any

// MetadataLookup maps file page titles to their metadata.
type MetadataLookup map[string]Metadata

// MetadataService resolves metadata for file page titles.
type MetadataService interface {
	// FindMetadata returns metadata for the given titles. Titles without
	// metadata are absent from the returned lookup.
	FindMetadata(ctx context.Context, titles []string) (MetadataLookup, error)
}

// Titles returns the distinct non-empty item titles in item order.
func Titles(items []*MediaItem) []string {
	seen := make(map[string]struct{}, len(items))
	var titles []string
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		if _, ok := seen[item.Title]; ok {
			continue
		}
		seen[item.Title] = struct{}{}
		titles = append(titles, item.Title)
	}
	return titles
}

// Merge combines items with a metadata lookup keyed by title. Metadata
// fields are shallow-merged into the item with the matching title, then the
// title is removed. Items carrying video sources lose their original, since
// the sources are authoritative for playback. The input items are not
// modified.
func Merge(lookup MetadataLookup, items []*MediaItem) []*MediaItem {
	merged := make([]*MediaItem, 0, len(items))
	for _, item := range items {
		out := item.clone()
		if out.Title != "" {
			if meta, ok := lookup[out.Title]; ok {
				out = mergeMetadata(out, meta)
			}
			out.Title = ""
		}
		if len(out.Sources) > 0 {
			out.Original = nil
		}
		merged = append(merged, out)
	}
	return merged
}

// mergeMetadata applies metadata fields to item. Fields without a typed
// counterpart land in Extra; typed fields are replaced when the value
// decodes into them and left untouched otherwise.
func mergeMetadata(item *MediaItem, meta Metadata) *MediaItem {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		// The title is dropped after merging.
		if k == "title" {
			continue
		}
		if !itemFields[k] {
			if item.Extra == nil {
				item.Extra = make(map[string]any, len(meta))
			}
			item.Extra[k] = meta[k]
			continue
		}
		replaceField(item, k, meta[k])
	}
	return item
}

// replaceField sets the typed field named key to value, reporting false
// and leaving the field untouched if value does not decode into it.
func replaceField(item *MediaItem, key string, value any) bool {
	raw, err := json.Marshal(value)
	if err != nil {
		return false
	}
	switch key {
	case "leadImage":
		return decodeField(raw, &item.LeadImage)
	case "sectionId":
		return decodeField(raw, &item.SectionID)
	case "type":
		return decodeField(raw, &item.Type)
	case "caption":
		return decodeField(raw, &item.Caption)
	case "startTime":
		return decodeField(raw, &item.StartTime)
	case "endTime":
		return decodeField(raw, &item.EndTime)
	case "thumbTime":
		return decodeField(raw, &item.ThumbTime)
	case "audioType":
		return decodeField(raw, &item.AudioType)
	case "galleryId":
		return decodeField(raw, &item.GalleryID)
	case "sources":
		return decodeField(raw, &item.Sources)
	case "showInGallery":
		return decodeField(raw, &item.ShowInGallery)
	case "srcset":
		return decodeField(raw, &item.Srcset)
	case "original":
		return decodeField(raw, &item.Original)
	}
	return false
}

// decodeField decodes raw into a fresh T and stores it in dst on success.
func decodeField[T any](raw []byte, dst *T) bool {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	*dst = v
	return true
}
