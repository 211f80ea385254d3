package pagemedia

import "strings"

// DefaultScale is the density descriptor assumed when a candidate has none.
const DefaultScale = "1x"

// ParseSrcset parses a srcset-style attribute into responsive descriptors.
// Entries are separated by commas; each is "<url> [descriptor]". Missing
// descriptors default to DefaultScale and blank entries are dropped.
func ParseSrcset(attr string) []SrcsetEntry {
	var entries []SrcsetEntry
	for _, candidate := range strings.Split(attr, ",") {
		parts := strings.Fields(strings.TrimSpace(candidate))
		if len(parts) == 0 {
			continue
		}
		scale := DefaultScale
		if len(parts) > 1 {
			scale = parts[1]
		}
		entries = append(entries, SrcsetEntry{Src: parts[0], Scale: scale})
	}
	return entries
}

// ImageSrcset combines an image's src and srcset attributes into one
// descriptor list, src-derived entries first. Returns nil when both are empty.
func ImageSrcset(src, srcset string) []SrcsetEntry {
	entries := ParseSrcset(src)
	return append(entries, ParseSrcset(srcset)...)
}
