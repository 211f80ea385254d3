package pagemedia

// Dedupe drops items whose key (see MediaItem.Key) was already seen,
// keeping the first occurrence and the original order. Items without a key
// are always kept.
func Dedupe(items []*MediaItem) []*MediaItem {
	seen := make(map[string]struct{}, len(items))
	deduped := make([]*MediaItem, 0, len(items))
	for _, item := range items {
		if key := item.Key(); key != "" {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
		}
		deduped = append(deduped, item)
	}
	return deduped
}
