package pagemedia

// Extractor extracts media items from a rendered article.
type Extractor interface {
	// Extract parses the article HTML and returns its media items in
	// document order, deduplicated. A malformed media element is skipped;
	// an error is returned only when the document itself cannot be read.
	Extract(html string) ([]*MediaItem, error)
}
