package pagemedia

// Converter converts HTML fragments, such as caption HTML, to Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
