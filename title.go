package pagemedia

import (
	"net/url"
	"strings"
)

// NormalizeTitle converts a resource attribute such as "./File:Foo%20bar.jpg"
// into a page title ("File:Foo bar.jpg"). Malformed escapes are kept as-is.
func NormalizeTitle(resource string) string {
	title := strings.TrimPrefix(strings.TrimSpace(resource), "./")
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	return title
}

// PageURL returns the URL of a page's rendered HTML below base.
// Spaces in the title become underscores.
func PageURL(base, title string) string {
	path := url.PathEscape(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	return strings.TrimRight(base, "/") + "/" + path
}
