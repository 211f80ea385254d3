// Package htmltomarkdown renders caption HTML as Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/pagemedia"
)

// Ensure Converter implements pagemedia.Converter at compile time.
var _ pagemedia.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert caption HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into single-line Markdown.
// Line breaks inside the fragment collapse to spaces so the result fits in
// a list item.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", pagemedia.Errorf(pagemedia.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return strings.Join(strings.Fields(result), " "), nil
}

// RenderPage renders a page's media list as a Markdown document: a heading
// with the page title and one list item per media item.
func RenderPage(conv pagemedia.Converter, page *pagemedia.PageMedia) (string, error) {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(page.Title)
	b.WriteString("\n\n")

	for _, item := range page.Items {
		b.WriteString("- ")
		name := item.Key()
		if name == "" {
			name = "(untitled)"
		}
		b.WriteString("`")
		b.WriteString(name)
		b.WriteString("` (")
		b.WriteString(item.Type)
		if item.AudioType != "" {
			b.WriteString(", ")
			b.WriteString(string(item.AudioType))
		}
		b.WriteString(")")

		if item.Caption != nil && item.Caption.HTML != "" {
			caption, err := conv.Convert(item.Caption.HTML)
			if err != nil {
				return "", err
			}
			b.WriteString(": ")
			b.WriteString(caption)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}
