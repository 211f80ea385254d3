package pagemedia

import "strings"

// ParseMIMEType splits a source type attribute such as
// `video/webm; codecs="vp9, opus"` into its base MIME type and codec list.
// The codec list is nil when the attribute has no "; " segment or names
// no codecs.
func ParseMIMEType(s string) (mime string, codecs []string) {
	mime, params, found := strings.Cut(s, "; ")
	mime = strings.TrimSpace(mime)
	if !found {
		return mime, nil
	}

	// Prefer the quoted value; fall back to whatever follows "codecs=".
	list := params
	if start := strings.IndexByte(params, '"'); start >= 0 {
		list = params[start+1:]
		if end := strings.IndexByte(list, '"'); end >= 0 {
			list = list[:end]
		}
	} else if _, after, ok := strings.Cut(params, "codecs="); ok {
		list = after
	}

	for _, codec := range strings.Split(list, ",") {
		codec = strings.TrimSpace(codec)
		if codec != "" {
			codecs = append(codecs, codec)
		}
	}
	return mime, codecs
}
