package mock

import "github.com/fwojciec/pagemedia"

var _ pagemedia.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of pagemedia.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]*pagemedia.MediaItem, error)
}

func (e *Extractor) Extract(html string) ([]*pagemedia.MediaItem, error) {
	return e.ExtractFn(html)
}
