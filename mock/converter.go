package mock

import "github.com/fwojciec/pagemedia"

var _ pagemedia.Converter = (*Converter)(nil)

// Converter is a mock implementation of pagemedia.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
