package mock

import (
	"context"

	"github.com/fwojciec/pagemedia"
)

var _ pagemedia.MetadataService = (*MetadataService)(nil)

// MetadataService is a mock implementation of pagemedia.MetadataService.
type MetadataService struct {
	FindMetadataFn func(ctx context.Context, titles []string) (pagemedia.MetadataLookup, error)
}

func (s *MetadataService) FindMetadata(ctx context.Context, titles []string) (pagemedia.MetadataLookup, error) {
	return s.FindMetadataFn(ctx, titles)
}
