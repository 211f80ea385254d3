package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagemedia"
)

// Ensure LoggingMetadataService implements pagemedia.MetadataService.
var _ pagemedia.MetadataService = (*LoggingMetadataService)(nil)

// LoggingMetadataService wraps a MetadataService with logging.
type LoggingMetadataService struct {
	next   pagemedia.MetadataService
	logger *slog.Logger
}

// NewLoggingMetadataService creates a new LoggingMetadataService.
func NewLoggingMetadataService(next pagemedia.MetadataService, logger *slog.Logger) *LoggingMetadataService {
	return &LoggingMetadataService{next: next, logger: logger}
}

// FindMetadata delegates to the wrapped service and logs hit counts.
func (s *LoggingMetadataService) FindMetadata(ctx context.Context, titles []string) (lookup pagemedia.MetadataLookup, err error) {
	defer func(begin time.Time) {
		s.logger.Info("metadata lookup",
			"titles", len(titles),
			"found", len(lookup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindMetadata(ctx, titles)
}
