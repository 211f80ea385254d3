package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/pagemedia"
)

// Ensure LoggingExtractor implements pagemedia.Extractor.
var _ pagemedia.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   pagemedia.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next pagemedia.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the item count.
func (e *LoggingExtractor) Extract(html string) (items []*pagemedia.MediaItem, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"bytes", len(html),
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// SkipLogger returns a hook for goquery.Extractor.OnSkip that logs skipped
// nodes at debug level.
func SkipLogger(logger *slog.Logger) func(variant pagemedia.MediaVariant, err error) {
	return func(variant pagemedia.MediaVariant, err error) {
		logger.Debug("skip media node",
			"variant", variant.String(),
			"err", err,
		)
	}
}
