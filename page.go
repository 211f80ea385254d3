package pagemedia

import (
	"context"
	"time"
)

// PageMedia is the extracted, merged media list of one page.
type PageMedia struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	SourceURL   string       `json:"sourceUrl"`
	ContentHash string       `json:"contentHash"`
	Items       []*MediaItem `json:"items"`
	FetchedAt   time.Time    `json:"fetchedAt"`
}

// Validate returns an error if the page media contains invalid fields.
func (p *PageMedia) Validate() error {
	if p.Title == "" {
		return Errorf(EINVALID, "page title required")
	}
	return nil
}

// PageMediaService represents a service for caching page media lists.
type PageMediaService interface {
	// SavePageMedia creates or replaces the media list stored for the
	// page's title.
	SavePageMedia(ctx context.Context, page *PageMedia) error

	// FindPageMediaByTitle retrieves the media list for a page title.
	// Returns ENOTFOUND if the page is not cached.
	FindPageMediaByTitle(ctx context.Context, title string) (*PageMedia, error)

	// FindPageMedia retrieves cached pages matching the filter, most
	// recently fetched first.
	FindPageMedia(ctx context.Context, filter PageMediaFilter) ([]*PageMedia, error)

	// DeletePageMedia removes the cached media list for a page title.
	// Returns ENOTFOUND if the page is not cached.
	DeletePageMedia(ctx context.Context, title string) error
}

// PageMediaFilter represents a filter for FindPageMedia.
type PageMediaFilter struct {
	Title *string `json:"title"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// PageMediaStore persists page media with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type PageMediaStore interface {
	Save(ctx context.Context, page *PageMedia) error
	Commit() error
	Abort() error
}
