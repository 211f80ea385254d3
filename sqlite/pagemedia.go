package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/pagemedia"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ pagemedia.PageMediaService = (*PageMediaService)(nil)

// PageMediaService implements pagemedia.PageMediaService using SQLite.
// Items are stored as a JSON array in their serialized item shape.
type PageMediaService struct {
	db *DB
}

// NewPageMediaService creates a new PageMediaService.
func NewPageMediaService(db *DB) *PageMediaService {
	return &PageMediaService{db: db}
}

// SavePageMedia creates or replaces the media list stored for page.Title.
// A replaced row keeps its original ID. FetchedAt defaults to now.
func (s *PageMediaService) SavePageMedia(ctx context.Context, page *pagemedia.PageMedia) error {
	if err := page.Validate(); err != nil {
		return err
	}

	items, err := encodeItems(page.Items)
	if err != nil {
		return err
	}

	if page.ID == "" {
		page.ID = uuid.New().String()
	}
	if page.FetchedAt.IsZero() {
		page.FetchedAt = time.Now()
	}
	page.FetchedAt = page.FetchedAt.UTC().Truncate(time.Second)

	var id string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO page_media (id, title, source_url, content_hash, items, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			source_url = excluded.source_url,
			content_hash = excluded.content_hash,
			items = excluded.items,
			fetched_at = excluded.fetched_at
		RETURNING id
	`, page.ID, page.Title, page.SourceURL, page.ContentHash, items,
		page.FetchedAt.Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}
	page.ID = id

	return nil
}

// FindPageMediaByTitle retrieves the media list cached for title.
func (s *PageMediaService) FindPageMediaByTitle(ctx context.Context, title string) (*pagemedia.PageMedia, error) {
	pages, err := s.FindPageMedia(ctx, pagemedia.PageMediaFilter{Title: &title, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, pagemedia.Errorf(pagemedia.ENOTFOUND, "page media not found")
	}
	return pages[0], nil
}

// FindPageMedia retrieves cached pages matching the filter, most recently
// fetched first.
func (s *PageMediaService) FindPageMedia(ctx context.Context, filter pagemedia.PageMediaFilter) ([]*pagemedia.PageMedia, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, source_url, content_hash, items, fetched_at FROM page_media WHERE 1=1")

	if filter.Title != nil {
		query.WriteString(" AND title = ?")
		args = append(args, *filter.Title)
	}

	query.WriteString(" ORDER BY fetched_at DESC, title ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*pagemedia.PageMedia
	for rows.Next() {
		page, err := scanPageMedia(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}

// DeletePageMedia removes the media list cached for title.
func (s *PageMediaService) DeletePageMedia(ctx context.Context, title string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM page_media WHERE title = ?", title)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return pagemedia.Errorf(pagemedia.ENOTFOUND, "page media not found")
	}

	return nil
}

func scanPageMedia(rows *sql.Rows) (*pagemedia.PageMedia, error) {
	var page pagemedia.PageMedia
	var items, fetchedAt string

	if err := rows.Scan(&page.ID, &page.Title, &page.SourceURL, &page.ContentHash, &items, &fetchedAt); err != nil {
		return nil, err
	}

	var err error
	if page.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if page.Items, err = decodeItems(items); err != nil {
		return nil, err
	}

	return &page, nil
}

func encodeItems(items []*pagemedia.MediaItem) (string, error) {
	if items == nil {
		items = []*pagemedia.MediaItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode items: %w", err)
	}
	return string(b), nil
}

func decodeItems(data string) ([]*pagemedia.MediaItem, error) {
	var items []*pagemedia.MediaItem
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}
