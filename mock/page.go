package mock

import (
	"context"

	"github.com/fwojciec/pagemedia"
)

// Compile-time interface verification.
var (
	_ pagemedia.PageMediaService = (*PageMediaService)(nil)
	_ pagemedia.PageMediaStore   = (*PageMediaStore)(nil)
)

// PageMediaService is a mock implementation of pagemedia.PageMediaService.
type PageMediaService struct {
	SavePageMediaFn        func(ctx context.Context, page *pagemedia.PageMedia) error
	FindPageMediaByTitleFn func(ctx context.Context, title string) (*pagemedia.PageMedia, error)
	FindPageMediaFn        func(ctx context.Context, filter pagemedia.PageMediaFilter) ([]*pagemedia.PageMedia, error)
	DeletePageMediaFn      func(ctx context.Context, title string) error
}

func (s *PageMediaService) SavePageMedia(ctx context.Context, page *pagemedia.PageMedia) error {
	return s.SavePageMediaFn(ctx, page)
}

func (s *PageMediaService) FindPageMediaByTitle(ctx context.Context, title string) (*pagemedia.PageMedia, error) {
	return s.FindPageMediaByTitleFn(ctx, title)
}

func (s *PageMediaService) FindPageMedia(ctx context.Context, filter pagemedia.PageMediaFilter) ([]*pagemedia.PageMedia, error) {
	return s.FindPageMediaFn(ctx, filter)
}

func (s *PageMediaService) DeletePageMedia(ctx context.Context, title string) error {
	return s.DeletePageMediaFn(ctx, title)
}

// PageMediaStore is a mock implementation of pagemedia.PageMediaStore.
type PageMediaStore struct {
	SaveFn   func(ctx context.Context, page *pagemedia.PageMedia) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageMediaStore) Save(ctx context.Context, page *pagemedia.PageMedia) error {
	return s.SaveFn(ctx, page)
}

func (s *PageMediaStore) Commit() error {
	return s.CommitFn()
}

func (s *PageMediaStore) Abort() error {
	return s.AbortFn()
}
