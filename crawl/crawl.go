// Package crawl provides page media crawling orchestration.
// It coordinates fetching, extraction, metadata lookup, merging, and
// storage of the media lists of article pages.
package crawl

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/pagemedia"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages processed at once when
// Crawler.Concurrency is not set.
const DefaultConcurrency = 4

// Crawler orchestrates the crawling of article pages.
//
// Fetcher and Extractor are required. Metadata, Cache, Store, and Limiter
// are optional; a nil Metadata merges an empty lookup, a nil Cache disables
// both reuse and persistence of results in the cache.
type Crawler struct {
	Fetcher     pagemedia.Fetcher
	Extractor   pagemedia.Extractor
	Metadata    pagemedia.MetadataService
	Cache       pagemedia.PageMediaService
	Store       pagemedia.PageMediaStore
	Limiter     pagemedia.HostLimiter
	BaseURL     string
	Concurrency int
	RetryDelays []time.Duration

	// RetryLog, if set, is called for each retried fetch.
	RetryLog LogFunc
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Saved  int
	Failed int
	Cached int

	// Pages holds the media list of each distinct requested title in
	// input order. Entries for failed titles are nil.
	Pages []*pagemedia.PageMedia
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Title     string
	Items     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressCached
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// pageResult holds the outcome of processing a single title.
type pageResult struct {
	position int
	page     *pagemedia.PageMedia
	cached   bool
	err      error
}

// CrawlPages fetches and extracts the media lists of the given page titles.
// Failures of individual pages are counted and reported through progress;
// they never abort the crawl. An error is returned only when ctx is done.
func (c *Crawler) CrawlPages(ctx context.Context, titles []string, progress ProgressFunc) (*Result, error) {
	titles = distinctTitles(titles)
	if len(titles) == 0 {
		return &Result{}, nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	// Channel for collecting results
	resultCh := make(chan pageResult, len(titles))

	var completed atomic.Int64
	total := len(titles)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, title := range titles {
			g.Go(func() error {
				resultCh <- c.processTitle(gctx, i, title)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	result := &Result{Pages: make([]*pagemedia.PageMedia, len(titles))}
	for r := range resultCh {
		event := ProgressEvent{
			Completed: int(completed.Add(1)),
			Total:     total,
			Title:     titles[r.position],
		}

		if r.err == nil {
			r.err = c.save(ctx, r)
		}

		switch {
		case r.err != nil:
			result.Failed++
			event.Type = ProgressFailed
			event.Error = r.err
		case r.cached:
			result.Cached++
			result.Pages[r.position] = r.page
			event.Type = ProgressCached
			event.Items = len(r.page.Items)
		default:
			result.Saved++
			result.Pages[r.position] = r.page
			event.Type = ProgressCompleted
			event.Items = len(r.page.Items)
		}

		if progress != nil {
			progress(event)
		}
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

// save persists a processed page. Cache hits are not written back to the
// cache but still go to the store.
func (c *Crawler) save(ctx context.Context, r pageResult) error {
	if c.Cache != nil && !r.cached {
		if err := c.Cache.SavePageMedia(ctx, r.page); err != nil {
			return fmt.Errorf("caching %s: %w", r.page.Title, err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Save(ctx, r.page); err != nil {
			return fmt.Errorf("storing %s: %w", r.page.Title, err)
		}
	}
	return nil
}

// processTitle fetches and processes a single page.
func (c *Crawler) processTitle(ctx context.Context, position int, title string) pageResult {
	result := pageResult{position: position}

	pageURL := pagemedia.PageURL(c.BaseURL, title)
	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		result.err = err
		return result
	}
	hash := ComputeHash(html)

	if c.Cache != nil {
		cached, err := c.Cache.FindPageMediaByTitle(ctx, title)
		if err == nil && cached.ContentHash == hash {
			result.page = cached
			result.cached = true
			return result
		}
		if err != nil && pagemedia.ErrorCode(err) != pagemedia.ENOTFOUND {
			result.err = err
			return result
		}
	}

	items, err := c.Extractor.Extract(html)
	if err != nil {
		result.err = err
		return result
	}

	lookup := pagemedia.MetadataLookup{}
	if names := pagemedia.Titles(items); c.Metadata != nil && len(names) > 0 {
		lookup, err = c.Metadata.FindMetadata(ctx, names)
		if err != nil {
			result.err = fmt.Errorf("metadata for %s: %w", title, err)
			return result
		}
	}
	items = pagemedia.Merge(lookup, items)

	result.page = &pagemedia.PageMedia{
		Title:       title,
		SourceURL:   pageURL,
		ContentHash: hash,
		Items:       items,
		FetchedAt:   time.Now().UTC(),
	}
	return result
}

// fetch retrieves rawURL with retry, waiting on the host limiter before
// every attempt.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	delays := c.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	var host string
	if c.Limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return "", pagemedia.Errorf(pagemedia.EINVALID, "invalid page URL %q", rawURL)
		}
		host = u.Host
	}

	fetchFn := func(ctx context.Context, url string) (string, error) {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return c.Fetcher.Fetch(ctx, url)
	}
	return FetchWithRetryDelays(ctx, rawURL, fetchFn, c.RetryLog, delays)
}

// distinctTitles normalizes titles and drops blanks and repeats, keeping
// the first occurrence.
func distinctTitles(titles []string) []string {
	seen := make(map[string]bool, len(titles))
	out := make([]string, 0, len(titles))
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" || seen[title] {
			continue
		}
		seen[title] = true
		out = append(out, title)
	}
	return out
}
