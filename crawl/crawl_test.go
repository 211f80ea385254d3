package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/crawl"
	"github.com/fwojciec/pagemedia/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBaseURL = "https://en.wikipedia.org/api/rest_v1/page/html"

// pageHTML is the article returned by staticFetcher for every title.
const pageHTML = `<body><figure typeof="mw:File"><img resource="./File:A.jpg"></figure></body>`

func staticFetcher() *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (string, error) {
			return pageHTML, nil
		},
	}
}

func oneItemExtractor() *mock.Extractor {
	return &mock.Extractor{
		ExtractFn: func(_ string) ([]*pagemedia.MediaItem, error) {
			return []*pagemedia.MediaItem{
				{Title: "File:A.jpg", Type: pagemedia.TypeImage, ShowInGallery: true},
			}, nil
		},
	}
}

// memoryCache is an in-memory PageMediaService for crawl tests.
func memoryCache(pages ...*pagemedia.PageMedia) (*mock.PageMediaService, func() map[string]*pagemedia.PageMedia) {
	var mu sync.Mutex
	byTitle := make(map[string]*pagemedia.PageMedia)
	for _, p := range pages {
		byTitle[p.Title] = p
	}
	svc := &mock.PageMediaService{
		FindPageMediaByTitleFn: func(_ context.Context, title string) (*pagemedia.PageMedia, error) {
			mu.Lock()
			defer mu.Unlock()
			if p, ok := byTitle[title]; ok {
				return p, nil
			}
			return nil, pagemedia.Errorf(pagemedia.ENOTFOUND, "page media not found")
		},
		SavePageMediaFn: func(_ context.Context, page *pagemedia.PageMedia) error {
			mu.Lock()
			defer mu.Unlock()
			byTitle[page.Title] = page
			return nil
		},
	}
	snapshot := func() map[string]*pagemedia.PageMedia {
		mu.Lock()
		defer mu.Unlock()
		out := make(map[string]*pagemedia.PageMedia, len(byTitle))
		for k, v := range byTitle {
			out[k] = v
		}
		return out
	}
	return svc, snapshot
}

func TestCrawler_CrawlPages(t *testing.T) {
	t.Parallel()

	t.Run("returns zero result for no titles", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher:   &mock.Fetcher{},
			Extractor: &mock.Extractor{},
		}

		result, err := c.CrawlPages(context.Background(), []string{" ", ""}, nil)

		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Empty(t, result.Pages)
	})

	t.Run("fetches, extracts, merges, and saves a page", func(t *testing.T) {
		t.Parallel()

		var fetchedURL string
		var metadataTitles []string
		cache, snapshot := memoryCache()
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetchedURL = url
					return pageHTML, nil
				},
			},
			Extractor: oneItemExtractor(),
			Metadata: &mock.MetadataService{
				FindMetadataFn: func(_ context.Context, titles []string) (pagemedia.MetadataLookup, error) {
					metadataTitles = titles
					return pagemedia.MetadataLookup{
						"File:A.jpg": {"license": "CC0"},
					}, nil
				},
			},
			Cache:       cache,
			BaseURL:     testBaseURL,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Solar eclipse"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, testBaseURL+"/Solar_eclipse", fetchedURL)
		assert.Equal(t, []string{"File:A.jpg"}, metadataTitles)

		require.Len(t, result.Pages, 1)
		page := result.Pages[0]
		assert.Equal(t, "Solar eclipse", page.Title)
		assert.Equal(t, testBaseURL+"/Solar_eclipse", page.SourceURL)
		assert.Equal(t, crawl.ComputeHash(pageHTML), page.ContentHash)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "CC0", page.Items[0].Extra["license"])
		assert.Empty(t, page.Items[0].Title)

		assert.Contains(t, snapshot(), "Solar eclipse")
	})

	t.Run("merges an empty lookup without a metadata service", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher:     staticFetcher(),
			Extractor:   oneItemExtractor(),
			BaseURL:     testBaseURL,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Solar eclipse"}, nil)

		require.NoError(t, err)
		require.Len(t, result.Pages, 1)
		require.Len(t, result.Pages[0].Items, 1)
		item := result.Pages[0].Items[0]
		assert.Empty(t, item.Title)
		assert.Equal(t, pagemedia.TypeImage, item.Type)
		assert.True(t, item.ShowInGallery)
		assert.Nil(t, item.Extra)
	})

	t.Run("reuses cached items when content is unchanged", func(t *testing.T) {
		t.Parallel()

		cached := &pagemedia.PageMedia{
			ID:          "cached-id",
			Title:       "Banana",
			ContentHash: crawl.ComputeHash(pageHTML),
			Items:       []*pagemedia.MediaItem{{Title: "File:Cached.jpg"}},
		}
		cache, _ := memoryCache(cached)
		cache.SavePageMediaFn = func(_ context.Context, _ *pagemedia.PageMedia) error {
			t.Error("cache hit should not be written back")
			return nil
		}

		c := &crawl.Crawler{
			Fetcher: staticFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) ([]*pagemedia.MediaItem, error) {
					t.Error("cache hit should not be extracted")
					return nil, nil
				},
			},
			Cache:       cache,
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Cached)
		assert.Equal(t, 0, result.Saved)
		assert.Same(t, cached, result.Pages[0])
	})

	t.Run("re-extracts when content hash changed", func(t *testing.T) {
		t.Parallel()

		cache, snapshot := memoryCache(&pagemedia.PageMedia{
			Title:       "Banana",
			ContentHash: "stale",
		})
		c := &crawl.Crawler{
			Fetcher:     staticFetcher(),
			Extractor:   oneItemExtractor(),
			Cache:       cache,
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, crawl.ComputeHash(pageHTML), snapshot()["Banana"].ContentHash)
	})

	t.Run("counts failed pages and keeps input order", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == testBaseURL+"/Missing" {
						return "", pagemedia.Errorf(pagemedia.ENOTFOUND, "HTTP 404")
					}
					return pageHTML, nil
				},
			},
			Extractor:   oneItemExtractor(),
			BaseURL:     testBaseURL,
			Concurrency: 3,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Apple", "Missing", "Cherry", "Apple"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 1, result.Failed)
		require.Len(t, result.Pages, 3)
		assert.Equal(t, "Apple", result.Pages[0].Title)
		assert.Nil(t, result.Pages[1])
		assert.Equal(t, "Cherry", result.Pages[2].Title)
	})

	t.Run("fails page when metadata lookup fails", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher:   staticFetcher(),
			Extractor: oneItemExtractor(),
			Metadata: &mock.MetadataService{
				FindMetadataFn: func(_ context.Context, _ []string) (pagemedia.MetadataLookup, error) {
					return nil, errors.New("service unavailable")
				},
			},
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("skips metadata lookup for pages without titled items", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: staticFetcher(),
			Extractor: &mock.Extractor{
				ExtractFn: func(_ string) ([]*pagemedia.MediaItem, error) {
					return []*pagemedia.MediaItem{{Type: pagemedia.TypeImage}}, nil
				},
			},
			Metadata: &mock.MetadataService{
				FindMetadataFn: func(_ context.Context, _ []string) (pagemedia.MetadataLookup, error) {
					t.Error("metadata should not be requested")
					return nil, nil
				},
			},
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
	})

	t.Run("writes pages to store", func(t *testing.T) {
		t.Parallel()

		var stored []string
		c := &crawl.Crawler{
			Fetcher:   staticFetcher(),
			Extractor: oneItemExtractor(),
			Store: &mock.PageMediaStore{
				SaveFn: func(_ context.Context, page *pagemedia.PageMedia) error {
					stored = append(stored, page.Title)
					return nil
				},
			},
			BaseURL:     testBaseURL,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Apple", "Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.ElementsMatch(t, []string{"Apple", "Banana"}, stored)
	})

	t.Run("counts store failures as failed pages", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher:   staticFetcher(),
			Extractor: oneItemExtractor(),
			Store: &mock.PageMediaStore{
				SaveFn: func(_ context.Context, _ *pagemedia.PageMedia) error {
					return errors.New("disk full")
				},
			},
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Apple"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Saved)
		assert.Equal(t, 1, result.Failed)
		assert.Nil(t, result.Pages[0])
	})

	t.Run("waits on host limiter before each fetch", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var hosts []string
		c := &crawl.Crawler{
			Fetcher:   staticFetcher(),
			Extractor: oneItemExtractor(),
			Limiter: &mock.HostLimiter{
				WaitFn: func(_ context.Context, host string) error {
					mu.Lock()
					defer mu.Unlock()
					hosts = append(hosts, host)
					return nil
				},
			},
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		_, err := c.CrawlPages(context.Background(), []string{"Apple", "Banana"}, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"en.wikipedia.org", "en.wikipedia.org"}, hosts)
	})

	t.Run("retries transient fetch errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, _ string) (string, error) {
					attempts++
					if attempts == 1 {
						return "", errors.New("connection reset")
					}
					return pageHTML, nil
				},
			},
			Extractor:   oneItemExtractor(),
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0, 0},
		}

		result, err := c.CrawlPages(context.Background(), []string{"Apple"}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, 2, attempts)
	})

	t.Run("reports progress events", func(t *testing.T) {
		t.Parallel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					if url == testBaseURL+"/Missing" {
						return "", pagemedia.Errorf(pagemedia.ENOTFOUND, "HTTP 404")
					}
					return pageHTML, nil
				},
			},
			Extractor:   oneItemExtractor(),
			BaseURL:     testBaseURL,
			Concurrency: 1,
			RetryDelays: []time.Duration{0},
		}

		var events []crawl.ProgressEvent
		_, err := c.CrawlPages(context.Background(), []string{"Apple", "Missing"}, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)

		var completed, failed int
		for _, e := range events[1:3] {
			switch e.Type {
			case crawl.ProgressCompleted:
				completed++
				assert.Equal(t, "Apple", e.Title)
				assert.Equal(t, 1, e.Items)
			case crawl.ProgressFailed:
				failed++
				assert.Equal(t, "Missing", e.Title)
				assert.Error(t, e.Error)
			}
		}
		assert.Equal(t, 1, completed)
		assert.Equal(t, 1, failed)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := &crawl.Crawler{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, _ string) (string, error) {
					return "", ctx.Err()
				},
			},
			Extractor:   oneItemExtractor(),
			BaseURL:     testBaseURL,
			RetryDelays: []time.Duration{0},
		}

		result, err := c.CrawlPages(ctx, []string{"Apple"}, nil)

		require.ErrorIs(t, err, context.Canceled)
		require.NotNil(t, result)
		assert.Equal(t, 1, result.Failed)
	})
}
