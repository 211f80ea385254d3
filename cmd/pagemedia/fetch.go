package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/crawl"
	"github.com/fwojciec/pagemedia/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	var store pagemedia.PageMediaStore
	if c.Out != "" {
		out := filepath.Clean(c.Out)
		store = fs.NewFileStore(filepath.Dir(out), filepath.Base(out))
		deps.Crawler.Store = store
	}

	progress := func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s (%d items)\n", e.Completed, e.Total, crawl.TruncateTitle(e.Title, 60), e.Items)
		case crawl.ProgressCached:
			fmt.Fprintf(deps.Stdout, "[%d/%d] %s (%d items, unchanged)\n", e.Completed, e.Total, crawl.TruncateTitle(e.Title, 60), e.Items)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] skip %s: %s\n", e.Completed, e.Total, e.Title, failureMessage(e.Error))
		}
	}

	result, err := deps.Crawler.CrawlPages(deps.Ctx, c.Titles, progress)
	if err != nil {
		if store != nil {
			_ = store.Abort()
		}
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if store != nil {
		if result.Saved+result.Cached > 0 {
			if err := store.Commit(); err != nil {
				fmt.Fprintf(deps.Stderr, "error committing: %v\n", err)
				return err
			}
		} else {
			_ = store.Abort()
		}
	}

	fmt.Fprintf(deps.Stdout, "Saved %d, unchanged %d, failed %d\n", result.Saved, result.Cached, result.Failed)

	if result.Failed > 0 {
		return pagemedia.Errorf(pagemedia.EINTERNAL, "%d of %d pages failed", result.Failed, len(result.Pages))
	}
	return nil
}

// failureMessage renders application errors by message and everything
// else verbatim.
func failureMessage(err error) string {
	if code := pagemedia.ErrorCode(err); code != pagemedia.EINTERNAL {
		return pagemedia.ErrorMessage(err)
	}
	return err.Error()
}
