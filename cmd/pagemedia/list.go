package main

import (
	"fmt"

	"github.com/fwojciec/pagemedia"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	pages, err := deps.PageMedia.FindPageMedia(deps.Ctx, pagemedia.PageMediaFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemedia.ErrorMessage(err))
		return err
	}

	if len(pages) == 0 {
		fmt.Fprintln(deps.Stdout, "No pages cached. Use 'pagemedia fetch' to add some.")
		return nil
	}

	for _, p := range pages {
		fmt.Fprintf(deps.Stdout, "%s  %3d items  %s\n", p.FetchedAt.Format("2006-01-02 15:04"), len(p.Items), p.Title)
	}

	return nil
}
