package main

import (
	"fmt"

	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/htmltomarkdown"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	page, err := deps.PageMedia.FindPageMediaByTitle(deps.Ctx, c.Title)
	if pagemedia.ErrorCode(err) == pagemedia.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: page %q not cached. Use 'pagemedia fetch' first.\n", c.Title)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemedia.ErrorMessage(err))
		return err
	}

	if !c.Markdown {
		return writeJSON(deps.Stdout, page.Items)
	}

	md, err := htmltomarkdown.RenderPage(deps.Converter, page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemedia.ErrorMessage(err))
		return err
	}
	_, err = fmt.Fprint(deps.Stdout, md)
	return err
}
