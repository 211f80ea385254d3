package main

import (
	"fmt"

	"github.com/fwojciec/pagemedia"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return pagemedia.Errorf(pagemedia.EINVALID, "use --force to confirm deletion")
	}

	err := deps.PageMedia.DeletePageMedia(deps.Ctx, c.Title)
	if pagemedia.ErrorCode(err) == pagemedia.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: page %q not found. Use 'pagemedia list' to see cached pages.\n", c.Title)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemedia.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted page %q\n", c.Title)
	return nil
}
