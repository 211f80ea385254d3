package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/pagemedia"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, err := c.readInput(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	items, err := deps.Extractor.Extract(html)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", pagemedia.ErrorMessage(err))
		return err
	}

	lookup, err := c.lookup(deps, items)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	return writeJSON(deps.Stdout, pagemedia.Merge(lookup, items))
}

func (c *ExtractCmd) readInput(stdin io.Reader) (string, error) {
	if c.File == "" || c.File == "-" {
		b, err := io.ReadAll(stdin)
		return string(b), err
	}
	b, err := os.ReadFile(c.File)
	return string(b), err
}

// lookup returns metadata from the --metadata file when given, otherwise
// from the metadata service when one is configured. Without a source the
// lookup is empty.
func (c *ExtractCmd) lookup(deps *Dependencies, items []*pagemedia.MediaItem) (pagemedia.MetadataLookup, error) {
	if c.Metadata != "" {
		b, err := os.ReadFile(c.Metadata)
		if err != nil {
			return nil, err
		}
		var lookup pagemedia.MetadataLookup
		if err := json.Unmarshal(b, &lookup); err != nil {
			return nil, pagemedia.Errorf(pagemedia.EINVALID, "invalid metadata file %q: %v", c.Metadata, err)
		}
		return lookup, nil
	}

	titles := pagemedia.Titles(items)
	if deps.Metadata == nil || len(titles) == 0 {
		return pagemedia.MetadataLookup{}, nil
	}
	return deps.Metadata.FindMetadata(deps.Ctx, titles)
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
