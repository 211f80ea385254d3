package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/pagemedia"
	"github.com/fwojciec/pagemedia/crawl"
	"github.com/fwojciec/pagemedia/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	PageMedia pagemedia.PageMediaService
	Extractor pagemedia.Extractor
	Metadata  pagemedia.MetadataService
	Converter pagemedia.Converter
	Crawler   *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose           bool          `short:"v" help:"Log operations and skipped media to stderr"`
	Endpoint          string        `env:"PAGEMEDIA_ENDPOINT" default:"https://en.wikipedia.org/api/rest_v1/page/html" help:"Base URL of the rendered article endpoint"`
	MetadataEndpoint  string        `env:"PAGEMEDIA_METADATA_ENDPOINT" help:"File metadata endpoint; metadata is not merged when empty"`
	Timeout           time.Duration `default:"10s" help:"HTTP request timeout"`
	RequestsPerSecond float64       `name:"rps" default:"5" help:"Requests per second per host"`
	MinSize           int           `default:"48" help:"Minimum image width and height in pixels"`
	MaxWidth          int           `default:"1280" help:"Images wider than this are scaled down (0 disables)"`

	Extract ExtractCmd `cmd:"" help:"Extract media items from an HTML file"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch articles and cache their media items"`
	List    ListCmd    `cmd:"" help:"List cached pages"`
	Show    ShowCmd    `cmd:"" help:"Print the cached media items of a page"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a cached page"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	File     string `arg:"" default:"-" help:"HTML file to read, or - for stdin"`
	Metadata string `short:"m" type:"existingfile" help:"JSON file mapping titles to metadata"`
	Raw      bool   `help:"Keep duplicate items"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Titles      []string `arg:"" help:"Article titles"`
	Out         string   `short:"o" help:"Also write one JSON file per page to this directory"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent page limit"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Limit int `short:"n" help:"Maximum number of pages to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Title    string `arg:"" help:"Article title"`
	Markdown bool   `help:"Print a Markdown list with captions instead of JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Title string `arg:"" help:"Article title"`
	Force bool   `help:"Confirm deletion"`
}
