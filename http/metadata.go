package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/pagemedia"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBatchSize is the number of titles requested per call.
	DefaultBatchSize = 50

	// DefaultMetadataConcurrency bounds the number of batches in flight.
	DefaultMetadataConcurrency = 4
)

// Ensure MetadataService implements pagemedia.MetadataService at compile time.
var _ pagemedia.MetadataService = (*MetadataService)(nil)

// MetadataService looks up file metadata by title from a JSON endpoint.
//
// The endpoint is called as GET <endpoint>?titles=A|B|C and must answer with
// {"items":[{"title":"A", ...}]}. Every field besides title becomes part of
// the title's metadata.
type MetadataService struct {
	endpoint    string
	client      *http.Client
	timeout     time.Duration
	batchSize   int
	concurrency int
}

// MetadataOption configures a MetadataService.
type MetadataOption func(*MetadataService)

// WithHTTPClient sets the client used for requests. The client's own timeout
// is left untouched.
func WithHTTPClient(c *http.Client) MetadataOption {
	return func(s *MetadataService) {
		s.client = c
	}
}

// WithRequestTimeout sets the timeout for each batch request.
func WithRequestTimeout(d time.Duration) MetadataOption {
	return func(s *MetadataService) {
		s.timeout = d
	}
}

// WithBatchSize sets how many titles are sent per request.
func WithBatchSize(n int) MetadataOption {
	return func(s *MetadataService) {
		s.batchSize = n
	}
}

// WithConcurrency sets how many batch requests may run at once.
func WithConcurrency(n int) MetadataOption {
	return func(s *MetadataService) {
		s.concurrency = n
	}
}

// NewMetadataService creates a MetadataService for endpoint.
func NewMetadataService(endpoint string, opts ...MetadataOption) *MetadataService {
	s := &MetadataService{
		endpoint:    endpoint,
		timeout:     DefaultFetchTimeout,
		batchSize:   DefaultBatchSize,
		concurrency: DefaultMetadataConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	if s.batchSize <= 0 {
		s.batchSize = DefaultBatchSize
	}
	if s.concurrency <= 0 {
		s.concurrency = DefaultMetadataConcurrency
	}
	return s
}

// metadataResponse is the wire format of one batch response.
type metadataResponse struct {
	Items []map[string]any `json:"items"`
}

// FindMetadata returns the metadata known for titles. Titles the service
// does not know are absent from the lookup. An empty title list makes no
// request.
func (s *MetadataService) FindMetadata(ctx context.Context, titles []string) (pagemedia.MetadataLookup, error) {
	lookup := make(pagemedia.MetadataLookup)
	if len(titles) == 0 {
		return lookup, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, batch := range chunk(titles, s.batchSize) {
		g.Go(func() error {
			items, err := s.fetchBatch(gctx, batch)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			for _, item := range items {
				title, _ := item["title"].(string)
				if title == "" {
					continue
				}
				delete(item, "title")
				lookup[title] = pagemedia.Metadata(item)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lookup, nil
}

func (s *MetadataService) fetchBatch(ctx context.Context, titles []string) ([]map[string]any, error) {
	u, err := url.Parse(s.endpoint)
	if err != nil {
		return nil, pagemedia.Errorf(pagemedia.EINVALID, "invalid metadata endpoint %q", s.endpoint)
	}
	q := u.Query()
	q.Set("titles", strings.Join(titles, "|"))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, s.endpoint)
	}

	var body metadataResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding metadata response: %w", err)
	}
	return body.Items, nil
}

// chunk splits titles into consecutive slices of at most size elements.
func chunk(titles []string, size int) [][]string {
	var batches [][]string
	for len(titles) > size {
		batches = append(batches, titles[:size:size])
		titles = titles[size:]
	}
	if len(titles) > 0 {
		batches = append(batches, titles)
	}
	return batches
}
