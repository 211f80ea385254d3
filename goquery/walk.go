package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pagemedia"
	"golang.org/x/net/html"
)

// Ensure Extractor implements pagemedia.Extractor at compile time.
var _ pagemedia.Extractor = (*Extractor)(nil)

// Extractor collects media items from rendered article HTML.
//
// Every element of the body is visited once in document order and passed
// through classification, eligibility and per-variant extraction. A node
// that fails extraction is skipped; the rest of the document is unaffected.
type Extractor struct {
	// Images decides image eligibility and rescaling.
	// Defaults to NewImagePolicy().
	Images ImagePolicy

	// Spoken reports whether an audio node belongs to the spoken version of
	// the article. Defaults to InSpokenSection.
	Spoken RegionFunc

	// OnSkip, if set, is called for each node skipped because of an
	// extraction error.
	OnSkip func(variant pagemedia.MediaVariant, err error)

	// KeepDuplicates disables deduplication in Extract.
	KeepDuplicates bool
}

// NewExtractor creates an Extractor with the default image policy and
// spoken section detection.
func NewExtractor() *Extractor {
	return &Extractor{
		Images: NewImagePolicy(),
		Spoken: InSpokenSection,
	}
}

// Extract parses content and returns its media items in document order,
// deduplicated unless KeepDuplicates is set.
func (e *Extractor) Extract(content string) ([]*pagemedia.MediaItem, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, pagemedia.Errorf(pagemedia.EINVALID, "failed to parse HTML: %v", err)
	}

	items, err := e.Collect(doc)
	if err != nil || e.KeepDuplicates {
		return items, err
	}
	return pagemedia.Dedupe(items), nil
}

// Collect walks the document body in pre-order and returns every extracted
// item, duplicates included. The image policy may rescale image elements of
// doc in place.
func (e *Extractor) Collect(doc *goquery.Document) ([]*pagemedia.MediaItem, error) {
	if doc == nil || doc.Length() == 0 {
		return nil, pagemedia.Errorf(pagemedia.EINVALID, "empty document")
	}

	root := doc.Find("body").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	var items []*pagemedia.MediaItem
	stack := []*html.Node{root.Get(0)}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Type == html.ElementNode {
			if item, ok := e.visit(doc.FindNodes(n)); ok {
				items = append(items, item)
			}
		}

		// Push children in reverse so the first child is visited next.
		for c := n.LastChild; c != nil; c = c.PrevSibling {
			if c.Type == html.ElementNode {
				stack = append(stack, c)
			}
		}
	}
	return items, nil
}

// visit runs one element through classification, eligibility and extraction.
func (e *Extractor) visit(node *goquery.Selection) (*pagemedia.MediaItem, bool) {
	variant := Classify(node)
	if variant == pagemedia.VariantUnknown {
		return nil, false
	}

	resource := ResourceElement(variant, node)
	if !Eligible(variant, node, resource, e.images()) {
		return nil, false
	}

	item, err := e.extractItem(variant, node, resource)
	if err != nil {
		if e.OnSkip != nil {
			e.OnSkip(variant, err)
		}
		return nil, false
	}
	return item, true
}

func (e *Extractor) images() ImagePolicy {
	if e.Images == nil {
		return NewImagePolicy()
	}
	return e.Images
}

func (e *Extractor) spoken() RegionFunc {
	if e.Spoken == nil {
		return InSpokenSection
	}
	return e.Spoken
}
