package goquery_test

import (
	"testing"

	"github.com/fwojciec/pagemedia"
	pmgoquery "github.com/fwojciec/pagemedia/goquery"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want pagemedia.MediaVariant
	}{
		{
			name: "file with image child is image",
			html: `<figure id="n" typeof="mw:File/Thumb"><a><img src="a.jpg"></a><figcaption>A</figcaption></figure>`,
			want: pagemedia.VariantImage,
		},
		{
			name: "legacy image indicator is image",
			html: `<span id="n" typeof="mw:Image"><img src="a.jpg"></span>`,
			want: pagemedia.VariantImage,
		},
		{
			name: "file with video child is video",
			html: `<figure id="n" typeof="mw:File/Frameless"><video><source src="a.webm"></video></figure>`,
			want: pagemedia.VariantVideo,
		},
		{
			name: "file with audio child is audio",
			html: `<span id="n" typeof="mw:File"><audio><source src="a.ogg"></audio></span>`,
			want: pagemedia.VariantAudio,
		},
		{
			name: "audio indicator with video child is audio",
			html: `<span id="n" typeof="mw:Audio"><video><source src="a.ogg"></video></span>`,
			want: pagemedia.VariantAudio,
		},
		{
			name: "image child takes priority over video child",
			html: `<figure id="n" typeof="mw:File"><video></video><img src="a.jpg"></figure>`,
			want: pagemedia.VariantImage,
		},
		{
			name: "broken media placeholder is unknown",
			html: `<span id="n" typeof="mw:Error mw:File"><a><span class="mw-broken-media">File:Missing.jpg</span></a></span>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "file without media child is unknown",
			html: `<span id="n" typeof="mw:File"><a>nothing</a></span>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "media indicator requires whole token",
			html: `<span id="n" typeof="mw:Filename"><img src="a.jpg"></span>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "media indicator is case sensitive",
			html: `<span id="n" typeof="mw:file"><img src="a.jpg"></span>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "timeline extension is timeline image",
			html: `<div id="n" typeof="mw:Extension/timeline"><img src="t.png"></div>`,
			want: pagemedia.VariantTimelineImage,
		},
		{
			name: "other indicators are unknown",
			html: `<span id="n" typeof="mw:Transclusion"><img src="a.jpg"></span>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "media link is pronunciation",
			html: `<a id="n" rel="mw:MediaLink" href="//upload/a.ogg">listen</a>`,
			want: pagemedia.VariantPronunciation,
		},
		{
			name: "media link among other relations is pronunciation",
			html: `<a id="n" rel="nofollow mw:MediaLink" href="//upload/a.ogg">listen</a>`,
			want: pagemedia.VariantPronunciation,
		},
		{
			name: "type indicator takes priority over media link",
			html: `<a id="n" typeof="mw:Transclusion" rel="mw:MediaLink" href="//upload/a.ogg">listen</a>`,
			want: pagemedia.VariantUnknown,
		},
		{
			name: "inline math fallback is math image",
			html: `<img id="n" class="mwe-math-fallback-image-inline" src="m.svg">`,
			want: pagemedia.VariantMathImage,
		},
		{
			name: "display math fallback is math image",
			html: `<img id="n" class="mwe-math-fallback-image-display" src="m.svg">`,
			want: pagemedia.VariantMathImage,
		},
		{
			name: "media link takes priority over math class",
			html: `<a id="n" rel="mw:MediaLink" class="mwe-math-fallback-image-inline">x</a>`,
			want: pagemedia.VariantPronunciation,
		},
		{
			name: "plain element is unknown",
			html: `<div id="n"><img src="a.jpg"></div>`,
			want: pagemedia.VariantUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			node := selectFirst(t, tt.html, "#n")

			assert.Equal(t, tt.want, pmgoquery.Classify(node))
		})
	}

	t.Run("empty selection is unknown", func(t *testing.T) {
		t.Parallel()

		node := selectFirst(t, `<div id="n"></div>`, "#n").Find("img")

		assert.Equal(t, pagemedia.VariantUnknown, pmgoquery.Classify(node))
	})
}

func TestResourceElement(t *testing.T) {
	t.Parallel()

	t.Run("returns first image for image nodes", func(t *testing.T) {
		t.Parallel()

		node := selectFirst(t, `<figure id="n" typeof="mw:File"><img id="first" src="a.jpg"><img id="second" src="b.jpg"></figure>`, "#n")

		res := pmgoquery.ResourceElement(pagemedia.VariantImage, node)

		assert.Equal(t, "first", res.AttrOr("id", ""))
	})

	t.Run("falls back to video element for audio nodes", func(t *testing.T) {
		t.Parallel()

		node := selectFirst(t, `<span id="n" typeof="mw:Audio"><video id="v"></video></span>`, "#n")

		res := pmgoquery.ResourceElement(pagemedia.VariantAudio, node)

		assert.Equal(t, "v", res.AttrOr("id", ""))
	})

	t.Run("returns the node itself for media links and math images", func(t *testing.T) {
		t.Parallel()

		link := selectFirst(t, `<a id="n" rel="mw:MediaLink">x</a>`, "#n")
		math := selectFirst(t, `<img id="n" class="mwe-math-fallback-image-inline">`, "#n")

		assert.Equal(t, link.Get(0), pmgoquery.ResourceElement(pagemedia.VariantPronunciation, link).Get(0))
		assert.Equal(t, math.Get(0), pmgoquery.ResourceElement(pagemedia.VariantMathImage, math).Get(0))
	})

	t.Run("returns empty selection when the child is missing", func(t *testing.T) {
		t.Parallel()

		node := selectFirst(t, `<div id="n" typeof="mw:Extension/timeline"><map></map></div>`, "#n")

		res := pmgoquery.ResourceElement(pagemedia.VariantTimelineImage, node)

		assert.Equal(t, 0, res.Length())
	})

	t.Run("returns empty selection for unknown nodes", func(t *testing.T) {
		t.Parallel()

		node := selectFirst(t, `<div id="n"><img></div>`, "#n")

		res := pmgoquery.ResourceElement(pagemedia.VariantUnknown, node)

		assert.Equal(t, 0, res.Length())
	})
}
