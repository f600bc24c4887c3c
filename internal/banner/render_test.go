package banner

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const testPage = `<!DOCTYPE html><html><head><title>t</title></head><body><p id="content">hello</p></body></html>`

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(testPage)
	require.NoError(t, err)
	return doc
}

// bodyChildren returns a short description of each element child of <body>:
// the variant for banners, the id otherwise.
func bodyChildren(doc *Document) []string {
	var out []string
	for c := doc.Body().FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if HasClass(c, MarkerClass) {
			out = append(out, string(VariantOf(c)))
			continue
		}
		id, _ := Attr(c, "id")
		out = append(out, "#"+id)
	}
	return out
}

func TestRender_Mapping(t *testing.T) {
	expected := map[Level]Variant{
		LevelUnclassified:     VariantUnclassified,
		LevelUnclassifiedFOUO: VariantUnclassified,
		LevelConfidentialNF:   VariantConfidential,
		LevelConfidential2P:   VariantConfidential,
		LevelSecretNF:         VariantSecret,
		LevelSecret2P:         VariantSecret,
		LevelTopSecretNF:      VariantTopSecretYellow,
		LevelTopSecret2P:      VariantTopSecretYellow,
	}

	for _, level := range Levels() {
		t.Run(string(level), func(t *testing.T) {
			doc := newTestDoc(t)
			NewRenderer(quietLogger()).Render(doc, Settings{Level: level})

			label, _ := level.Label()
			banners := doc.Banners()
			require.Len(t, banners, 2)
			for _, b := range banners {
				assert.Equal(t, label, TextContent(b))
				assert.Equal(t, expected[level], VariantOf(b))
			}
			assert.Equal(t, []string{string(expected[level]), "#content", string(expected[level])}, bodyChildren(doc))
		})
	}
}

func TestRender_Idempotent(t *testing.T) {
	doc := newTestDoc(t)
	r := NewRenderer(quietLogger())
	s := Settings{Level: LevelSecret2P, Dynamic: true, DynamicBanner: true}

	r.Render(doc, s)
	first := doc.String()
	r.Render(doc, s)

	assert.Len(t, doc.Banners(), 4)
	assert.Equal(t, first, doc.String())
}

func TestRender_ReplacesPreviousBanners(t *testing.T) {
	doc := newTestDoc(t)
	r := NewRenderer(quietLogger())

	r.Render(doc, Settings{Level: LevelTopSecretNF, Dynamic: true, DynamicBanner: true})
	r.Render(doc, Settings{Level: LevelConfidentialNF})

	assert.Equal(t, []string{"Conf", "#content", "Conf"}, bodyChildren(doc))
}

func TestRender_DynamicFolding(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: LevelSecret2P, Dynamic: true})

	banners := doc.Banners()
	require.Len(t, banners, 2)
	for _, b := range banners {
		assert.Equal(t, "DYNAMIC PAGE - HIGHEST POSSIBLE CLASSIFICATION IS SECRET//REL TO USA, AUS, CAN, GBR, NZL", TextContent(b))
		assert.Equal(t, VariantSecret, VariantOf(b))
	}
}

func TestRender_DynamicSeparation(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: LevelSecret2P, Dynamic: true, DynamicBanner: true})

	assert.Equal(t, []string{"Dynamic", "Secret", "#content", "Secret", "Dynamic"}, bodyChildren(doc))

	for _, b := range doc.Banners() {
		switch VariantOf(b) {
		case VariantDynamic:
			assert.Equal(t, DynamicText, TextContent(b))
		case VariantSecret:
			assert.Equal(t, "SECRET//REL TO USA, AUS, CAN, GBR, NZL", TextContent(b))
		default:
			t.Fatalf("unexpected variant %q", VariantOf(b))
		}
	}
}

func TestRender_DynamicBannerWithoutDynamicIsIgnored(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: LevelSecretNF, DynamicBanner: true})

	assert.Equal(t, []string{"Secret", "#content", "Secret"}, bodyChildren(doc))
	assert.Equal(t, "SECRET//NOFORN", TextContent(doc.Banners()[0]))
}

func TestRender_OrangeToggle(t *testing.T) {
	doc := newTestDoc(t)
	r := NewRenderer(quietLogger())

	r.Render(doc, Settings{Level: LevelTopSecretNF, TSOrange: true})
	assert.Equal(t, VariantTopSecretOrange, VariantOf(doc.Banners()[0]))

	r.Render(doc, Settings{Level: LevelTopSecretNF})
	assert.Equal(t, VariantTopSecretYellow, VariantOf(doc.Banners()[0]))
}

func TestRender_KnownFamilyUnknownCodeIsBlank(t *testing.T) {
	var logs strings.Builder
	doc := newTestDoc(t)
	NewRenderer(slog.New(slog.NewTextHandler(&logs, nil))).Render(doc, Settings{Level: "S-UNLISTED"})

	banners := doc.Banners()
	require.Len(t, banners, 2)
	assert.Equal(t, "", TextContent(banners[0]))
	assert.Equal(t, VariantSecret, VariantOf(banners[0]))
	assert.Contains(t, logs.String(), "label left blank")
}

func TestRender_UnknownFamilyDrawsNoBanner(t *testing.T) {
	var logs strings.Builder
	doc := newTestDoc(t)
	NewRenderer(slog.New(slog.NewTextHandler(&logs, nil))).Render(doc, Settings{Level: "X-NF"})

	assert.Empty(t, doc.Banners())
	assert.Contains(t, logs.String(), "banner omitted")
	assert.NotContains(t, logs.String(), "label left blank")
}

func TestRender_UnknownFamilyStillDrawsDynamicBanner(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: "X", Dynamic: true, DynamicBanner: true})

	assert.Equal(t, []string{"Dynamic", "#content", "Dynamic"}, bodyChildren(doc))
}

func TestRender_Serialized(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: LevelConfidential2P})

	out := doc.String()
	assert.Contains(t, out, `<div class="classBanner Conf">CONFIDENTIAL//REL TO USA, AUS, CAN, GBR, NZL</div>`)
	assert.True(t, strings.Index(out, "classBanner") < strings.Index(out, `id="content"`))
}

func TestSetHidden(t *testing.T) {
	doc := newTestDoc(t)
	NewRenderer(quietLogger()).Render(doc, Settings{Level: LevelUnclassified})

	SetHidden(doc, true)
	for _, b := range doc.Banners() {
		assert.True(t, IsHidden(b))
	}

	SetHidden(doc, false)
	for _, b := range doc.Banners() {
		assert.False(t, IsHidden(b))
		_, ok := Attr(b, "style")
		assert.False(t, ok)
	}
}

func TestLinkStylesheet_Once(t *testing.T) {
	doc := newTestDoc(t)

	doc.LinkStylesheet("/static/classification.css")
	doc.LinkStylesheet("/static/classification.css")

	assert.Equal(t, 1, strings.Count(doc.String(), `href="/static/classification.css"`))
}
