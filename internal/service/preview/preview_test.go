package preview

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LeadDesk/entity"
)

type fakeGetter struct {
	prop *entity.Property
	err  error
}

func (f *fakeGetter) Get(ctx context.Context, id int64) (*entity.Property, error) {
	return f.prop, f.err
}

func newResponder(getter PropertyGetter) *Responder {
	return NewResponder(getter, "Heleno Alves", "https://helenoalves.com.br", slog.New(slog.DiscardHandler))
}

func TestIsCrawler(t *testing.T) {
	crawlers := []string{
		"facebookexternalhit/1.1 (+http://www.facebook.com/externalhit_uatext.php)",
		"WhatsApp/2.23.20 A",
		"Twitterbot/1.0",
		"Mozilla/5.0 (compatible; LinkedInBot/1.0)",
		"TelegramBot (like TwitterBot)",
	}
	for _, ua := range crawlers {
		assert.True(t, IsCrawler(ua), ua)
	}

	browsers := []string{
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Safari/604.1",
		"",
	}
	for _, ua := range browsers {
		assert.False(t, IsCrawler(ua), ua)
	}
}

func TestMatchPath(t *testing.T) {
	slug, id, ok := MatchPath("/empreendimento/residencial-vista-mar/42")
	require.True(t, ok)
	assert.Equal(t, "residencial-vista-mar", slug)
	assert.Equal(t, int64(42), id)

	for _, path := range []string{
		"/",
		"/empreendimento/vista-mar",
		"/empreendimento/vista-mar/abc",
		"/empreendimento/vista-mar/42/extra",
		"/blog/empreendimento/vista-mar/42",
	} {
		_, _, ok := MatchPath(path)
		assert.False(t, ok, path)
	}
}

func TestRespondRendersOpenGraphForCrawler(t *testing.T) {
	r := newResponder(&fakeGetter{prop: &entity.Property{
		ID:          42,
		Slug:        "residencial-vista-mar",
		Title:       "Residencial Vista Mar",
		Description: "Apartamentos frente mar em Itajaí",
		CoverImage:  "https://cdn.example.com/vista-mar.jpg",
	}})

	html, ok, err := r.Respond(context.Background(), "/empreendimento/residencial-vista-mar/42", "facebookexternalhit/1.1")
	require.NoError(t, err)
	require.True(t, ok)

	assert.Contains(t, html, `<meta property="og:title" content="Residencial Vista Mar | Heleno Alves">`)
	assert.Contains(t, html, `<meta property="og:description" content="Apartamentos frente mar em Itajaí">`)
	assert.Contains(t, html, `<meta property="og:image" content="https://cdn.example.com/vista-mar.jpg">`)
	assert.Contains(t, html, `<meta property="og:url" content="https://helenoalves.com.br/empreendimento/residencial-vista-mar/42">`)
	assert.Contains(t, html, `twitter:card`)
}

func TestRespondPassThroughForBrowser(t *testing.T) {
	r := newResponder(&fakeGetter{prop: &entity.Property{Slug: "a", Title: "A"}})

	_, ok, err := r.Respond(context.Background(), "/empreendimento/a/1", "Mozilla/5.0 Chrome/120.0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRespondPassThroughForOtherPaths(t *testing.T) {
	r := newResponder(&fakeGetter{prop: &entity.Property{Slug: "a", Title: "A"}})

	_, ok, err := r.Respond(context.Background(), "/sobre", "facebookexternalhit/1.1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRespondPropagatesFetchError(t *testing.T) {
	r := newResponder(&fakeGetter{err: fmt.Errorf("backend down")})

	_, ok, err := r.Respond(context.Background(), "/empreendimento/a/1", "facebookexternalhit/1.1")
	require.Error(t, err)
	assert.False(t, ok)
}
