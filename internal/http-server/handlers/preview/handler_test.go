package preview

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCore struct {
	html string
	ok   bool
	err  error
}

func (f *fakeCore) PropertyPreview(ctx context.Context, path, userAgent string) (string, bool, error) {
	return f.html, f.ok, f.err
}

func TestPropertyServesCrawlerHTML(t *testing.T) {
	h := Property(slog.New(slog.DiscardHandler), &fakeCore{html: "<html>og</html>", ok: true}, "https://helenoalves.com.br")

	req := httptest.NewRequest(http.MethodGet, "/empreendimento/vista-mar/42", nil)
	req.Header.Set("User-Agent", "facebookexternalhit/1.1")
	rec := httptest.NewRecorder()

	h(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=3600, s-maxage=86400", rec.Header().Get("Cache-Control"))
	assert.Equal(t, "<html>og</html>", rec.Body.String())
}

func TestPropertyPassThroughRedirects(t *testing.T) {
	h := Property(slog.New(slog.DiscardHandler), &fakeCore{ok: false}, "https://helenoalves.com.br")

	req := httptest.NewRequest(http.MethodGet, "/empreendimento/vista-mar/42", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://helenoalves.com.br/empreendimento/vista-mar/42", rec.Header().Get("Location"))
}

func TestPropertyErrorFallsBackToRedirect(t *testing.T) {
	h := Property(slog.New(slog.DiscardHandler), &fakeCore{err: fmt.Errorf("backend down")}, "https://helenoalves.com.br")

	req := httptest.NewRequest(http.MethodGet, "/empreendimento/vista-mar/42", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "https://helenoalves.com.br/empreendimento/vista-mar/42", rec.Header().Get("Location"))
}
