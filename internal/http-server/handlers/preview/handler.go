package preview

import (
	"context"
	"log/slog"
	"net/http"

	"LeadDesk/internal/lib/sl"
)

// Social previews are immutable enough to cache hard at the edge.
const cacheControl = "public, max-age=3600, s-maxage=86400"

type Core interface {
	PropertyPreview(ctx context.Context, path, userAgent string) (html string, ok bool, err error)
}

// Property serves crawler traffic on property-detail paths with
// server-rendered Open Graph HTML. Everything else passes through to
// the SPA shell at webUrl.
func Property(log *slog.Logger, handler Core, webUrl string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, ok, err := handler.PropertyPreview(r.Context(), r.URL.Path, r.UserAgent())
		if err != nil {
			log.With(sl.Err(err), slog.String("path", r.URL.Path)).Error("render property preview")
			http.Redirect(w, r, webUrl+r.URL.Path, http.StatusFound)
			return
		}
		if !ok {
			// Pass-through: not a crawler, or not a property path.
			http.Redirect(w, r, webUrl+r.URL.Path, http.StatusFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", cacheControl)
		_, _ = w.Write([]byte(html))
	}
}
