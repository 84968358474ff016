package session

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"LeadDesk/internal/ws"
)

// Events upgrades the request to a WebSocket scoped to one session's
// event stream.
func Events(log *slog.Logger, hub *ws.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")
		ws.ServeWS(hub, log, w, r, sessionID)
	}
}
