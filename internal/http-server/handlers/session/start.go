package session

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type StartRequest struct {
	Source string `json:"source"`
}

type StartResponse struct {
	SessionID string `json:"session_id"`
}

// Start opens a fresh chat session. The greeting turn is scheduled
// before the reply is written, so the widget can connect its socket and
// watch the typing indicator come up.
func Start(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartRequest
		// Body is optional; an empty source falls back to the default.
		_ = json.NewDecoder(r.Body).Decode(&req)

		sessionID, err := handler.StartSession(r.Context(), req.Source)
		if err != nil {
			log.With(sl.Err(err)).Error("start chat session")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to start chat session"))
			return
		}

		render.JSON(w, r, StartResponse{SessionID: sessionID})
	}
}
