package session

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"LeadDesk/impl/core"
	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type MessageRequest struct {
	Text string `json:"text"`
}

// Message submits one user turn. Free text is accepted verbatim; the
// only rejections are an empty submission, an unknown session, and a
// session already at its terminal step.
func Message(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		var req MessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Message text is required"))
			return
		}

		err := handler.SubmitMessage(r.Context(), sessionID, req.Text)
		switch {
		case errors.Is(err, core.ErrSessionNotFound):
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Session not found"))
			return
		case errors.Is(err, core.ErrSessionCompleted):
			render.Status(r, http.StatusConflict)
			render.JSON(w, r, response.Error("Session already completed"))
			return
		case err != nil:
			log.With(sl.Err(err), slog.String("session_id", sessionID)).Error("submit chat message")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to submit message"))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
