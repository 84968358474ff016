package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"LeadDesk/entity"
	"LeadDesk/impl/core"
	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type TranscriptResponse struct {
	SessionID string               `json:"session_id"`
	Messages  []entity.ChatMessage `json:"messages"`
}

// Transcript returns the session's message log in order.
func Transcript(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		messages, err := handler.SessionTranscript(r.Context(), sessionID)
		if errors.Is(err, core.ErrSessionNotFound) {
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Session not found"))
			return
		}
		if err != nil {
			log.With(sl.Err(err), slog.String("session_id", sessionID)).Error("get transcript")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to load transcript"))
			return
		}

		render.JSON(w, r, TranscriptResponse{SessionID: sessionID, Messages: messages})
	}
}

// Close tears down the session: timers cancelled, state and transcript
// wiped. Closing an unknown session succeeds; the outcome is the same.
func Close(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := chi.URLParam(r, "session")

		if err := handler.CloseSession(r.Context(), sessionID); err != nil {
			log.With(sl.Err(err), slog.String("session_id", sessionID)).Error("close session")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to close session"))
			return
		}

		render.JSON(w, r, response.OK())
	}
}
