package key

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type Core interface {
	GenerateApiKey(username string) (string, error)
}

type GenerateRequest struct {
	Username string `json:"username"`
}

type GenerateResponse struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// Generate issues an API key for a username, reusing an existing one.
func Generate(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Username is required"))
			return
		}

		apiKey, err := handler.GenerateApiKey(req.Username)
		if err != nil {
			log.With(sl.Err(err)).Error("generate api key")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to generate key"))
			return
		}

		render.JSON(w, r, GenerateResponse{Username: req.Username, Key: apiKey})
	}
}
