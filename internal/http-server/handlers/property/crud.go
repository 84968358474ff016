package property

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type CreateResponse struct {
	Id int64 `json:"id"`
}

// Create registers a new listing.
func Create(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var prop entity.Property
		if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		id, err := handler.CreateProperty(r.Context(), &prop)
		if err != nil {
			log.With(sl.Err(err)).Error("create property")
			writeServiceError(w, r, err)
			return
		}

		render.JSON(w, r, CreateResponse{Id: id})
	}
}

// Update overwrites a listing; the path id wins over the body id.
func Update(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid property id"))
			return
		}

		var prop entity.Property
		if err := json.NewDecoder(r.Body).Decode(&prop); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}
		prop.ID = id

		if err := handler.UpdateProperty(r.Context(), &prop); err != nil {
			log.With(sl.Err(err), slog.Int64("id", id)).Error("update property")
			writeServiceError(w, r, err)
			return
		}

		render.JSON(w, r, response.OK())
	}
}

// Delete removes a listing.
func Delete(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid property id"))
			return
		}

		if err := handler.DeleteProperty(r.Context(), id); err != nil {
			log.With(sl.Err(err), slog.Int64("id", id)).Error("delete property")
			writeServiceError(w, r, err)
			return
		}

		render.JSON(w, r, response.OK())
	}
}

func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if strings.Contains(err.Error(), "invalid property") {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("Property validation failed"))
		return
	}
	render.Status(r, http.StatusBadGateway)
	render.JSON(w, r, response.Error("Automation backend error"))
}
