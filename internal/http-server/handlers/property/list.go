package property

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

// List proxies a filtered, paginated listing query.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page, _ := strconv.Atoi(q.Get("page"))
		perPage, _ := strconv.Atoi(q.Get("per_page"))
		filter := entity.PropertyFilter{
			City: q.Get("city"),
			Type: q.Get("type"),
		}

		result, err := handler.ListProperties(r.Context(), page, perPage, filter)
		if err != nil {
			log.With(sl.Err(err)).Error("list properties")
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("Failed to load properties"))
			return
		}

		render.JSON(w, r, result)
	}
}

// Get fetches a single listing by id.
func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid property id"))
			return
		}

		prop, err := handler.GetProperty(r.Context(), id)
		if err != nil {
			log.With(sl.Err(err), slog.Int64("id", id)).Error("get property")
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Property not found"))
			return
		}

		render.JSON(w, r, prop)
	}
}
