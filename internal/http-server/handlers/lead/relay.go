package lead

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/render"

	"LeadDesk/entity"
	"LeadDesk/internal/lib/api/response"
	"LeadDesk/internal/lib/sl"
)

type RelayResponse struct {
	Status string `json:"status"`
	CrmId  string `json:"crm_id,omitempty"`
}

// Relay accepts a lead from the site contact form and forwards it to
// the CRM. Failures surface as JSON errors so the form can show them.
func Relay(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lead entity.Lead
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid request body"))
			return
		}

		crmId, err := handler.RelayLead(r.Context(), lead)
		if err != nil {
			log.With(sl.Err(err)).Error("relay lead")
			if strings.Contains(err.Error(), "invalid lead") {
				render.Status(r, http.StatusUnprocessableEntity)
				render.JSON(w, r, response.Error("Lead validation failed"))
				return
			}
			render.Status(r, http.StatusBadGateway)
			render.JSON(w, r, response.Error("Failed to forward lead"))
			return
		}

		render.JSON(w, r, RelayResponse{Status: response.StatusOK, CrmId: crmId})
	}
}

// List returns the most recent archived leads for the admin console.
func List(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		leads, err := handler.ListLeads(r.Context(), limit)
		if err != nil {
			log.With(sl.Err(err)).Error("list leads")
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list leads"))
			return
		}

		render.JSON(w, r, leads)
	}
}
