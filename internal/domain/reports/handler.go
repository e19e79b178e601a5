package reports

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"petsafe-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reports/export", exportHandler(svc))
}

func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		switch r.URL.Query().Get("type") {
		case "pets":
			rows, err := svc.ExportPets(r.Context(), claims.ClinicID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, rows)

		case "appointments":
			rows, err := svc.ExportAppointments(r.Context(), claims.ClinicID)
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			writeJSON(w, http.StatusOK, rows)

		default:
			http.Error(w, "unsupported report type", http.StatusBadRequest)
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
