package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"petsafe-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard/stats", statsHandler(svc))
}

type statsResponse struct {
	TotalPets           int `json:"total_pets"`
	TotalAppointments   int `json:"total_appointments"`
	PendingAppointments int `json:"pending_appointments"`
	LostPets            int `json:"lost_pets"`
}

func statsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := svc.Stats(r.Context(), claims.ClinicID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, statsResponse{
			TotalPets:           st.TotalPets,
			TotalAppointments:   st.TotalAppointments,
			PendingAppointments: st.PendingAppointments,
			LostPets:            st.LostPets,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
