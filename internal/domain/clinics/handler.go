package clinics

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Contacto público de la clínica (lo consume la página pública de mascota)
	r.Get("/clinics/{clinicID}", getClinicContactHandler(svc))
}

type contactResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func getClinicContactHandler(svc *Service) http.HandlerFunc {
	// Público: solo name/phone/address, nunca el registro completo.
	return func(w http.ResponseWriter, r *http.Request) {
		clinicID := chi.URLParam(r, "clinicID")

		c, err := svc.Contact(r.Context(), clinicID)
		if err != nil {
			http.Error(w, "clinic not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, contactResponse{
			Name:    c.Name,
			Phone:   c.Phone,
			Address: c.Address,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
