package pets

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petsafe-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Pets (operador de clínica)
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))

		// /pets/lost va antes que /pets/{petID} (chi resuelve estático primero,
		// pero mantenerlo junto deja claro que no es un id).
		pr.Get("/lost", listLostPetsHandler(svc))
		pr.Put("/lost", setLostStatusHandler(svc))

		pr.Get("/{petID}", getPetHandler(svc))
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})

	// Perfil público (el id llega por QR, sin sesión)
	r.Get("/p/{petID}", publicPetHandler(svc))
}

type petRequest struct {
	Name         string `json:"name"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	Gender       string `json:"gender"`
	Age          string `json:"age"`
	Color        string `json:"color"`
	OwnerName    string `json:"owner_name"`
	OwnerPhone   string `json:"owner_phone"`
	Photo        string `json:"photo"`
	Observations string `json:"observations"`

	// Solo se mira en PUT; nil = preservar.
	LostStatus *bool `json:"lost_status"`
}

type petResponse struct {
	ID           string    `json:"id"`
	ClinicID     string    `json:"clinic_id"`
	Name         string    `json:"name"`
	Species      string    `json:"species"`
	Breed        string    `json:"breed"`
	Gender       string    `json:"gender"`
	Age          string    `json:"age"`
	Color        string    `json:"color"`
	OwnerName    string    `json:"owner_name"`
	OwnerPhone   string    `json:"owner_phone"`
	Photo        string    `json:"photo,omitempty"`
	Observations string    `json:"observations,omitempty"`
	LostStatus   bool      `json:"lost_status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type clinicContactResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type publicPetResponse struct {
	Pet    petResponse           `json:"pet"`
	Clinic clinicContactResponse `json:"clinic"`
}

type setLostStatusRequest struct {
	PetID      string `json:"pet_id"`
	LostStatus *bool  `json:"lost_status"`
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), claims.ClinicID, CreateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Gender:       req.Gender,
			Age:          req.Age,
			Color:        req.Color,
			OwnerName:    req.OwnerName,
			OwnerPhone:   req.OwnerPhone,
			Photo:        req.Photo,
			Observations: req.Observations,
		})
		if err != nil {
			http.Error(w, "name, species, owner_name and owner_phone are required", http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListByClinic(r.Context(), claims.ClinicID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	// Ruta autenticada y scopeada: mascota de otra clínica => 404,
	// nunca 403 (no confirmamos que exista).
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetForClinic(r.Context(), claims.ClinicID, chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "petID"), UpdateInput{
			Name:         req.Name,
			Species:      req.Species,
			Breed:        req.Breed,
			Gender:       req.Gender,
			Age:          req.Age,
			Color:        req.Color,
			OwnerName:    req.OwnerName,
			OwnerPhone:   req.OwnerPhone,
			Photo:        req.Photo,
			Observations: req.Observations,
			LostStatus:   req.LostStatus,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "name, species, owner_name and owner_phone are required", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "petID")); err != nil {
			switch err {
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "pet deleted"})
	}
}

func setLostStatusHandler(svc *Service) http.HandlerFunc {
	// Boolean explícito, no un flip: el cliente manda el estado deseado.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setLostStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if strings.TrimSpace(req.PetID) == "" || req.LostStatus == nil {
			http.Error(w, "pet_id and lost_status are required", http.StatusBadRequest)
			return
		}

		p, err := svc.SetLostStatus(r.Context(), claims.ClinicID, req.PetID, *req.LostStatus)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func listLostPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// ?public=true => listado cross-tenant, sin sesión
		if r.URL.Query().Get("public") == "true" {
			items, err := svc.ListLostPublic(r.Context())
			if err != nil {
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			out := make([]publicPetResponse, 0, len(items))
			for _, lp := range items {
				out = append(out, toPublicPetResponse(lp.Pet, lp.Clinic.Name, lp.Clinic.Phone, lp.Clinic.Address))
			}

			writeJSON(w, http.StatusOK, out)
			return
		}

		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.ListLostByClinic(r.Context(), claims.ClinicID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func publicPetHandler(svc *Service) http.HandlerFunc {
	// Sin sesión y sin scope de tenant: el id no es enumerable.
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetPublic(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPublicPetResponse(
			profile.Pet,
			profile.Clinic.Name,
			profile.Clinic.Phone,
			profile.Clinic.Address,
		))
	}
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		ClinicID:     p.ClinicID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Gender:       p.Gender,
		Age:          p.Age,
		Color:        p.Color,
		OwnerName:    p.OwnerName,
		OwnerPhone:   p.OwnerPhone,
		Photo:        p.Photo,
		Observations: p.Observations,
		LostStatus:   p.LostStatus,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func toPublicPetResponse(p Pet, clinicName, clinicPhone, clinicAddress string) publicPetResponse {
	return publicPetResponse{
		Pet: toPetResponse(p),
		Clinic: clinicContactResponse{
			Name:    clinicName,
			Phone:   clinicPhone,
			Address: clinicAddress,
		},
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
