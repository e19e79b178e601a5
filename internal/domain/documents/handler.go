package documents

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petsafe-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/documents", func(dr chi.Router) {
		dr.Post("/", createDocumentHandler(svc))
		dr.Get("/", listDocumentsHandler(svc)) // ?pet_id=...

		dr.Get("/{documentID}", getDocumentHandler(svc))
		dr.Delete("/{documentID}", deleteDocumentHandler(svc))
	})
}

type createDocumentRequest struct {
	PetID    string `json:"pet_id"`
	Name     string `json:"name"`
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

type documentResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id"`
	Name       string    `json:"name"`
	FilePath   string    `json:"file_path"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func createDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		d, err := svc.Create(r.Context(), claims.ClinicID, CreateInput{
			PetID:    req.PetID,
			Name:     req.Name,
			FilePath: req.FilePath,
			FileType: req.FileType,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "pet_id, name, file_path and file_type are required", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toDocumentResponse(d))
	}
}

func listDocumentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := r.URL.Query().Get("pet_id")
		items, err := svc.ListByPet(r.Context(), claims.ClinicID, petID)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "pet_id is required", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := make([]documentResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDocumentResponse(d))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getDocumentHandler(svc *Service) http.HandlerFunc {
	// 404 si el documento no existe; 403 si existe pero es de otra
	// clínica (el id ya probó existencia).
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.GetByID(r.Context(), claims.ClinicID, chi.URLParam(r, "documentID"))
		if err != nil {
			switch err {
			case ErrForbidden:
				http.Error(w, "access to this document denied", http.StatusForbidden)
			default:
				http.Error(w, "document not found", http.StatusNotFound)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDocumentResponse(d))
	}
}

func deleteDocumentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "documentID")); err != nil {
			switch err {
			case ErrForbidden:
				http.Error(w, "access to this document denied", http.StatusForbidden)
			default:
				http.Error(w, "document not found", http.StatusNotFound)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "document deleted"})
	}
}

func toDocumentResponse(d Document) documentResponse {
	return documentResponse{
		ID:         d.ID,
		PetID:      d.PetID,
		Name:       d.Name,
		FilePath:   d.FilePath,
		FileType:   d.FileType,
		UploadedAt: d.UploadedAt,
	}
}

// writeJSON duplicado a propósito (mismo criterio que en pets).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
