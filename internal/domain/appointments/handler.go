package appointments

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"petsafe-api/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		// POST /appointments?public=true => modo visitante (sin sesión)
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))

		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Put("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

type createAppointmentRequest struct {
	PetID      string `json:"pet_id"`
	ClinicID   string `json:"clinic_id"` // solo se mira en modo público
	DateTime   string `json:"date_time"` // RFC3339
	PetName    string `json:"pet_name"`
	OwnerName  string `json:"owner_name"`
	OwnerPhone string `json:"owner_phone"`
	Notes      string `json:"notes"`
}

type updateAppointmentRequest struct {
	// Punteros para update parcial: nil = no tocar.
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
	DateTime *string `json:"date_time"` // RFC3339
}

type appointmentResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"pet_id,omitempty"`
	ClinicID   string    `json:"clinic_id"`
	DateTime   time.Time `json:"date_time"`
	PetName    string    `json:"pet_name"`
	OwnerName  string    `json:"owner_name"`
	OwnerPhone string    `json:"owner_phone"`
	Notes      string    `json:"notes"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// createAppointmentHandler godoc
// @Summary Crear agendamiento
// @Description Crea una solicitud de cita en estado pending. Con `?public=true` la crea un visitante anónimo (sin sesión) y el `clinic_id` del body es obligatorio. Sin el flag, la crea un operador autenticado y el `clinic_id` del body se ignora: manda la sesión. Autenticación: `X-Debug-Clinic-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-Clinic-ID header string false "Solo en modo dev, ID de clínica para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param public query bool false "true = creación pública de visitante"
// @Param payload body createAppointmentRequest true "Datos de la cita; date_time en formato RFC3339"
// @Success 201 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / date_time inválido / campos requeridos"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "clinic or pet not found"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		dt, err := parseDateTime(req.DateTime)
		if err != nil {
			http.Error(w, "date_time must be RFC3339", http.StatusBadRequest)
			return
		}

		var cc CreationContext
		if r.URL.Query().Get("public") == "true" {
			cc = ByVisitor(req.ClinicID)
		} else {
			claims, ok := middleware.GetClaims(r.Context())
			if !ok || strings.TrimSpace(claims.ClinicID) == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			// El clinic_id del body se ignora siempre: manda la sesión.
			cc = ByClinic(claims.ClinicID)
		}

		a, err := svc.Create(r.Context(), cc, CreateInput{
			PetID:      req.PetID,
			DateTime:   dt,
			PetName:    req.PetName,
			OwnerName:  req.OwnerName,
			OwnerPhone: req.OwnerPhone,
			Notes:      req.Notes,
		})
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "date_time, pet_name, owner_name, owner_phone (and clinic_id if public) are required", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "clinic or pet not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar agendamientos de la clínica
// @Description Lista las citas del tenant, dateTime descendente. Filtros opcionales por status y por día calendario.
// @Tags appointments
// @Produce json
// @Param X-Debug-Clinic-ID header string false "Solo en modo dev, ID de clínica para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param status query string false "pending | confirmed | canceled"
// @Param date query string false "Día calendario, formato YYYY-MM-DD"
// @Success 200 {array} appointmentResponse
// @Failure 400 {string} string "filtro inválido"
// @Failure 401 {string} string "unauthorized"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var f ListFilter
		if v := r.URL.Query().Get("status"); v != "" {
			f.Status = Status(v)
		}
		if v := r.URL.Query().Get("date"); v != "" {
			d, err := time.Parse("2006-01-02", v)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			f.Date = &d
		}

		items, err := svc.ListByClinic(r.Context(), claims.ClinicID, f)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "unsupported status filter", http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := make([]appointmentResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAppointmentResponse(a))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		a, err := svc.GetForClinic(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID"))
		if err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

// updateAppointmentHandler godoc
// @Summary Actualizar agendamiento
// @Description Update parcial: los campos omitidos se conservan. El cambio de status pasa por la máquina de estados (pending => confirmed/canceled, confirmed => canceled, canceled => confirmed; repetir el status actual es un no-op).
// @Tags appointments
// @Accept json
// @Produce json
// @Param X-Debug-Clinic-ID header string false "Solo en modo dev, ID de clínica para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param appointmentID path string true "ID del agendamiento"
// @Param payload body updateAppointmentRequest true "Cambios; date_time en formato RFC3339"
// @Success 200 {object} appointmentResponse
// @Failure 400 {string} string "invalid json / status no soportado / transición no permitida"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "appointment not found"
// @Router /appointments/{appointmentID} [put]
func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var in UpdateInput
		if req.Status != nil {
			st := Status(strings.TrimSpace(*req.Status))
			in.Status = &st
		}
		in.Notes = req.Notes
		if req.DateTime != nil {
			dt, err := parseDateTime(*req.DateTime)
			if err != nil || dt.IsZero() {
				http.Error(w, "date_time must be RFC3339", http.StatusBadRequest)
				return
			}
			in.DateTime = &dt
		}

		a, err := svc.Update(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID"), in)
		if err != nil {
			switch err {
			case ErrInvalidInput:
				http.Error(w, "unsupported status", http.StatusBadRequest)
			case ErrInvalidTransition:
				http.Error(w, "status transition not allowed", http.StatusBadRequest)
			case ErrNotFound:
				http.Error(w, "appointment not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toAppointmentResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.ClinicID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), claims.ClinicID, chi.URLParam(r, "appointmentID")); err != nil {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "appointment deleted"})
	}
}

func parseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toAppointmentResponse(a Appointment) appointmentResponse {
	return appointmentResponse{
		ID:         a.ID,
		PetID:      a.PetID,
		ClinicID:   a.ClinicID,
		DateTime:   a.DateTime,
		PetName:    a.PetName,
		OwnerName:  a.OwnerName,
		OwnerPhone: a.OwnerPhone,
		Notes:      a.Notes,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// writeJSON duplicado a propósito (mismo criterio que en pets).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
