package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflict queda reservado para concurrencia optimista si algún
	// día se agrega un token de versión. Hoy el contrato es
	// last-write-wins y nadie lo levanta.
	ErrConflict = errors.New("conflict")
)

// ClinicDirectory valida que exista la clínica que un visitante
// anónimo nombró en la creación pública.
type ClinicDirectory interface {
	Exists(ctx context.Context, clinicID string) (bool, error)
}

// PetDirectory valida que una mascota pertenezca al tenant del
// operador en la creación autenticada.
type PetDirectory interface {
	ExistsInClinic(ctx context.Context, petID, clinicID string) (bool, error)
}

type Service struct {
	repo    Repository
	clinics ClinicDirectory
	pets    PetDirectory
	now     func() time.Time
}

func NewService(repo Repository, clinics ClinicDirectory, pets PetDirectory) *Service {
	return &Service{
		repo:    repo,
		clinics: clinics,
		pets:    pets,
		now:     time.Now,
	}
}

// CreationContext distingue quién origina la creación. Son dos
// constructores de un mismo tipo alimentando una sola validación:
// las asimetrías entre ambos modos quedan explícitas en Create.
type CreationContext struct {
	public   bool
	clinicID string
}

// ByClinic: operador autenticado. El clinicID sale del resolver de
// sesión; cualquier clinicId del body se ignora.
func ByClinic(clinicID string) CreationContext {
	return CreationContext{public: false, clinicID: clinicID}
}

// ByVisitor: visitante anónimo que escaneó la página pública de una
// mascota. El clinicID viene del body y se valida contra el registro.
func ByVisitor(clinicID string) CreationContext {
	return CreationContext{public: true, clinicID: strings.TrimSpace(clinicID)}
}

type CreateInput struct {
	PetID      string
	DateTime   time.Time
	PetName    string
	OwnerName  string
	OwnerPhone string
	Notes      string
}

// Create produce siempre un agendamiento en pending.
func (s *Service) Create(ctx context.Context, cc CreationContext, in CreateInput) (Appointment, error) {
	if in.DateTime.IsZero() ||
		strings.TrimSpace(in.PetName) == "" ||
		strings.TrimSpace(in.OwnerName) == "" ||
		strings.TrimSpace(in.OwnerPhone) == "" {
		return Appointment{}, ErrInvalidInput
	}

	petID := strings.TrimSpace(in.PetID)

	if cc.public {
		if cc.clinicID == "" {
			return Appointment{}, ErrInvalidInput
		}
		ok, err := s.clinics.Exists(ctx, cc.clinicID)
		if err != nil {
			return Appointment{}, err
		}
		if !ok {
			return Appointment{}, ErrNotFound
		}
		// En modo público el petId NO se valida contra la clínica:
		// el visitante llegó desde la página de esa mascota y se le
		// cree la referencia. Asimetría intencional, no un bug.
	} else {
		if cc.clinicID == "" {
			return Appointment{}, ErrInvalidInput
		}
		if petID != "" {
			ok, err := s.pets.ExistsInClinic(ctx, petID, cc.clinicID)
			if err != nil {
				return Appointment{}, err
			}
			if !ok {
				// 404 y no 403: no confirmamos que la mascota exista
				// en otra clínica.
				return Appointment{}, ErrNotFound
			}
		}
	}

	now := s.now()
	a := Appointment{
		ID:         uuid.NewString(),
		PetID:      petID,
		ClinicID:   cc.clinicID,
		DateTime:   in.DateTime,
		PetName:    strings.TrimSpace(in.PetName),
		OwnerName:  strings.TrimSpace(in.OwnerName),
		OwnerPhone: strings.TrimSpace(in.OwnerPhone),
		Notes:      strings.TrimSpace(in.Notes),
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetForClinic(ctx context.Context, clinicID, id string) (Appointment, error) {
	a, err := s.repo.GetByIDForClinic(ctx, strings.TrimSpace(id), clinicID)
	if err != nil {
		return Appointment{}, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListByClinic(ctx context.Context, clinicID string, f ListFilter) ([]Appointment, error) {
	if f.Status != "" && !ValidStatus(f.Status) {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByClinic(ctx, clinicID, f)
}

type UpdateInput struct {
	// nil = conservar el valor actual; nunca se pisa con cero.
	Status   *Status
	Notes    *string
	DateTime *time.Time
}

// Update aplica cambios parciales. El cambio de status pasa por la
// máquina de estados y re-confirma ownership (el fetch ya viene
// scopeado por id + clinic_id).
func (s *Service) Update(ctx context.Context, clinicID, id string, in UpdateInput) (Appointment, error) {
	current, err := s.repo.GetByIDForClinic(ctx, strings.TrimSpace(id), clinicID)
	if err != nil {
		return Appointment{}, ErrNotFound
	}

	if in.Status != nil {
		next := *in.Status
		if !ValidStatus(next) {
			return Appointment{}, ErrInvalidInput
		}
		if !CanTransition(current.Status, next) {
			return Appointment{}, ErrInvalidTransition
		}
		current.Status = next
	}
	if in.Notes != nil {
		current.Notes = strings.TrimSpace(*in.Notes)
	}
	if in.DateTime != nil {
		if in.DateTime.IsZero() {
			return Appointment{}, ErrInvalidInput
		}
		current.DateTime = *in.DateTime
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Appointment{}, err
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	if err := s.repo.Delete(ctx, strings.TrimSpace(id), clinicID); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	return s.repo.CountByClinic(ctx, clinicID)
}

func (s *Service) CountPendingByClinic(ctx context.Context, clinicID string) (int, error) {
	return s.repo.CountByClinicAndStatus(ctx, clinicID, StatusPending)
}
