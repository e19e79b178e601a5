package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petsafe-api/internal/domain/clinics"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

// ClinicDirectory resuelve el contacto público de una clínica.
// Lo implementa clinics.Service; la interfaz vive acá para poder
// fakearlo en tests.
type ClinicDirectory interface {
	Contact(ctx context.Context, clinicID string) (clinics.Contact, error)
}

// AttachmentPurger borra los documentos de una mascota.
// Lo implementa documents.Service; se inyecta con AttachPurger
// después de construir ambos services (evita ciclo de construcción).
type AttachmentPurger interface {
	PurgeByPet(ctx context.Context, petID string) error
}

type Service struct {
	repo        Repository
	clinicDir   ClinicDirectory
	attachments AttachmentPurger
	now         func() time.Time
}

func NewService(repo Repository, clinicDir ClinicDirectory) *Service {
	return &Service{
		repo:      repo,
		clinicDir: clinicDir,
		now:       time.Now,
	}
}

func (s *Service) AttachPurger(p AttachmentPurger) {
	s.attachments = p
}

type CreateInput struct {
	Name         string
	Species      string
	Breed        string
	Gender       string
	Age          string
	Color        string
	OwnerName    string
	OwnerPhone   string
	Photo        string
	Observations string
}

func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(clinicID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if err := validateRequired(in.Name, in.Species, in.OwnerName, in.OwnerPhone); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:           uuid.NewString(),
		ClinicID:     clinicID,
		Name:         strings.TrimSpace(in.Name),
		Species:      strings.TrimSpace(in.Species),
		Breed:        strings.TrimSpace(in.Breed),
		Gender:       strings.TrimSpace(in.Gender),
		Age:          strings.TrimSpace(in.Age),
		Color:        strings.TrimSpace(in.Color),
		OwnerName:    strings.TrimSpace(in.OwnerName),
		OwnerPhone:   strings.TrimSpace(in.OwnerPhone),
		Photo:        strings.TrimSpace(in.Photo),
		Observations: strings.TrimSpace(in.Observations),
		LostStatus:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// GetForClinic es la lectura autenticada: mascota de otra clínica =>
// ErrNotFound, nunca Forbidden (no confirmamos existencia cruzada).
func (s *Service) GetForClinic(ctx context.Context, clinicID, petID string) (Pet, error) {
	p, err := s.repo.GetByIDForClinic(ctx, strings.TrimSpace(petID), clinicID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

// GetPublic es la proyección pública por id, sin chequeo de tenant.
// El id viaja en el QR y no es enumerable; esa es la barrera.
func (s *Service) GetPublic(ctx context.Context, petID string) (PublicProfile, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return PublicProfile{}, ErrNotFound
	}

	profile := PublicProfile{Pet: p}

	// El contacto de la clínica es best-effort: si falla, la página
	// pública igual muestra la mascota.
	if c, err := s.clinicDir.Contact(ctx, p.ClinicID); err == nil {
		profile.Clinic = c
	}

	return profile, nil
}

func (s *Service) ListByClinic(ctx context.Context, clinicID string) ([]Pet, error) {
	return s.repo.ListByClinic(ctx, clinicID)
}

type UpdateInput struct {
	Name         string
	Species      string
	Breed        string
	Gender       string
	Age          string
	Color        string
	OwnerName    string
	OwnerPhone   string
	Photo        string
	Observations string

	// nil = preservar el valor actual (LostStatus se maneja aparte
	// con SetLostStatus; acá solo se acepta por compatibilidad del PUT).
	LostStatus *bool
}

// Update reescribe el registro completo, scopeado al tenant.
func (s *Service) Update(ctx context.Context, clinicID, petID string, in UpdateInput) (Pet, error) {
	if err := validateRequired(in.Name, in.Species, in.OwnerName, in.OwnerPhone); err != nil {
		return Pet{}, err
	}

	current, err := s.repo.GetByIDForClinic(ctx, strings.TrimSpace(petID), clinicID)
	if err != nil {
		return Pet{}, ErrNotFound
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Species = strings.TrimSpace(in.Species)
	current.Breed = strings.TrimSpace(in.Breed)
	current.Gender = strings.TrimSpace(in.Gender)
	current.Age = strings.TrimSpace(in.Age)
	current.Color = strings.TrimSpace(in.Color)
	current.OwnerName = strings.TrimSpace(in.OwnerName)
	current.OwnerPhone = strings.TrimSpace(in.OwnerPhone)
	current.Photo = strings.TrimSpace(in.Photo)
	current.Observations = strings.TrimSpace(in.Observations)
	if in.LostStatus != nil {
		current.LostStatus = *in.LostStatus
	}
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Pet{}, err
	}
	return current, nil
}

// SetLostStatus marca/desmarca perdido con un boolean explícito
// (no es un flip). Un solo update condicional id + clinic_id.
func (s *Service) SetLostStatus(ctx context.Context, clinicID, petID string, lost bool) (Pet, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.UpdateLostStatus(ctx, petID, clinicID, lost, s.now())
	if err != nil {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) ListLostByClinic(ctx context.Context, clinicID string) ([]Pet, error) {
	return s.repo.ListLostByClinic(ctx, clinicID)
}

// ListLostPublic devuelve todos los animales perdidos de todas las
// clínicas, con el contacto público de cada una. Soporta el flujo
// "encontré este animal, ¿a quién llamo?".
func (s *Service) ListLostPublic(ctx context.Context) ([]LostPet, error) {
	items, err := s.repo.ListLost(ctx)
	if err != nil {
		return nil, err
	}

	contacts := map[string]clinics.Contact{}
	out := make([]LostPet, 0, len(items))

	for _, p := range items {
		c, ok := contacts[p.ClinicID]
		if !ok {
			c, _ = s.clinicDir.Contact(ctx, p.ClinicID)
			contacts[p.ClinicID] = c
		}
		out = append(out, LostPet{Pet: p, Clinic: c})
	}

	return out, nil
}

// Delete borra la mascota y purga sus documentos: ningún Document
// sobrevive a su Pet.
func (s *Service) Delete(ctx context.Context, clinicID, petID string) error {
	petID = strings.TrimSpace(petID)

	if _, err := s.repo.GetByIDForClinic(ctx, petID, clinicID); err != nil {
		return ErrNotFound
	}

	if s.attachments != nil {
		if err := s.attachments.PurgeByPet(ctx, petID); err != nil {
			return err
		}
	}

	if err := s.repo.Delete(ctx, petID, clinicID); err != nil {
		return ErrNotFound
	}
	return nil
}

func (s *Service) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	return s.repo.CountByClinic(ctx, clinicID)
}

func (s *Service) CountLostByClinic(ctx context.Context, clinicID string) (int, error) {
	return s.repo.CountLostByClinic(ctx, clinicID)
}

func validateRequired(name, species, ownerName, ownerPhone string) error {
	if strings.TrimSpace(name) == "" ||
		strings.TrimSpace(species) == "" ||
		strings.TrimSpace(ownerName) == "" ||
		strings.TrimSpace(ownerPhone) == "" {
		return ErrInvalidInput
	}
	return nil
}
