package documents

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
)

// PetDirectory resuelve la pertenencia de la mascota padre.
// Lo implementa pets.Service.
type PetDirectory interface {
	ExistsInClinic(ctx context.Context, petID, clinicID string) (bool, error)
	ClinicOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo Repository
	pets PetDirectory
	now  func() time.Time
}

func NewService(repo Repository, pets PetDirectory) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID    string
	Name     string
	FilePath string
	FileType string
}

// Create exige que la mascota resuelva dentro del tenant del caller.
// Si no: 404 (el caller no tiene un id de documento en la mano, no
// hay existencia que ocultar a medias).
func (s *Service) Create(ctx context.Context, clinicID string, in CreateInput) (Document, error) {
	petID := strings.TrimSpace(in.PetID)
	if petID == "" ||
		strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.FilePath) == "" ||
		strings.TrimSpace(in.FileType) == "" {
		return Document{}, ErrInvalidInput
	}

	ok, err := s.pets.ExistsInClinic(ctx, petID, clinicID)
	if err != nil {
		return Document{}, err
	}
	if !ok {
		return Document{}, ErrNotFound
	}

	d := Document{
		ID:         uuid.NewString(),
		PetID:      petID,
		Name:       strings.TrimSpace(in.Name),
		FilePath:   strings.TrimSpace(in.FilePath),
		FileType:   strings.TrimSpace(in.FileType),
		UploadedAt: s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Document{}, err
	}
	return d, nil
}

// ListByPet chequea el tenant sobre la mascota padre antes de listar.
func (s *Service) ListByPet(ctx context.Context, clinicID, petID string) ([]Document, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}

	ok, err := s.pets.ExistsInClinic(ctx, petID, clinicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}

	return s.repo.ListByPet(ctx, petID)
}

// GetByID resuelve primero el documento y después el tenant de su Pet.
// Documento de otra clínica => Forbidden, no NotFound: el lookup por
// id ya confirmó existencia, solo queda negar el acceso.
func (s *Service) GetByID(ctx context.Context, clinicID, id string) (Document, error) {
	d, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Document{}, ErrNotFound
	}

	owner, err := s.pets.ClinicOf(ctx, d.PetID)
	if err != nil || owner != clinicID {
		return Document{}, ErrForbidden
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, clinicID, id string) error {
	d, err := s.GetByID(ctx, clinicID, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, d.ID)
}

// PurgeByPet implementa pets.AttachmentPurger: cascade al borrar
// la mascota. Se invoca ya autorizado (pets validó el tenant).
func (s *Service) PurgeByPet(ctx context.Context, petID string) error {
	return s.repo.DeleteByPet(ctx, petID)
}
