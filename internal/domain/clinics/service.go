package clinics

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
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name    string
	Phone   string
	Address string
}

// Register da de alta una clínica. Lo usa el seed de dev y los tests;
// el provisioning real de cuentas vive en otro servicio.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Clinic, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Clinic{}, ErrInvalidInput
	}

	c := Clinic{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(in.Name),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return Clinic{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Clinic, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Clinic{}, ErrNotFound
	}
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Clinic{}, ErrNotFound
	}
	return c, nil
}

// Exists se usa en la creación pública de agendamientos: el visitante
// manda un clinicId y hay que validar que la clínica exista.
func (s *Service) Exists(ctx context.Context, id string) (bool, error) {
	_, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Contact expone solo los campos públicos de la clínica.
func (s *Service) Contact(ctx context.Context, id string) (Contact, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return Contact{}, err
	}
	return Contact{
		Name:    c.Name,
		Phone:   c.Phone,
		Address: c.Address,
	}, nil
}
