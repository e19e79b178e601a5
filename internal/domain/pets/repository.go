package pets

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p Pet) error

	// GetByID es la lectura sin scope de tenant: solo la usa la página
	// pública (el id viene de un QR, no es enumerable).
	GetByID(ctx context.Context, id string) (Pet, error)

	// GetByIDForClinic es la lectura scopeada: id + clinic_id en el
	// mismo filtro, equivalente a findFirst(tenant, id).
	GetByIDForClinic(ctx context.Context, id, clinicID string) (Pet, error)

	ListByClinic(ctx context.Context, clinicID string) ([]Pet, error)
	ListLostByClinic(ctx context.Context, clinicID string) ([]Pet, error)

	// ListLost cruza tenants a propósito: alimenta el listado público
	// de animales perdidos.
	ListLost(ctx context.Context) ([]Pet, error)

	// Update escribe el registro completo, condicionado a id + clinic_id.
	Update(ctx context.Context, p Pet) error

	// UpdateLostStatus es un update condicional único (id + clinic_id):
	// dos operadores concurrentes compiten en el storage, last-write-wins.
	UpdateLostStatus(ctx context.Context, id, clinicID string, lost bool, updatedAt time.Time) (Pet, error)

	Delete(ctx context.Context, id, clinicID string) error

	CountByClinic(ctx context.Context, clinicID string) (int, error)
	CountLostByClinic(ctx context.Context, clinicID string) (int, error)
}
