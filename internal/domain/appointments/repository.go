package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error

	// GetByIDForClinic filtra por id + clinic_id en la misma consulta.
	GetByIDForClinic(ctx context.Context, id, clinicID string) (Appointment, error)

	// ListByClinic ordena por dateTime descendente.
	ListByClinic(ctx context.Context, clinicID string, f ListFilter) ([]Appointment, error)

	// Update escribe el registro completo, condicionado a id + clinic_id.
	Update(ctx context.Context, a Appointment) error

	Delete(ctx context.Context, id, clinicID string) error

	CountByClinic(ctx context.Context, clinicID string) (int, error)
	CountByClinicAndStatus(ctx context.Context, clinicID string, status Status) (int, error)
}

// ListFilter acota el listado del operador: por status y/o por día
// calendario (Date se trunca a [00:00, 24:00) del día dado).
type ListFilter struct {
	Status Status
	Date   *time.Time
}
