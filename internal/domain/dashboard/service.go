package dashboard

import (
	"context"

	"petsafe-api/internal/domain/appointments"
	"petsafe-api/internal/domain/pets"
)

// Service agrega los contadores del panel de la clínica. Solo lectura,
// siempre scopeado al tenant.
type Service struct {
	pets         *pets.Service
	appointments *appointments.Service
}

func NewService(petsSvc *pets.Service, apptsSvc *appointments.Service) *Service {
	return &Service{
		pets:         petsSvc,
		appointments: apptsSvc,
	}
}

type Stats struct {
	TotalPets           int
	TotalAppointments   int
	PendingAppointments int
	LostPets            int
}

func (s *Service) Stats(ctx context.Context, clinicID string) (Stats, error) {
	var out Stats
	var err error

	if out.TotalPets, err = s.pets.CountByClinic(ctx, clinicID); err != nil {
		return Stats{}, err
	}
	if out.TotalAppointments, err = s.appointments.CountByClinic(ctx, clinicID); err != nil {
		return Stats{}, err
	}
	if out.PendingAppointments, err = s.appointments.CountPendingByClinic(ctx, clinicID); err != nil {
		return Stats{}, err
	}
	if out.LostPets, err = s.pets.CountLostByClinic(ctx, clinicID); err != nil {
		return Stats{}, err
	}

	return out, nil
}
