package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petsafe-api/internal/domain/appointments"
)

type appointmentsRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentsRepo() appointments.Repository {
	return &appointmentsRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) GetByIDForClinic(ctx context.Context, id, clinicID string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok || a.ClinicID != clinicID {
		return appointments.Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *appointmentsRepo) ListByClinic(ctx context.Context, clinicID string, f appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.ClinicID != clinicID {
			continue
		}
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if f.Date != nil {
			day := f.Date.Truncate(24 * time.Hour)
			if a.DateTime.Before(day) || !a.DateTime.Before(day.Add(24*time.Hour)) {
				continue
			}
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DateTime.After(out[j].DateTime)
	})

	return out, nil
}

func (r *appointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[a.ID]
	if !exists || current.ClinicID != a.ClinicID {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentsRepo) Delete(ctx context.Context, id, clinicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.byID[id]
	if !exists || a.ClinicID != clinicID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentsRepo) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.ClinicID == clinicID {
			n++
		}
	}
	return n, nil
}

func (r *appointmentsRepo) CountByClinicAndStatus(ctx context.Context, clinicID string, status appointments.Status) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, a := range r.byID {
		if a.ClinicID == clinicID && a.Status == status {
			n++
		}
	}
	return n, nil
}
