package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"petsafe-api/internal/domain/pets"
)

type petsRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetsRepo() pets.Repository {
	return &petsRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) GetByIDForClinic(ctx context.Context, id, clinicID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || p.ClinicID != clinicID {
		// mismatch de tenant y ausencia son indistinguibles a propósito
		return pets.Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) ListByClinic(ctx context.Context, clinicID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.ClinicID == clinicID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *petsRepo) ListLostByClinic(ctx context.Context, clinicID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.ClinicID == clinicID && p.LostStatus {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

func (r *petsRepo) ListLost(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.LostStatus {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})

	return out, nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.byID[p.ID]
	if !exists || current.ClinicID != p.ClinicID {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petsRepo) UpdateLostStatus(ctx context.Context, id, clinicID string, lost bool, updatedAt time.Time) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.byID[id]
	if !exists || p.ClinicID != clinicID {
		return pets.Pet{}, ErrNotFound
	}

	p.LostStatus = lost
	p.UpdatedAt = updatedAt
	r.byID[id] = p
	return p, nil
}

func (r *petsRepo) Delete(ctx context.Context, id, clinicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.byID[id]
	if !exists || p.ClinicID != clinicID {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *petsRepo) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.byID {
		if p.ClinicID == clinicID {
			n++
		}
	}
	return n, nil
}

func (r *petsRepo) CountLostByClinic(ctx context.Context, clinicID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, p := range r.byID {
		if p.ClinicID == clinicID && p.LostStatus {
			n++
		}
	}
	return n, nil
}
