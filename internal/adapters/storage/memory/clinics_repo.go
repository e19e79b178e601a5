package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"petsafe-api/internal/domain/clinics"
)

var (
	ErrNotFound = errors.New("not found")
)

type clinicsRepo struct {
	mu   sync.RWMutex
	byID map[string]clinics.Clinic
}

func NewClinicsRepo() clinics.Repository {
	return &clinicsRepo{
		byID: make(map[string]clinics.Clinic),
	}
}

func (r *clinicsRepo) Create(ctx context.Context, c clinics.Clinic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("clinic id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("clinic already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *clinicsRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return clinics.Clinic{}, ErrNotFound
	}
	return c, nil
}
