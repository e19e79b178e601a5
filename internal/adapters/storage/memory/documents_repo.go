package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petsafe-api/internal/domain/documents"
)

type documentsRepo struct {
	mu   sync.RWMutex
	byID map[string]documents.Document
}

func NewDocumentsRepo() documents.Repository {
	return &documentsRepo{
		byID: make(map[string]documents.Document),
	}
}

func (r *documentsRepo) Create(ctx context.Context, d documents.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("document id required")
	}
	if _, exists := r.byID[d.ID]; exists {
		return errors.New("document already exists")
	}
	r.byID[d.ID] = d
	return nil
}

func (r *documentsRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.byID[id]
	if !ok {
		return documents.Document{}, ErrNotFound
	}
	return d, nil
}

func (r *documentsRepo) ListByPet(ctx context.Context, petID string) ([]documents.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]documents.Document, 0)
	for _, d := range r.byID {
		if d.PetID == petID {
			out = append(out, d)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})

	return out, nil
}

func (r *documentsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *documentsRepo) DeleteByPet(ctx context.Context, petID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, d := range r.byID {
		if d.PetID == petID {
			delete(r.byID, id)
		}
	}
	return nil
}
