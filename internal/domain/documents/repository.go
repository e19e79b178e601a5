package documents

import "context"

type Repository interface {
	Create(ctx context.Context, d Document) error
	GetByID(ctx context.Context, id string) (Document, error)

	// ListByPet ordena por uploadedAt descendente.
	ListByPet(ctx context.Context, petID string) ([]Document, error)

	Delete(ctx context.Context, id string) error

	// DeleteByPet purga todos los documentos de una mascota
	// (cascade al borrar el Pet).
	DeleteByPet(ctx context.Context, petID string) error
}
