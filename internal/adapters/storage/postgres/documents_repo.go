package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petsafe-api/internal/domain/documents"
)

type DocumentsRepo struct {
	db *sql.DB
}

func NewDocumentsRepo(db *sql.DB) *DocumentsRepo {
	return &DocumentsRepo{db: db}
}

func (r *DocumentsRepo) Create(ctx context.Context, d documents.Document) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO documents (id, pet_id, name, file_path, file_type, uploaded_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		d.ID,
		d.PetID,
		d.Name,
		d.FilePath,
		d.FileType,
		d.UploadedAt,
	)
	return err
}

func (r *DocumentsRepo) GetByID(ctx context.Context, id string) (documents.Document, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return documents.Document{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id, name, file_path, file_type, uploaded_at
		FROM documents
		WHERE id = $1
	`, id)

	var d documents.Document
	if err := row.Scan(&d.ID, &d.PetID, &d.Name, &d.FilePath, &d.FileType, &d.UploadedAt); err != nil {
		if err == sql.ErrNoRows {
			return documents.Document{}, ErrNotFound
		}
		return documents.Document{}, err
	}

	return d, nil
}

func (r *DocumentsRepo) ListByPet(ctx context.Context, petID string) ([]documents.Document, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, name, file_path, file_type, uploaded_at
		FROM documents
		WHERE pet_id = $1
		ORDER BY uploaded_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]documents.Document, 0)
	for rows.Next() {
		var d documents.Document
		if err := rows.Scan(&d.ID, &d.PetID, &d.Name, &d.FilePath, &d.FileType, &d.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *DocumentsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM documents WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DocumentsRepo) DeleteByPet(ctx context.Context, petID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM documents WHERE pet_id = $1
	`, petID)
	return err
}
