package postgres

import (
	"context"
	"database/sql"
	"strings"

	"petsafe-api/internal/domain/clinics"
)

type ClinicsRepo struct {
	db *sql.DB
}

func NewClinicsRepo(db *sql.DB) *ClinicsRepo {
	return &ClinicsRepo{db: db}
}

func (r *ClinicsRepo) Create(ctx context.Context, c clinics.Clinic) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clinics (id, name, phone, address, created_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		c.ID,
		c.Name,
		c.Phone,
		c.Address,
		c.CreatedAt,
	)
	return err
}

func (r *ClinicsRepo) GetByID(ctx context.Context, id string) (clinics.Clinic, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return clinics.Clinic{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, phone, address, created_at
		FROM clinics
		WHERE id = $1
	`, id)

	var c clinics.Clinic
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return clinics.Clinic{}, ErrNotFound
		}
		return clinics.Clinic{}, err
	}

	return c, nil
}
