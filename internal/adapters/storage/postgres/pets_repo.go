package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"petsafe-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, clinic_id,
	name, species, breed, gender, age, color,
	owner_name, owner_phone,
	photo, observations, lost_status,
	created_at, updated_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.ClinicID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.Age,
		p.Color,
		p.OwnerName,
		p.OwnerPhone,
		p.Photo,
		p.Observations,
		p.LostStatus,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)

	return scanPet(row)
}

func (r *PetsRepo) GetByIDForClinic(ctx context.Context, id, clinicID string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, ErrNotFound
	}

	// id + clinic_id en el mismo filtro: ausencia y mismatch de tenant
	// devuelven lo mismo.
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)

	return scanPet(row)
}

func (r *PetsRepo) ListByClinic(ctx context.Context, clinicID string) ([]pets.Pet, error) {
	return r.list(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE clinic_id = $1
		ORDER BY created_at DESC
	`, clinicID)
}

func (r *PetsRepo) ListLostByClinic(ctx context.Context, clinicID string) ([]pets.Pet, error) {
	return r.list(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE clinic_id = $1 AND lost_status = TRUE
		ORDER BY updated_at DESC
	`, clinicID)
}

func (r *PetsRepo) ListLost(ctx context.Context) ([]pets.Pet, error) {
	return r.list(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE lost_status = TRUE
		ORDER BY updated_at DESC
	`)
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			species = $4,
			breed = $5,
			gender = $6,
			age = $7,
			color = $8,
			owner_name = $9,
			owner_phone = $10,
			photo = $11,
			observations = $12,
			lost_status = $13,
			updated_at = $14
		WHERE id = $1 AND clinic_id = $2
	`,
		p.ID,
		p.ClinicID,
		p.Name,
		p.Species,
		p.Breed,
		p.Gender,
		p.Age,
		p.Color,
		p.OwnerName,
		p.OwnerPhone,
		p.Photo,
		p.Observations,
		p.LostStatus,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) UpdateLostStatus(ctx context.Context, id, clinicID string, lost bool, updatedAt time.Time) (pets.Pet, error) {
	// Un solo update condicional: dos operadores concurrentes compiten
	// acá y gana el último (last-write-wins).
	row := r.db.QueryRowContext(ctx, `
		UPDATE pets
		SET lost_status = $3, updated_at = $4
		WHERE id = $1 AND clinic_id = $2
		RETURNING `+petColumns+`
	`, id, clinicID, lost, updatedAt)

	return scanPet(row)
}

func (r *PetsRepo) Delete(ctx context.Context, id, clinicID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pets
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PetsRepo) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pets WHERE clinic_id = $1
	`, clinicID).Scan(&n)
	return n, err
}

func (r *PetsRepo) CountLostByClinic(ctx context.Context, clinicID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM pets WHERE clinic_id = $1 AND lost_status = TRUE
	`, clinicID).Scan(&n)
	return n, err
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(
			&p.ID,
			&p.ClinicID,
			&p.Name,
			&p.Species,
			&p.Breed,
			&p.Gender,
			&p.Age,
			&p.Color,
			&p.OwnerName,
			&p.OwnerPhone,
			&p.Photo,
			&p.Observations,
			&p.LostStatus,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func scanPet(row *sql.Row) (pets.Pet, error) {
	var p pets.Pet
	if err := row.Scan(
		&p.ID,
		&p.ClinicID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Gender,
		&p.Age,
		&p.Color,
		&p.OwnerName,
		&p.OwnerPhone,
		&p.Photo,
		&p.Observations,
		&p.LostStatus,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}
