package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"petsafe-api/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `
	id, pet_id, clinic_id, date_time,
	pet_name, owner_name, owner_phone,
	notes, status,
	created_at, updated_at
`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		a.ID,
		toNullString(a.PetID),
		a.ClinicID,
		a.DateTime,
		a.PetName,
		a.OwnerName,
		a.OwnerPhone,
		a.Notes,
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) GetByIDForClinic(ctx context.Context, id, clinicID string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND clinic_id = $2
	`, id, clinicID)

	return scanAppointment(row)
}

func (r *AppointmentsRepo) ListByClinic(ctx context.Context, clinicID string, f appointments.ListFilter) ([]appointments.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE clinic_id = $1`
	args := []any{clinicID}

	if f.Status != "" {
		args = append(args, string(f.Status))
		query += ` AND status = $2`
	}
	if f.Date != nil {
		// Date viene truncado a medianoche; el filtro cubre [día, día+1).
		day := *f.Date
		args = append(args, day, day.AddDate(0, 0, 1))
		n := len(args)
		query += ` AND date_time >= $` + strconv.Itoa(n-1) + ` AND date_time < $` + strconv.Itoa(n)
	}

	query += ` ORDER BY date_time DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointmentRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			date_time = $3,
			notes = $4,
			status = $5,
			updated_at = $6
		WHERE id = $1 AND clinic_id = $2
	`,
		a.ID,
		a.ClinicID,
		a.DateTime,
		a.Notes,
		string(a.Status),
		a.UpdatedAt,
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

func (r *AppointmentsRepo) Delete(ctx context.Context, id, clinicID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM appointments
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

func (r *AppointmentsRepo) CountByClinic(ctx context.Context, clinicID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM appointments WHERE clinic_id = $1
	`, clinicID).Scan(&n)
	return n, err
}

func (r *AppointmentsRepo) CountByClinicAndStatus(ctx context.Context, clinicID string, status appointments.Status) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM appointments WHERE clinic_id = $1 AND status = $2
	`, clinicID, string(status)).Scan(&n)
	return n, err
}

type appointmentScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row *sql.Row) (appointments.Appointment, error) {
	a, err := scanAppointmentFrom(row)
	if err == sql.ErrNoRows {
		return appointments.Appointment{}, ErrNotFound
	}
	return a, err
}

func scanAppointmentRows(rows *sql.Rows) (appointments.Appointment, error) {
	return scanAppointmentFrom(rows)
}

func scanAppointmentFrom(s appointmentScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var petID sql.NullString
	var status string

	if err := s.Scan(
		&a.ID,
		&petID,
		&a.ClinicID,
		&a.DateTime,
		&a.PetName,
		&a.OwnerName,
		&a.OwnerPhone,
		&a.Notes,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	if petID.Valid {
		a.PetID = petID.String
	}
	a.Status = appointments.Status(status)

	return a, nil
}

// pet_id es nullable: un agendamiento puede nombrar una mascota aún
// no registrada.
func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
