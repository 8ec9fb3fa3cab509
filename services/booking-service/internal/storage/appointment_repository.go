package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/uponco/bookflow/libs/db"
	"github.com/uponco/bookflow/services/booking-service/internal/model"
)

type AppointmentRepository struct {
	pool *db.Pool
}

func NewAppointmentRepository(pool *db.Pool) *AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

func (r *AppointmentRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.pool.Begin(ctx)
}

// Create inserts the appointment and returns its id. The appointments table
// carries an exclusion constraint on (specialist_id, time range), so a
// double-booked slot surfaces as IsConflict rather than a duplicate row.
func (r *AppointmentRepository) Create(ctx context.Context, tx pgx.Tx, appt *model.Appointment) (string, error) {
	var id string
	err := tx.QueryRow(ctx, `
		INSERT INTO appointments
			(company_id, location_id, service_id, specialist_id, full_name, email, phone, comment, start_time, end_time)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, appt.CompanyID, appt.LocationID, appt.ServiceID, appt.SpecialistID,
		appt.FullName, appt.Email, appt.Phone, appt.Comment, appt.StartTime, appt.EndTime).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// BookedStarts returns the start times ("HH:MM", specialist-local) of every
// appointment the specialist holds on the given calendar day.
func (r *AppointmentRepository) BookedStarts(ctx context.Context, specialistID, dateISO string) (map[string]struct{}, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT to_char(start_time, 'HH24:MI')
		FROM appointments
		WHERE specialist_id = $1
			AND start_time >= $2::date
			AND start_time < $2::date + interval '1 day'
	`, specialistID, dateISO)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	starts := map[string]struct{}{}
	for rows.Next() {
		var hm string
		if err := rows.Scan(&hm); err != nil {
			return nil, err
		}
		starts[hm] = struct{}{}
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return starts, nil
}

func (r *AppointmentRepository) ListBySpecialist(ctx context.Context, specialistID string, start, end time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, company_id, COALESCE(location_id::text, ''), service_id, specialist_id,
			full_name, email, phone, COALESCE(comment, ''), start_time, end_time, created_at
		FROM appointments
		WHERE specialist_id = $1
			AND start_time < $3
			AND end_time > $2
		ORDER BY start_time ASC
	`, specialistID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appts []model.Appointment
	for rows.Next() {
		var appt model.Appointment
		if err := rows.Scan(
			&appt.ID,
			&appt.CompanyID,
			&appt.LocationID,
			&appt.ServiceID,
			&appt.SpecialistID,
			&appt.FullName,
			&appt.Email,
			&appt.Phone,
			&appt.Comment,
			&appt.StartTime,
			&appt.EndTime,
			&appt.CreatedAt,
		); err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23P01"
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
