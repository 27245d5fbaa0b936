package repository

import (
	"context"
	"database/sql"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// AppointmentRepo reads the `appointments` table for the admin panel.
type AppointmentRepo struct{ DB *sql.DB }

func NewAppointmentRepo(db *sql.DB) *AppointmentRepo { return &AppointmentRepo{DB: db} }

const appointmentSelect = `SELECT a.id, u.full_name, d.full_name,
	COALESCE(s.specialty_name,''), a.scheduled_at, a.status, a.created_at
	FROM appointments a
	JOIN users u   ON u.id = a.patient_id
	JOIN doctors d ON d.id = a.doctor_id
	LEFT JOIN specialties s ON d.specialty_id = s.id`

func scanAppointmentRows(rows *sql.Rows) ([]model.AppointmentRow, error) {
	out := []model.AppointmentRow{}
	for rows.Next() {
		var a model.AppointmentRow
		if err := rows.Scan(&a.ID, &a.PatientName, &a.DoctorName,
			&a.SpecialtyName, &a.ScheduledAt, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CountAppointments returns the total number of appointments.
func (r *AppointmentRepo) CountAppointments(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM appointments").Scan(&n)
	return n, err
}

// RecentAppointments returns the most recently created appointments.
func (r *AppointmentRepo) RecentAppointments(ctx context.Context, limit int) ([]model.AppointmentRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		appointmentSelect+" ORDER BY a.created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointmentRows(rows)
}

// ListAppointments returns a page of appointments ordered by schedule,
// newest first.
func (r *AppointmentRepo) ListAppointments(ctx context.Context, offset, limit int) ([]model.AppointmentRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		appointmentSelect+" ORDER BY a.scheduled_at DESC LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAppointmentRows(rows)
}
