package repository

import (
	"context"
	"database/sql"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
)

// DoctorRepo reads the `doctors` and `specialties` tables for the admin panel.
type DoctorRepo struct{ DB *sql.DB }

func NewDoctorRepo(db *sql.DB) *DoctorRepo { return &DoctorRepo{DB: db} }

// CountDoctors returns the number of active doctors.
func (r *DoctorRepo) CountDoctors(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM doctors WHERE is_active=1").Scan(&n)
	return n, err
}

// ListDoctors returns a page of active doctors joined with their specialty,
// newest first.
func (r *DoctorRepo) ListDoctors(ctx context.Context, offset, limit int) ([]model.DoctorRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT d.id, d.full_name, COALESCE(d.specialization,''), COALESCE(d.email,''),
		 COALESCE(d.phone,''), COALESCE(s.specialty_name,''), d.is_active, d.created_at
		 FROM doctors d
		 LEFT JOIN specialties s ON d.specialty_id = s.id
		 WHERE d.is_active=1
		 ORDER BY d.created_at DESC
		 LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.DoctorRow{}
	for rows.Next() {
		var d model.DoctorRow
		if err := rows.Scan(&d.ID, &d.FullName, &d.Specialization, &d.Email,
			&d.Phone, &d.SpecialtyName, &d.IsActive, &d.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListSpecialties returns all specialties ordered by name.
func (r *DoctorRepo) ListSpecialties(ctx context.Context) ([]model.Specialty, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, specialty_name, COALESCE(description,''), is_active, created_at
		 FROM specialties ORDER BY specialty_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Specialty{}
	for rows.Next() {
		var s model.Specialty
		if err := rows.Scan(&s.ID, &s.SpecialtyName, &s.Description, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
