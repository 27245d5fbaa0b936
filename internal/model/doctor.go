package model

import "time"

// DoctorRow is the admin-panel projection of a row in the `doctors` table,
// joined against `specialties` for the specialty name.
type DoctorRow struct {
	ID             uint64    `json:"id"`
	FullName       string    `json:"fullName"`
	Specialization string    `json:"specialization"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	SpecialtyName  string    `json:"specialtyName"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Specialty mirrors a row of the `specialties` table.
type Specialty struct {
	ID            uint64    `json:"id"`
	SpecialtyName string    `json:"specialtyName"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}
