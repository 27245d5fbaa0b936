package model

import (
	"strings"
	"time"
)

// Gender is the controlled vocabulary stored in the `users.gender` column.
// The storage values are MALE, FEMALE and OTHER; the Vietnamese frontend
// displays them as "Nam", "Nữ" and "Khác".  All mapping between the two
// representations happens here so repositories and handlers never juggle
// raw strings.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// ParseGender accepts either a storage value ("MALE") or a display value
// ("Nam") and returns the storage form.  Unknown or empty inputs return
// false so callers can decide whether to reject or to leave the column
// untouched.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "MALE", "NAM":
		return GenderMale, true
	case "FEMALE", "NỮ", "NU":
		return GenderFemale, true
	case "OTHER", "KHÁC", "KHAC":
		return GenderOther, true
	}
	return "", false
}

// Display returns the Vietnamese display value for a storage gender.
func (g Gender) Display() string {
	switch g {
	case GenderMale:
		return "Nam"
	case GenderFemale:
		return "Nữ"
	case GenderOther:
		return "Khác"
	}
	return ""
}

// User mirrors a row of the `users` table.  One account holds at most one
// live refresh token: RefreshToken/TokenExpiresAt are both nil when no
// session is outstanding and are overwritten as a pair on every issue.
type User struct {
	ID             uint64     // users.id
	Username       string     // users.username (unique)
	Email          string     // users.email (unique)
	PasswordHash   string     // users.password (bcrypt hash)
	FullName       string     // users.full_name
	PhoneNumber    string     // users.phone_number
	DateOfBirth    *time.Time // users.date_of_birth (nullable)
	Gender         Gender     // users.gender
	Role           string     // users.role (PATIENT | ADMIN)
	IsActive       bool       // users.is_active
	RefreshToken   *string    // users.refresh_token (nullable)
	TokenExpiresAt *time.Time // users.token_expires_at (nullable)
	CreatedAt      time.Time  // users.created_at
	UpdatedAt      time.Time  // users.updated_at
}

// Profile is the user-editable slice of an account, serialized once here
// with the camelCase names the frontend expects.  Blank optional fields are
// normalized to NULL by the repository on update.
type Profile struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phone"`
	DateOfBirth string `json:"birthDate,omitempty"` // YYYY-MM-DD
	Gender      string `json:"gender,omitempty"`    // display form (Nam/Nữ/Khác)
}

// PatientRow is the admin-panel projection of a PATIENT account.  Listing
// queries scan straight into this struct; the camelCase JSON tags replace
// the per-field renaming the old backend did on every result row.
type PatientRow struct {
	ID          uint64     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"fullName"`
	PhoneNumber string     `json:"phoneNumber"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Gender      string     `json:"gender"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	IsActive    bool       `json:"isActive"`
}
