package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/TienDung030704/datlichkhambenh/internal/model"
	"github.com/TienDung030704/datlichkhambenh/internal/utils"
)

// UserRepo is the credential store: it owns the `users` table including each
// account's single refresh-token slot (refresh_token + token_expires_at).
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = `id, username, email, password, full_name, phone_number,
	date_of_birth, gender, role, is_active, refresh_token, token_expires_at,
	created_at, updated_at`

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		phone  sql.NullString
		dob    sql.NullTime
		gender sql.NullString
		rt     sql.NullString
		rtExp  sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.FullName,
		&phone, &dob, &gender, &u.Role, &u.IsActive, &rt, &rtExp,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	u.PhoneNumber = phone.String
	if dob.Valid {
		u.DateOfBirth = &dob.Time
	}
	u.Gender = model.Gender(gender.String)
	if rt.Valid {
		u.RefreshToken = &rt.String
	}
	if rtExp.Valid {
		u.TokenExpiresAt = &rtExp.Time
	}
	return u, nil
}

// NewUser carries the fields required to insert an account.
type NewUser struct {
	Username    string
	Password    string // plain; hashed here before it touches the database
	Email       string
	FullName    string
	PhoneNumber string
}

// Create inserts a new active PATIENT account and returns its ID.  Duplicate
// usernames and emails are mapped to the corresponding sentinel errors by
// inspecting the violated unique key.
func (r *UserRepo) Create(ctx context.Context, nu NewUser, cost int) (uint64, error) {
	hash, err := utils.HashPassword(nu.Password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO users (username, password, email, full_name, phone_number, role, is_active, created_at, updated_at)
		 VALUES (?,?,?,?,?, 'PATIENT', 1, NOW(), NOW())`,
		strings.TrimSpace(nu.Username), hash,
		strings.ToLower(strings.TrimSpace(nu.Email)),
		strings.TrimSpace(nu.FullName),
		nullIfBlank(nu.PhoneNumber))
	if err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "1062") {
			if strings.Contains(msg, "email") {
				return 0, ErrEmailExists
			}
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UsernameExists reports whether any account already uses the username.
func (r *UserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE username=?", strings.TrimSpace(username)).Scan(&n)
	return n > 0, err
}

// EmailExists reports whether any account already uses the email.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=?",
		strings.ToLower(strings.TrimSpace(email))).Scan(&n)
	return n > 0, err
}

// VerifyCredentials resolves an active account by username or email and
// compares the bcrypt hash.  Both "no such account" and "wrong password"
// collapse into ErrInvalidCredentials.
func (r *UserRepo) VerifyCredentials(ctx context.Context, identifier, password string) (model.User, error) {
	identifier = strings.TrimSpace(identifier)
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE (username=? OR email=?) AND is_active=1 LIMIT 1",
		identifier, strings.ToLower(identifier)))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByUsername fetches an account by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1",
		strings.TrimSpace(username)))
	if err == sql.ErrNoRows {
		return model.User{}, ErrNotFound
	}
	return u, err
}

// GetRole returns the role of an active account.  Inactive or missing
// accounts map to ErrNotFound so role checks fail closed.
func (r *UserRepo) GetRole(ctx context.Context, username string) (string, error) {
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM users WHERE username=? AND is_active=1 LIMIT 1",
		strings.TrimSpace(username)).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return role, err
}

// ----- refresh-token slot -----
//
// An account has zero or one live refresh token; saving overwrites whatever
// was there (superseding the previous session) and clearing is idempotent.

// SaveRefreshToken overwrites the account's stored refresh token and expiry.
func (r *UserRepo) SaveRefreshToken(ctx context.Context, username, token string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=?, token_expires_at=?, updated_at=NOW() WHERE username=?",
		token, expiresAt.UTC(), username)
	return err
}

// GetRefreshToken returns the stored refresh token for an active account, or
// "" when none is outstanding.
func (r *UserRepo) GetRefreshToken(ctx context.Context, username string) (string, error) {
	var tok sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT refresh_token FROM users WHERE username=? AND is_active=1 LIMIT 1",
		username).Scan(&tok)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", err
	}
	return tok.String, nil
}

// ClearRefreshToken empties the refresh-token slot.  Clearing an already
// empty slot is not an error.
func (r *UserRepo) ClearRefreshToken(ctx context.Context, username string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=NULL, token_expires_at=NULL, updated_at=NOW() WHERE username=?",
		username)
	return err
}

// ----- profile -----

// GetProfile returns the editable slice of an account in display form.
func (r *UserRepo) GetProfile(ctx context.Context, username string) (model.Profile, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return model.Profile{}, err
	}
	p := model.Profile{
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		PhoneNumber: u.PhoneNumber,
		Gender:      u.Gender.Display(),
	}
	if u.DateOfBirth != nil {
		p.DateOfBirth = u.DateOfBirth.Format("2006-01-02")
	}
	return p, nil
}

// UpdateProfile writes the editable fields.  Blank optional fields are
// stored as NULL; the gender display value is mapped back to its storage
// form and an unparsable gender leaves the column untouched.
func (r *UserRepo) UpdateProfile(ctx context.Context, username string, p model.Profile) error {
	var gender interface{}
	if g, ok := model.ParseGender(p.Gender); ok {
		gender = string(g)
	}
	var dob interface{}
	if s := strings.TrimSpace(p.DateOfBirth); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			dob = t
		}
	}
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET full_name=?, phone_number=?, date_of_birth=COALESCE(?, date_of_birth),
		 gender=COALESCE(?, gender), updated_at=NOW() WHERE username=?`,
		strings.TrimSpace(p.FullName), nullIfBlank(p.PhoneNumber), dob, gender, username)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 both for a missing user and for a no-op update,
		// so confirm existence before reporting not found.
		if _, err := r.GetByUsername(ctx, username); err != nil {
			return err
		}
	}
	return nil
}

// ----- admin panel queries over PATIENT accounts -----

const patientColumns = `id, username, email, full_name, phone_number,
	date_of_birth, gender, created_at, is_active`

func scanPatientRows(rows *sql.Rows) ([]model.PatientRow, error) {
	out := []model.PatientRow{}
	for rows.Next() {
		var (
			p      model.PatientRow
			phone  sql.NullString
			dob    sql.NullTime
			gender sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.FullName,
			&phone, &dob, &gender, &p.CreatedAt, &p.IsActive); err != nil {
			return nil, err
		}
		p.PhoneNumber = phone.String
		if dob.Valid {
			p.DateOfBirth = &dob.Time
		}
		p.Gender = gender.String
		out = append(out, p)
	}
	return out, rows.Err()
}

// CountPatients returns the number of active PATIENT accounts.
func (r *UserRepo) CountPatients(ctx context.Context) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role='PATIENT' AND is_active=1").Scan(&n)
	return n, err
}

// ListPatients returns a page of PATIENT accounts, newest first.
func (r *UserRepo) ListPatients(ctx context.Context, offset, limit int) ([]model.PatientRow, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+patientColumns+" FROM users WHERE role='PATIENT' ORDER BY created_at DESC LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPatientRows(rows)
}

// SearchPatients matches the query against full name, email, phone number
// and username.
func (r *UserRepo) SearchPatients(ctx context.Context, query string, offset, limit int) ([]model.PatientRow, error) {
	pattern := "%" + query + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+patientColumns+` FROM users WHERE role='PATIENT'
		 AND (full_name LIKE ? OR email LIKE ? OR phone_number LIKE ? OR username LIKE ?)
		 ORDER BY created_at DESC LIMIT ? OFFSET ?`,
		pattern, pattern, pattern, pattern, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPatientRows(rows)
}

// GetPatientByID returns one PATIENT account including its update timestamp.
func (r *UserRepo) GetPatientByID(ctx context.Context, id uint64) (model.PatientRow, error) {
	var (
		p      model.PatientRow
		phone  sql.NullString
		dob    sql.NullTime
		gender sql.NullString
		upd    time.Time
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, username, email, full_name, phone_number, date_of_birth,
		 gender, created_at, updated_at, is_active
		 FROM users WHERE id=? AND role='PATIENT'`, id).
		Scan(&p.ID, &p.Username, &p.Email, &p.FullName, &phone, &dob,
			&gender, &p.CreatedAt, &upd, &p.IsActive)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.PatientRow{}, ErrNotFound
		}
		return model.PatientRow{}, err
	}
	p.PhoneNumber = phone.String
	if dob.Valid {
		p.DateOfBirth = &dob.Time
	}
	p.Gender = gender.String
	p.UpdatedAt = &upd
	return p, nil
}

// SetPatientActive flips the is_active flag on a PATIENT account.
func (r *UserRepo) SetPatientActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET is_active=?, updated_at=NOW() WHERE id=? AND role='PATIENT'",
		active, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// nullIfBlank maps "" to SQL NULL so optional columns stay NULL instead of
// accumulating empty strings.
func nullIfBlank(s string) interface{} {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
