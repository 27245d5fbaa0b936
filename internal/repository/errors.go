// Package repository implements the data access layer over MySQL.  The
// sentinel errors defined here let handlers map failures to HTTP statuses
// without inspecting driver errors: credential failures deliberately do not
// distinguish "no such user" from "wrong password" so responses cannot be
// used for account enumeration.
package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrUsernameExists is returned on insert when the username is taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrEmailExists is returned on insert when the email is taken.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidCredentials is returned when no active account matches the
// presented identifier and password.
var ErrInvalidCredentials = errors.New("invalid credentials")
