// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// PatientRegisteredEvent is published after a successful registration.  It
// carries enough information for downstream consumers (welcome mail,
// analytics) without querying the primary database.
type PatientRegisteredEvent struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	RegisteredAt string `json:"registered_at"`
}
