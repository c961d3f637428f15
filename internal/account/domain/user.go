package domain

import "time"

// User is the single persisted entity of the account service.
//
// The four trailing booleans are caller-owned flags with no service-level
// meaning; they are stored and returned verbatim.
type User struct {
	ID           string
	Name         string
	Email        string // unique across live records
	PasswordHash string // argon2 encoded, never plaintext

	Transfer bool
	Deposit  bool
	Receive  bool
	Send     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
