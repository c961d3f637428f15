package store

import (
	"context"
	"errors"

	"github.com/paywave/accountd/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable even though users is currently the only one.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// UserPatch is a partial update of a user record. A nil field means "leave
// unchanged"; a non-nil field is applied even when it points at a zero value,
// so an explicit false still clears a flag.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Transfer     *bool
	Deposit      *bool
	Receive      *bool
	Send         *bool
}

// IsZero reports whether the patch carries no fields at all.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil &&
		p.Transfer == nil && p.Deposit == nil && p.Receive == nil && p.Send == nil
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the email is already taken; the unique
	// constraint on email is the atomic arbiter for concurrent registrations.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser applies the non-nil fields of patch and bumps updated_at.
	// Returns the updated record, ErrNotFound if the id is absent, or
	// ErrAlreadyExists if an email change collides with another record.
	UpdateUser(ctx context.Context, userID string, patch UserPatch) (domain.User, error)

	// DeleteUser removes the record and returns it as it was.
	DeleteUser(ctx context.Context, userID string) (domain.User, error)

	// ListUsers returns all users ordered by creation (oldest first).
	// The credential field is excluded from the listing.
	ListUsers(ctx context.Context) ([]domain.User, error)
}
