package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/paywave/accountd/internal/account/domain"
	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/pkg/cryptox"
	"github.com/paywave/accountd/pkg/idx"
	"github.com/paywave/accountd/pkg/slogx"
)

var (
	ErrEmailTaken = errors.New("email already registered")

	// ErrValidation wraps required-field failures; the wrapped message is
	// safe to surface to the caller.
	ErrValidation = errors.New("validation error")
)

// RegisterParams carries everything needed to create a user record. The four
// flags are caller-owned and pass through unchanged.
type RegisterParams struct {
	Name     string
	Email    string
	Password string

	Transfer bool
	Deposit  bool
	Receive  bool
	Send     bool
}

// UserPatch is a partial update at the service boundary. Nil means "field
// absent from request"; a non-nil pointer is applied even when it carries a
// zero value. Password is plaintext here and is hashed before it ever
// reaches the store.
type UserPatch struct {
	Name     *string
	Email    *string
	Password *string

	Transfer *bool
	Deposit  *bool
	Receive  *bool
	Send     *bool
}

type UserService struct {
	Store store.Store
}

// Register creates a new user record. The email's uniqueness is arbitrated
// by the store's unique constraint, so two concurrent registrations for the
// same email are resolved by the losing insert failing; there is no
// find-then-insert window here.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	log := slogx.FromContext(ctx)

	if err := validateRegister(p); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", "err", err)
		return domain.User{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Name:         p.Name,
		Email:        p.Email,
		PasswordHash: hash,
		Transfer:     p.Transfer,
		Deposit:      p.Deposit,
		Receive:      p.Receive,
		Send:         p.Send,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		log.Error("failed to create user", "err", err)
		return domain.User{}, err
	}

	log.Info("user registered", "user_id", u.ID)
	return u, nil
}

func validateRegister(p RegisterParams) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrValidation)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: email is required", ErrValidation)
	case p.Password == "":
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	return nil
}

// GetUser fetches a user by id. Returns store.ErrNotFound if absent.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// ListUsers returns every user record.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.Store.Users().ListUsers(ctx)
}

// UpdateUser applies the supplied fields to the record. A supplied password
// is hashed before storage; the stored credential never holds plaintext.
// Returns store.ErrNotFound for an unknown id and ErrEmailTaken when an
// email change collides with another record.
func (s *UserService) UpdateUser(
	ctx context.Context,
	userID string,
	patch UserPatch,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	sp := store.UserPatch{
		Name:     patch.Name,
		Email:    patch.Email,
		Transfer: patch.Transfer,
		Deposit:  patch.Deposit,
		Receive:  patch.Receive,
		Send:     patch.Send,
	}

	if patch.Email != nil && strings.TrimSpace(*patch.Email) == "" {
		return domain.User{}, fmt.Errorf("%w: email cannot be empty", ErrValidation)
	}

	if patch.Password != nil {
		if *patch.Password == "" {
			return domain.User{}, fmt.Errorf("%w: password cannot be empty", ErrValidation)
		}
		hash, err := cryptox.HashPassword(*patch.Password)
		if err != nil {
			log.Error("failed to hash password", "err", err)
			return domain.User{}, err
		}
		sp.PasswordHash = &hash
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		updated, err = tx.Users().UpdateUser(ctx, userID, sp)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	return updated, nil
}

// DeleteUser removes the record and returns it as it was. Deleting twice
// fails the second time with store.ErrNotFound.
func (s *UserService) DeleteUser(ctx context.Context, userID string) (domain.User, error) {
	var deleted domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		deleted, err = tx.Users().DeleteUser(ctx, userID)
		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user deleted", "user_id", userID)
	return deleted, nil
}
