package sqlite

import (
	"context"
	"testing"

	"github.com/paywave/accountd/internal/account/domain"
	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestUser(email string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		Transfer:     true,
		Send:         true,
	}
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	byID, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.Equal(t, u.PasswordHash, byID.PasswordHash)
	require.True(t, byID.Transfer)
	require.True(t, byID.Send)
	require.False(t, byID.Deposit)
	require.False(t, byID.CreatedAt.IsZero())

	byEmail, err := s.Users().GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	_, err = s.Users().GetUserByID(ctx, "missing")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := newTestUser("taken@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, first))

	second := newTestUser("taken@example.com")
	err := s.Users().CreateUser(ctx, second)
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	// The original record is unchanged
	got, err := s.Users().GetUserByEmail(ctx, "taken@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
}

func TestUpdateUser_PatchSemantics(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	t.Run("only supplied fields change", func(t *testing.T) {
		name := "Alison"
		got, err := s.Users().UpdateUser(ctx, u.ID, store.UserPatch{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Alison", got.Name)
		require.Equal(t, u.Email, got.Email)
		require.Equal(t, u.PasswordHash, got.PasswordHash)
	})

	t.Run("explicit false clears a flag", func(t *testing.T) {
		off := false
		got, err := s.Users().UpdateUser(ctx, u.ID, store.UserPatch{Transfer: &off})
		require.NoError(t, err)
		require.False(t, got.Transfer)
		require.True(t, got.Send, "unsupplied flag stays")
	})

	t.Run("empty patch changes nothing", func(t *testing.T) {
		before, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)

		got, err := s.Users().UpdateUser(ctx, u.ID, store.UserPatch{})
		require.NoError(t, err)
		require.Equal(t, before, got, "row must be untouched, updated_at included")

		after, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, before, after)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Users().UpdateUser(ctx, "missing", store.UserPatch{})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email collision", func(t *testing.T) {
		other := newTestUser("bob@example.com")
		require.NoError(t, s.Users().CreateUser(ctx, other))

		email := "alice@example.com"
		_, err := s.Users().UpdateUser(ctx, other.ID, store.UserPatch{Email: &email})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice@example.com")
	require.NoError(t, s.Users().CreateUser(ctx, u))

	deleted, err := s.Users().DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, deleted.Email)

	_, err = s.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting twice fails the second time
	_, err = s.Users().DeleteUser(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("a@example.com")))
	require.NoError(t, s.Users().CreateUser(ctx, newTestUser("b@example.com")))

	users, err := s.Users().ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "a@example.com", users[0].Email)
	require.Equal(t, "b@example.com", users[1].Email)

	for _, u := range users {
		require.Empty(t, u.PasswordHash, "listing must never carry the credential")
	}
}

func TestWithTx(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := newTestUser("alice@example.com")

	t.Run("rollback on error", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, u); err != nil {
				return err
			}
			return context.Canceled // force rollback
		})
		require.Error(t, err)

		_, err = s.Users().GetUserByID(ctx, u.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("commit on success", func(t *testing.T) {
		err := s.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, u)
		})
		require.NoError(t, err)

		_, err = s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
	})
}
