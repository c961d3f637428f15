package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/internal/account/store/drivers/sqlite"
	"github.com/paywave/accountd/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "accountd-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func registerParams(email string) RegisterParams {
	return RegisterParams{
		Name:     "Alice",
		Email:    email,
		Password: "hunter2-but-longer",
		Transfer: true,
		Receive:  true,
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u, err := svc.Register(ctx, registerParams("alice@example.com"))
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.True(t, u.Transfer)
	require.True(t, u.Receive)
	require.False(t, u.Deposit)

	// Stored credential is never the submitted plaintext
	stored, err := svc.Store.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEqual(t, "hunter2-but-longer", stored.PasswordHash)
	require.NoError(t, cryptox.VerifyPassword("hunter2-but-longer", stored.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	first, err := svc.Register(ctx, registerParams("alice@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerParams("alice@example.com"))
	require.ErrorIs(t, err, ErrEmailTaken)

	// Original record unchanged
	got, err := svc.Store.Users().GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
}

func TestRegister_RequiredFields(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	for name, p := range map[string]RegisterParams{
		"missing name":     {Email: "a@x.com", Password: "pw1"},
		"missing email":    {Name: "A", Password: "pw1"},
		"missing password": {Name: "A", Email: "a@x.com"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Register(ctx, p)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u, err := svc.Register(ctx, registerParams("alice@example.com"))
	require.NoError(t, err)

	t.Run("name only leaves email and credential", func(t *testing.T) {
		before, err := svc.Store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)

		name := "Alison"
		got, err := svc.UpdateUser(ctx, u.ID, UserPatch{Name: &name})
		require.NoError(t, err)
		require.Equal(t, "Alison", got.Name)
		require.Equal(t, before.Email, got.Email)
		require.Equal(t, before.PasswordHash, got.PasswordHash)
	})

	t.Run("password goes through the codec", func(t *testing.T) {
		pw := "new-password-42"
		got, err := svc.UpdateUser(ctx, u.ID, UserPatch{Password: &pw})
		require.NoError(t, err)
		require.NotEqual(t, pw, got.PasswordHash, "plaintext must never be stored")
		require.NoError(t, cryptox.VerifyPassword(pw, got.PasswordHash))
	})

	t.Run("explicit false clears a flag", func(t *testing.T) {
		off := false
		got, err := svc.UpdateUser(ctx, u.ID, UserPatch{Transfer: &off})
		require.NoError(t, err)
		require.False(t, got.Transfer)
		require.True(t, got.Receive)
	})

	t.Run("empty patch is a no-op", func(t *testing.T) {
		before, err := svc.Store.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)

		got, err := svc.UpdateUser(ctx, u.ID, UserPatch{})
		require.NoError(t, err)
		require.Equal(t, before.Name, got.Name)
		require.Equal(t, before.Email, got.Email)
		require.Equal(t, before.PasswordHash, got.PasswordHash)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateUser(ctx, "missing", UserPatch{})
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email collision maps to conflict", func(t *testing.T) {
		other, err := svc.Register(ctx, registerParams("bob@example.com"))
		require.NoError(t, err)

		email := "alice@example.com"
		_, err = svc.UpdateUser(ctx, other.ID, UserPatch{Email: &email})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("empty supplied password rejected", func(t *testing.T) {
		pw := ""
		_, err := svc.UpdateUser(ctx, u.ID, UserPatch{Password: &pw})
		require.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	u, err := svc.Register(ctx, registerParams("alice@example.com"))
	require.NoError(t, err)

	deleted, err := svc.DeleteUser(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, deleted.ID)

	_, err = svc.DeleteUser(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestListUsers_RedactsCredential(t *testing.T) {
	ctx := context.Background()
	svc := &UserService{Store: newTestStore(t)}

	_, err := svc.Register(ctx, registerParams("alice@example.com"))
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Empty(t, users[0].PasswordHash)
	require.True(t, users[0].Transfer, "flags pass through as submitted")
}
