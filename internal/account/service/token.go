package service

import (
	"context"
	"errors"
	"time"

	"github.com/paywave/accountd/internal/account/domain"
	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/pkg/cryptox"
	"github.com/paywave/accountd/pkg/jwtx"
	"github.com/paywave/accountd/pkg/slogx"
)

// ErrInvalidCredentials covers both "no such email" and "wrong password" so
// a caller cannot probe which of the two failed.
var ErrInvalidCredentials = errors.New("invalid_credentials")

type TokenService struct {
	Signer    jwtx.Signer
	Store     store.Store
	Issuer    string
	AccessTTL time.Duration
}

// Login verifies the credentials and issues a signed, time-bounded access
// token for the user. Authentication is stateless; nothing is persisted.
func (s *TokenService) Login(
	ctx context.Context,
	email, password string,
) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to load user by email", "err", err)
		return "", domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		log.Info("password verification failed", "user_id", u.ID)
		return "", domain.User{}, ErrInvalidCredentials
	}

	claims := jwtx.NewAccessClaims(u.ID, u.Name, s.AccessTTL, s.Issuer, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		log.Error("failed to sign access token", "err", err)
		return "", domain.User{}, err
	}

	log.Info("user logged in", "user_id", u.ID)
	return token, u, nil
}
