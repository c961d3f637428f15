package jwtx

import (
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretSize is the minimum accepted HS256 secret length in bytes.
// HMAC-SHA256 should be keyed with at least its output size.
const MinSecretSize = 32

// HS256Signer implements the Signer interface using HMAC SHA-256.
type HS256Signer struct {
	secret []byte
	alg    string
}

func newHS256Signer(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	if len(secret) < MinSecretSize {
		return nil, ErrWeakSecret
	}

	return &HS256Signer{
		secret: secret,
		alg:    jwt.SigningMethodHS256.Alg(),
	}, nil
}

func (s *HS256Signer) Alg() string { return s.alg }

// Sign takes your claims and turns them into a signed JWT string.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
