package jwtx

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// NewSignerHS256 creates an HS256 signer from a shared secret. The secret is
// process-wide configuration loaded at startup; an absent or weak secret is
// a fatal configuration problem, not a per-request error.
func NewSignerHS256(secret []byte) (Signer, error) {
	return newHS256Signer(secret)
}
