package http

import (
	"time"

	"github.com/paywave/accountd/internal/account/domain"
)

// ErrorResponse is the uniform failure payload. Unexpected server failures
// carry a generic message only; the detail stays in the server logs.
type ErrorResponse struct {
	Message string `json:"message"`
}

// MessageResponse is a bare confirmation payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the redacted view of a user record: everything except the
// credential.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Transfer bool   `json:"transfer"`
	Deposit  bool   `json:"deposit"`
	Receive  bool   `json:"receive"`
	Send     bool   `json:"send"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func redactUser(u domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Transfer:  u.Transfer,
		Deposit:   u.Deposit,
		Receive:   u.Receive,
		Send:      u.Send,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginUser is the slim identity view returned alongside a fresh token.
type LoginUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginResponse carries the issued token and the redacted identity.
type LoginResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	User    LoginUser `json:"user"`
}

// DeleteResponse confirms a deletion and names the removed record.
type DeleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
