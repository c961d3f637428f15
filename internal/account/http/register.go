package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paywave/accountd/internal/account/service"
	"github.com/paywave/accountd/pkg/httpx"
	"github.com/paywave/accountd/pkg/slogx"
)

type RegisterHandler struct {
	UserService *service.UserService
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`

	Transfer bool `json:"transfer"`
	Deposit  bool `json:"deposit"`
	Receive  bool `json:"receive"`
	Send     bool `json:"send"`
}

// ServeHTTP creates a new user record. Registration never issues a token;
// the caller logs in separately.
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	_, err := h.UserService.Register(ctx, service.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Transfer: req.Transfer,
		Deposit:  req.Deposit,
		Receive:  req.Receive,
		Send:     req.Send,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "user already exists"})
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		default:
			log.Error("failed to register user", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError,
				ErrorResponse{Message: "server error, please try again later"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, MessageResponse{Message: "user created successfully"})
}
