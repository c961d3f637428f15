package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paywave/accountd/internal/account/service"
	"github.com/paywave/accountd/pkg/httpx"
	"github.com/paywave/accountd/pkg/slogx"
)

type LoginHandler struct {
	TokenService *service.TokenService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ServeHTTP verifies credentials and returns a fresh access token plus a
// redacted identity view. The failure message is identical whether the
// email was unknown or the password wrong.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "please fill all fields"})
		return
	}

	token, user, err := h.TokenService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.WriteJSON(w, http.StatusUnauthorized,
				ErrorResponse{Message: "invalid email or password"})
			return
		}
		log.Error("login failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError,
			ErrorResponse{Message: "server error, please try again later"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		Token:   token,
		User: LoginUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	})
}
