package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/paywave/accountd/internal/account/service"
	"github.com/paywave/accountd/internal/account/store"
	"github.com/paywave/accountd/pkg/httpx"
	"github.com/paywave/accountd/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// updateRequest uses pointers so "field absent" and "field explicitly set
// to a falsy value" stay distinguishable; an explicit false clears a flag.
type updateRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`

	Transfer *bool `json:"transfer"`
	Deposit  *bool `json:"deposit"`
	Receive  *bool `json:"receive"`
	Send     *bool `json:"send"`
}

// HandleList returns all user records, credential redacted.
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError,
			ErrorResponse{Message: "server error, please try again later"})
		return
	}

	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, redactUser(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet returns a single redacted record.
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	user, err := h.UserService.GetUser(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "user not found"})
			return
		}
		log.Error("failed to fetch user", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError,
			ErrorResponse{Message: "server error, please try again later"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, redactUser(user))
}

// HandleUpdate applies a partial update and returns the updated record.
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	updated, err := h.UserService.UpdateUser(ctx, r.PathValue("id"), service.UserPatch{
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
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "user not found"})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{Message: "email already in use"})
		case errors.Is(err, service.ErrValidation):
			httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		default:
			log.Error("failed to update user", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError,
				ErrorResponse{Message: "server error, please try again later"})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, redactUser(updated))
}

// HandleDelete removes a record and confirms which one went away.
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	deleted, err := h.UserService.DeleteUser(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSON(w, http.StatusNotFound, ErrorResponse{Message: "user not found"})
			return
		}
		log.Error("failed to delete user", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError,
			ErrorResponse{Message: "server error, please try again later"})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, DeleteResponse{
		Message: "user deleted successfully",
		ID:      deleted.ID,
	})
}
