package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/server/models"
)

type roleMutation func(ctx context.Context, actor *models.User, login string, codes []string) error

type userAuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userUpdateRequest struct {
	Password string `json:"password"`
}

type rolesUpdateRequest struct {
	Codes []string `json:"codes"`
}

// login accepts form-encoded credentials (username/password) and returns a
// token pair.
func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid form data")
		return
	}

	tokens, err := h.users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeDetail(w, http.StatusBadRequest, "Wrong password or user doesn't exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

func (h *Handlers) signUp(w http.ResponseWriter, r *http.Request) {
	var req userAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.users.SignUp(r.Context(), req.Login, req.Password); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeDetail(w, http.StatusForbidden, "User already exists.")
			return
		}
		writeError(w, err)
		return
	}

	writeMessage(w, "User was created!")
}

func (h *Handlers) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context(), currentUser(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handlers) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetUser(r.Context(), chi.URLParam(r, "login"))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeDetail(w, http.StatusBadRequest, "User doesn't exist.")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handlers) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req userUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.users.UpdatePassword(r.Context(), currentUser(r), req.Password); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, "User's password was updated!")
}

func (h *Handlers) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.users.DeleteUser(r.Context(), currentUser(r), chi.URLParam(r, "login")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, "User was removed!")
}

func (h *Handlers) setRoles(w http.ResponseWriter, r *http.Request) {
	h.mutateRoles(w, r, h.users.SetRoles, "New roles were set to a user's roles.")
}

func (h *Handlers) addRoles(w http.ResponseWriter, r *http.Request) {
	h.mutateRoles(w, r, h.users.AddRoles, "New roles were added to a user's roles.")
}

func (h *Handlers) removeRoles(w http.ResponseWriter, r *http.Request) {
	h.mutateRoles(w, r, h.users.RemoveRoles, "Roles were deleted from a user's roles.")
}

func (h *Handlers) mutateRoles(w http.ResponseWriter, r *http.Request, op roleMutation, okMessage string) {
	var req rolesUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(r.Context(), currentUser(r), chi.URLParam(r, "login"), req.Codes); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, okMessage)
}
