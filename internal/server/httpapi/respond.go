package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ysolovyov/knorozov/internal/common"
)

type detailResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, detailResponse{Detail: detail})
}

// writeError maps the error taxonomy onto HTTP statuses. Validation and
// existence failures are client errors; token failures split into expired
// (401) and everything else (403); anything unrecognized is a 500.
func writeError(w http.ResponseWriter, err error) {
	var unknownLang *common.UnknownLanguageError

	switch {
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorNotFound),
		errors.As(err, &unknownLang):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrTokenExpired):
		writeDetail(w, http.StatusUnauthorized, "Token expired")
	case errors.Is(err, common.ErrInvalidToken):
		writeDetail(w, http.StatusForbidden, "Could not validate credentials")
	case errors.Is(err, common.ErrorForbidden):
		writeDetail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrUserNotFound):
		writeDetail(w, http.StatusNotFound, "Could not find user")
	default:
		writeDetail(w, http.StatusInternalServerError, "internal error")
	}
}
