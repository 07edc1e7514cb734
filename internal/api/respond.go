package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "parkhub/internal/errors"
)

func respondJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, code int, msg string) {
	respondJSON(w, code, map[string]string{"error": msg})
}

// respondServiceError maps service sentinels onto HTTP codes. Anything
// unrecognized stays a 500 with a generic message.
func respondServiceError(w http.ResponseWriter, err error) {
	var he *apperrors.HTTPError
	if errors.As(err, &he) {
		respondError(w, he.Code, he.Message)
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrReservationEnded):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrSlotUnavailable),
		errors.Is(err, apperrors.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrInvalidInterval):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, apperrors.ErrBadCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
