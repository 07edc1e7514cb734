package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "parkhub/internal/errors"
)

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"reservation ended", apperrors.ErrReservationEnded, http.StatusConflict},
		{"wrapped reservation ended", fmt.Errorf("cancel r1: %w", apperrors.ErrReservationEnded), http.StatusConflict},
		{"slot unavailable", apperrors.ErrSlotUnavailable, http.StatusConflict},
		{"email taken", apperrors.ErrEmailTaken, http.StatusConflict},
		{"invalid interval", apperrors.ErrInvalidInterval, http.StatusBadRequest},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"bad credentials", apperrors.ErrBadCredentials, http.StatusUnauthorized},
		{"typed bad request", apperrors.ErrBadRequest("unknown slot type"), http.StatusBadRequest},
		{"typed unauthorized", apperrors.ErrUnauthorized("token expired"), http.StatusUnauthorized},
		{"unknown", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondServiceError(rec, tt.err)

			if rec.Code != tt.wantCode {
				t.Errorf("code = %d, want %d", rec.Code, tt.wantCode)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error message missing from body")
			}
			if tt.wantCode == http.StatusInternalServerError && body["error"] != "internal error" {
				t.Errorf("internal errors must not leak details, got %q", body["error"])
			}
		})
	}
}
