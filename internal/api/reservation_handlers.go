package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkhub/internal/auth"
	"parkhub/internal/db"
	"parkhub/internal/entities"
	"parkhub/internal/service"
)

type ReservationHandler struct {
	Service *service.ReservationService
}

func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	res, err := h.Service.CreateReservation(userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, res)
}

// ListReservations serves both the active view (?status=active) and the full
// history. Only the caller's own rows are ever returned.
func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != db.StatusActive &&
		status != db.StatusCancelled && status != db.StatusExpired {
		respondError(w, http.StatusBadRequest, "Unknown status filter")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	list, err := h.Service.ListReservations(userID, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if list == nil {
		list = []entities.ReservationResponse{}
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}

	userID := auth.UserIDFromContext(r.Context())
	if err := h.Service.CancelReservation(id, userID); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Reservation cancelled"})
}
