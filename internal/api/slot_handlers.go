package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parkhub/internal/entities"
	"parkhub/internal/service"
)

type SlotHandler struct {
	Service *service.SlotService
}

func NewSlotHandler(svc *service.SlotService) *SlotHandler {
	return &SlotHandler{Service: svc}
}

func (h *SlotHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	zone := r.URL.Query().Get("zone")
	slotType := r.URL.Query().Get("type")
	status := r.URL.Query().Get("status")

	slots, err := h.Service.ListSlots(zone, slotType, status)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if slots == nil {
		slots = []entities.SlotResponse{}
	}
	respondJSON(w, http.StatusOK, slots)
}

func (h *SlotHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	slot, err := h.Service.CreateSlot(req)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, slot)
}

func (h *SlotHandler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid ID")
		return
	}
	if err := h.Service.DeleteSlot(id); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Slot deleted"})
}
