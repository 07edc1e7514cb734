package api

import (
	"net/http"

	"parkhub/internal/service"
)

type AdminHandler struct {
	Stats *service.StatsService
}

func NewAdminHandler(stats *service.StatsService) *AdminHandler {
	return &AdminHandler{Stats: stats}
}

func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Stats.Overview(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Database error")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
