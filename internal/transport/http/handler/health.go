package handler

import (
	"net/http"

	"github.com/shop-assistant-api/internal/dto"
)

// HealthHandler answers liveness probes.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.MessageResponse{Message: "ok"})
}
