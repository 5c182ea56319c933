package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lotus-engine/service"
)

type SnapshotHandler struct {
	service *service.SnapshotService
	logger  *slog.Logger
}

func NewSnapshotHandler(service *service.SnapshotService, logger *slog.Logger) *SnapshotHandler {
	return &SnapshotHandler{service: service, logger: logger}
}

func (h *SnapshotHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, snap, h.logger)
}
