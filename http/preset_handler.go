package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lotus-engine/service"
)

// defaultPresetName selects the reset configuration.
const defaultPresetName = "default"

type PresetHandler struct {
	service *service.PresetService
	logger  *slog.Logger
}

func NewPresetHandler(service *service.PresetService, logger *slog.Logger) *PresetHandler {
	return &PresetHandler{service: service, logger: logger}
}

func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List(), h.logger)
}

func (h *PresetHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == defaultPresetName {
		writeJSON(w, http.StatusOK, h.service.Default(), h.logger)
		return
	}

	tranches, err := h.service.Tranches(name)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, tranches, h.logger)
}
