package http

import (
	"log/slog"
	"net/http"

	"lotus-engine/domain"
	"lotus-engine/service"
)

type SimulationHandler struct {
	service *service.SimulationService
	logger  *slog.Logger
}

func NewSimulationHandler(service *service.SimulationService, logger *slog.Logger) *SimulationHandler {
	return &SimulationHandler{service: service, logger: logger}
}

func (h *SimulationHandler) InterestAccrual(w http.ResponseWriter, r *http.Request) {
	var req domain.InterestSimulationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.service.InterestAccrual(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}

func (h *SimulationHandler) BadDebt(w http.ResponseWriter, r *http.Request) {
	var req domain.BadDebtSimulationRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	result, err := h.service.BadDebt(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, result, h.logger)
}
