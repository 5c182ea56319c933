package http

import (
	"log/slog"
	"net/http"

	"lotus-engine/domain"
	"lotus-engine/service"
)

type TrancheHandler struct {
	service *service.TrancheService
	logger  *slog.Logger
}

func NewTrancheHandler(service *service.TrancheService, logger *slog.Logger) *TrancheHandler {
	return &TrancheHandler{service: service, logger: logger}
}

func (h *TrancheHandler) Compute(w http.ResponseWriter, r *http.Request) {
	var req domain.TrancheRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	resp, err := h.service.Compute(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

func (h *TrancheHandler) FundingMatrix(w http.ResponseWriter, r *http.Request) {
	var req domain.TrancheRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	fm, err := h.service.FundingMatrix(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, fm, h.logger)
}
