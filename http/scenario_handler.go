package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lotus-engine/domain"
	"lotus-engine/service"
)

type ScenarioHandler struct {
	service *service.ScenarioService
	logger  *slog.Logger
}

func NewScenarioHandler(service *service.ScenarioService, logger *slog.Logger) *ScenarioHandler {
	return &ScenarioHandler{service: service, logger: logger}
}

// scenarioState reads the share-link query and pins the scenario to the one
// in the path.
func scenarioState(r *http.Request) (domain.ScenarioState, error) {
	id := chi.URLParam(r, "id")
	if id != "1" && id != "2" {
		return domain.ScenarioState{}, fmt.Errorf("%w: scenario %q", service.ErrNotFound, id)
	}
	state := service.ParseScenarioQuery(r.URL.Query())
	state.Scenario, _ = strconv.Atoi(id)
	return state, nil
}

func shareLocation(state domain.ScenarioState) string {
	return "/v1/scenarios/" + strconv.Itoa(state.Scenario) + "?" + service.BuildScenarioQuery(state)
}

func (h *ScenarioHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	state, err := scenarioState(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	result, err := h.service.FromState(state)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	w.Header().Set("Content-Location", shareLocation(state))
	writeJSON(w, http.StatusOK, result, h.logger)
}

func (h *ScenarioHandler) Chart(w http.ResponseWriter, r *http.Request) {
	state, err := scenarioState(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	steps := 0
	if raw := r.URL.Query().Get("steps"); raw != "" {
		steps, err = strconv.Atoi(raw)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "steps must be an integer")
			return
		}
	}

	var points []domain.ChartPoint
	if state.Scenario == 2 {
		points, err = h.service.Chart2(state.TargetBorrowRate90, state.BaseRate, steps)
	} else {
		points, err = h.service.Chart1(state.BorrowRate, state.BaseRate, steps)
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, points, h.logger)
}
