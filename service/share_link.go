package service

import (
	"math"
	"net/url"
	"strconv"

	"lotus-engine/domain"
)

// DefaultScenarioState is the scenario page state when no link parameters
// are given.
var DefaultScenarioState = domain.ScenarioState{
	Scenario:           1,
	BorrowRate:         0.12,
	TargetBorrowRate90: 0.12,
	BaseRate:           0.05,
	Utilization:        0.7,
}

// ParseScenarioQuery reads a shared scenario link. Missing, malformed or
// out-of-range values keep their defaults.
func ParseScenarioQuery(q url.Values) domain.ScenarioState {
	state := DefaultScenarioState

	switch q.Get("scenario") {
	case "1":
		state.Scenario = 1
	case "2":
		state.Scenario = 2
	}

	unitParam(q, "R", &state.BorrowRate)
	unitParam(q, "R90", &state.TargetBorrowRate90)
	unitParam(q, "Rb", &state.BaseRate)
	unitParam(q, "u", &state.Utilization)
	return state
}

func unitParam(q url.Values, name string, dst *float64) {
	raw := q.Get(name)
	if raw == "" {
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > 1 {
		return
	}
	*dst = v
}

// BuildScenarioQuery encodes state as a share-link query string. Only the
// borrow-rate parameter of the selected scenario is written.
func BuildScenarioQuery(state domain.ScenarioState) string {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', 4, 64)
	}

	// Fixed order: scenario, rate, Rb, u.
	query := "scenario=" + strconv.Itoa(state.Scenario)
	if state.Scenario == 2 {
		query += "&R90=" + format(state.TargetBorrowRate90)
	} else {
		query += "&R=" + format(state.BorrowRate)
	}
	query += "&Rb=" + format(state.BaseRate)
	query += "&u=" + format(state.Utilization)
	return query
}
