package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus-engine/domain"
)

func TestScenario1(t *testing.T) {
	svc := NewScenarioService()

	out, err := svc.Scenario1(domain.Scenario1Inputs{BorrowRate: 0.12, BaseRate: 0.05, Utilization: 0.7})
	require.NoError(t, err)
	assert.InDelta(t, 0.099, out.SupplyRatePD, 1e-12)
	assert.InDelta(t, 0.084, out.SupplyRateNoPD, 1e-12)

	_, err = svc.Scenario1(domain.Scenario1Inputs{BorrowRate: 1.2, BaseRate: 0.05, Utilization: 0.7})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestScenario2(t *testing.T) {
	svc := NewScenarioService()

	out, err := svc.Scenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: 0.05, Utilization: 0.9})
	require.NoError(t, err)
	assert.InDelta(t, 0.12, out.BorrowRatePD, 1e-12)
	assert.InDelta(t, 0.12, out.BorrowRateNoPD, 1e-12)

	_, err = svc.Scenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: -0.01, Utilization: 0.9})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCharts(t *testing.T) {
	svc := NewScenarioService()

	points, err := svc.Chart1(0.12, 0.05, 0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultChartSteps+1)

	points, err = svc.Chart2(0.12, 0.05, 20)
	require.NoError(t, err)
	require.Len(t, points, 21)
	assert.NotNil(t, points[0].BorrowPD)

	_, err = svc.Chart1(0.12, 0.05, MaxChartSteps+1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Chart2(0.12, 0.05, -1)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Chart2(2, 0.05, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFromState(t *testing.T) {
	svc := NewScenarioService()

	out, err := svc.FromState(DefaultScenarioState)
	require.NoError(t, err)
	assert.IsType(t, domain.Scenario1Outputs{}, out)

	state := DefaultScenarioState
	state.Scenario = 2
	out, err = svc.FromState(state)
	require.NoError(t, err)
	assert.IsType(t, domain.Scenario2Outputs{}, out)
}

func TestParseScenarioQuery(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected domain.ScenarioState
	}{
		{"empty", "", DefaultScenarioState},
		{
			"scenario 1",
			"scenario=1&R=0.2000&Rb=0.0300&u=0.5000",
			domain.ScenarioState{Scenario: 1, BorrowRate: 0.2, TargetBorrowRate90: 0.12, BaseRate: 0.03, Utilization: 0.5},
		},
		{
			"scenario 2",
			"scenario=2&R90=0.1500&u=0.95",
			domain.ScenarioState{Scenario: 2, BorrowRate: 0.12, TargetBorrowRate90: 0.15, BaseRate: 0.05, Utilization: 0.95},
		},
		{
			"invalid values keep defaults",
			"scenario=3&R=abc&Rb=1.5&u=-0.1",
			DefaultScenarioState,
		},
		{
			"not a number keeps defaults",
			"u=NaN&Rb=nan&R90=Inf",
			DefaultScenarioState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ParseScenarioQuery(q))
		})
	}
}

func TestFromStateIgnoresNaNLinkValues(t *testing.T) {
	q, err := url.ParseQuery("scenario=1&u=NaN&Rb=nan")
	require.NoError(t, err)

	state := ParseScenarioQuery(q)
	assert.Equal(t, 0.7, state.Utilization)
	assert.Equal(t, 0.05, state.BaseRate)

	out, err := NewScenarioService().FromState(state)
	require.NoError(t, err)
	assert.IsType(t, domain.Scenario1Outputs{}, out)
}

func TestBuildScenarioQuery(t *testing.T) {
	assert.Equal(t, "scenario=1&R=0.1200&Rb=0.0500&u=0.7000", BuildScenarioQuery(DefaultScenarioState))

	state := DefaultScenarioState
	state.Scenario = 2
	state.TargetBorrowRate90 = 0.25
	query := BuildScenarioQuery(state)
	assert.Equal(t, "scenario=2&R90=0.2500&Rb=0.0500&u=0.7000", query)

	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	assert.Equal(t, state, ParseScenarioQuery(q))
}
