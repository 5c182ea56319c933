package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus-engine/domain"
)

func TestComputeScenario1(t *testing.T) {
	out := ComputeScenario1(domain.Scenario1Inputs{BorrowRate: 0.12, BaseRate: 0.05, Utilization: 0.7})

	assert.InDelta(t, 0.07, out.Spread, 1e-12)
	assert.InDelta(t, 0.12, out.BorrowRate, 1e-12)
	assert.InDelta(t, 0.099, out.SupplyRatePD, 1e-12)
	assert.InDelta(t, 0.084, out.SupplyRateNoPD, 1e-12)
	assert.InDelta(t, 0.021, out.WedgePD, 1e-12)
	assert.InDelta(t, 0.036, out.WedgeNoPD, 1e-12)
	assert.InDelta(t, 0.015, out.WedgeReduction, 1e-12)
	assert.False(t, out.BaseExceedsBorrow)
}

func TestComputeScenario1BaseAboveBorrow(t *testing.T) {
	out := ComputeScenario1(domain.Scenario1Inputs{BorrowRate: 0.04, BaseRate: 0.06, Utilization: 0.5})

	assert.Zero(t, out.Spread)
	assert.True(t, out.BaseExceedsBorrow)
	assert.InDelta(t, 0.06, out.SupplyRatePD, 1e-12)
}

func TestScenario1ChartData(t *testing.T) {
	points := GenerateScenario1ChartData(0.12, 0.05, 10)
	require.Len(t, points, 11)

	assert.Zero(t, points[0].Utilization)
	assert.InDelta(t, 0.05, points[0].SupplyPD, 1e-12)
	assert.Zero(t, points[0].SupplyNoPD)
	assert.Equal(t, 1.0, points[10].Utilization)
	assert.InDelta(t, 0.12, points[10].SupplyPD, 1e-12)
	assert.InDelta(t, 0.12, points[10].SupplyNoPD, 1e-12)
	assert.Nil(t, points[5].BorrowPD)

	assert.Len(t, GenerateScenario1ChartData(0.12, 0.05, 0), DefaultChartSteps+1)
}

func TestCalculateKinkFactor(t *testing.T) {
	tests := []struct {
		u    float64
		want float64
	}{
		{0, 0.25},
		{0.45, 0.625},
		{0.9, 1},
		{0.95, 2.5},
		{1, 4},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, CalculateKinkFactor(tt.u), 1e-12, "u=%v", tt.u)
	}
	assert.InDelta(t, 0.04375, CalculateSpreadAtUtilization(0.07, 0.45), 1e-12)
}

func TestComputeScenario2(t *testing.T) {
	t.Run("zero utilization", func(t *testing.T) {
		out := ComputeScenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: 0.05, Utilization: 0})
		assert.InDelta(t, 0.07, out.Spread90, 1e-12)
		assert.InDelta(t, 0.0175, out.SpreadAtU, 1e-12)
		assert.InDelta(t, 0.0675, out.BorrowRatePD, 1e-12)
		assert.InDelta(t, 0.03, out.BorrowRateNoPD, 1e-12)
		assert.InDelta(t, 0.05, out.SupplyRatePD, 1e-12)
		assert.Zero(t, out.SupplyRateNoPD)
		assert.False(t, out.SpreadIsZero)
	})

	t.Run("full utilization", func(t *testing.T) {
		out := ComputeScenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: 0.05, Utilization: 1})
		assert.InDelta(t, 0.28, out.SpreadAtU, 1e-12)
		assert.InDelta(t, 0.33, out.BorrowRatePD, 1e-12)
		assert.InDelta(t, 0.48, out.BorrowRateNoPD, 1e-12)
	})

	t.Run("target utilization has no deviation", func(t *testing.T) {
		out := ComputeScenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: 0.05, Utilization: 0.9})
		assert.InDelta(t, 0.12, out.TargetBorrow90, 1e-12)
		assert.InDelta(t, 0.113, out.TargetSupplyPD90, 1e-12)
		assert.InDelta(t, 0.108, out.TargetSupplyNoPD90, 1e-12)
		for _, d := range []*float64{out.BorrowDeviationPD, out.BorrowDeviationNoPD, out.SupplyDeviationPD, out.SupplyDeviationNoPD} {
			require.NotNil(t, d)
			assert.InDelta(t, 0, *d, 1e-12)
		}
	})

	t.Run("below target", func(t *testing.T) {
		out := ComputeScenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0.12, BaseRate: 0.05, Utilization: 0.7})
		require.NotNil(t, out.BorrowDeviationPD)
		require.NotNil(t, out.BorrowDeviationNoPD)
		assert.InDelta(t, -0.0972, *out.BorrowDeviationPD, tolerance)
		assert.InDelta(t, -0.1667, *out.BorrowDeviationNoPD, tolerance)
	})

	t.Run("zero target", func(t *testing.T) {
		out := ComputeScenario2(domain.Scenario2Inputs{TargetBorrowRate90: 0, BaseRate: 0, Utilization: 0.5})
		assert.True(t, out.SpreadIsZero)
		assert.Nil(t, out.BorrowDeviationPD)
		assert.Nil(t, out.SupplyDeviationNoPD)
	})
}

func TestScenario2ChartData(t *testing.T) {
	points := GenerateScenario2ChartData(0.12, 0.05, 4)
	require.Len(t, points, 5)
	for _, p := range points {
		require.NotNil(t, p.BorrowPD)
		require.NotNil(t, p.BorrowNoPD)
	}
	assert.InDelta(t, 0.48, *points[4].BorrowNoPD, 1e-12)
}
