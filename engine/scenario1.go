package engine

import (
	"math"

	"lotus-engine/domain"
)

// DefaultChartSteps is the number of intervals sampled by the chart
// generators when the caller passes a non-positive step count.
const DefaultChartSteps = 100

// ComputeScenario1 compares a pool that pays suppliers a base rate plus the
// utilized share of the spread (PD) with one that pays borrowRate * u (no PD).
func ComputeScenario1(in domain.Scenario1Inputs) domain.Scenario1Outputs {
	r, rb, u := in.BorrowRate, in.BaseRate, in.Utilization
	spread := math.Max(r-rb, 0)

	supplyPD := rb + spread*u
	supplyNoPD := r * u
	wedgePD := r - supplyPD
	wedgeNoPD := r - supplyNoPD

	return domain.Scenario1Outputs{
		Spread:            spread,
		BorrowRate:        r,
		SupplyRatePD:      supplyPD,
		SupplyRateNoPD:    supplyNoPD,
		WedgePD:           wedgePD,
		WedgeNoPD:         wedgeNoPD,
		WedgeReduction:    wedgeNoPD - wedgePD,
		BaseExceedsBorrow: rb >= r,
	}
}

// GenerateScenario1ChartData samples both supply-rate curves at
// u = i/steps for i in [0, steps].
func GenerateScenario1ChartData(borrowRate, baseRate float64, steps int) []domain.ChartPoint {
	if steps <= 0 {
		steps = DefaultChartSteps
	}
	points := make([]domain.ChartPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(steps)
		out := ComputeScenario1(domain.Scenario1Inputs{
			BorrowRate:  borrowRate,
			BaseRate:    baseRate,
			Utilization: u,
		})
		points = append(points, domain.ChartPoint{
			Utilization: u,
			SupplyPD:    out.SupplyRatePD,
			SupplyNoPD:  out.SupplyRateNoPD,
		})
	}
	return points
}
