package engine

import (
	"math"

	"lotus-engine/domain"
)

// Kinked curve parameters. The factor runs from MinKinkFactor at u = 0 to
// 1 at TargetUtilization and MaxKinkFactor at u = 1.
const (
	TargetUtilization = 0.9
	MinKinkFactor     = 0.25
	MaxKinkFactor     = 4.0
)

// CalculateKinkFactor returns the rate multiplier at utilization u.
func CalculateKinkFactor(u float64) float64 {
	if u <= TargetUtilization {
		return MinKinkFactor + (1-MinKinkFactor)*(u/TargetUtilization)
	}
	return 1 + (MaxKinkFactor-1)*((u-TargetUtilization)/(1-TargetUtilization))
}

// CalculateSpreadAtUtilization scales the spread at target utilization by
// the kink factor.
func CalculateSpreadAtUtilization(spread90, u float64) float64 {
	return spread90 * CalculateKinkFactor(u)
}

func deviation(value, target float64) *float64 {
	if target <= 0 {
		return nil
	}
	return Float((value - target) / target)
}

// ComputeScenario2 moves a kinked interest-rate curve off its target and
// reports how far borrow and supply rates drift with and without a base
// rate floor.
func ComputeScenario2(in domain.Scenario2Inputs) domain.Scenario2Outputs {
	r90, rb, u := in.TargetBorrowRate90, in.BaseRate, in.Utilization
	spread90 := math.Max(r90-rb, 0)
	factor := CalculateKinkFactor(u)
	spreadAtU := CalculateSpreadAtUtilization(spread90, u)

	borrowPD := rb + spreadAtU
	borrowNoPD := r90 * factor
	supplyPD := rb + spreadAtU*u
	supplyNoPD := borrowNoPD * u

	targetBorrow := r90
	targetSupplyPD := rb + spread90*TargetUtilization
	targetSupplyNoPD := r90 * TargetUtilization

	return domain.Scenario2Outputs{
		Spread90:            spread90,
		SpreadAtU:           spreadAtU,
		BorrowRatePD:        borrowPD,
		BorrowRateNoPD:      borrowNoPD,
		SupplyRatePD:        supplyPD,
		SupplyRateNoPD:      supplyNoPD,
		TargetBorrow90:      targetBorrow,
		TargetSupplyPD90:    targetSupplyPD,
		TargetSupplyNoPD90:  targetSupplyNoPD,
		BorrowDeviationPD:   deviation(borrowPD, targetBorrow),
		BorrowDeviationNoPD: deviation(borrowNoPD, targetBorrow),
		SupplyDeviationPD:   deviation(supplyPD, targetSupplyPD),
		SupplyDeviationNoPD: deviation(supplyNoPD, targetSupplyNoPD),
		SpreadIsZero:        spread90 == 0,
	}
}

// GenerateScenario2ChartData samples borrow and supply curves of both pool
// designs at u = i/steps for i in [0, steps].
func GenerateScenario2ChartData(targetBorrowRate90, baseRate float64, steps int) []domain.ChartPoint {
	if steps <= 0 {
		steps = DefaultChartSteps
	}
	points := make([]domain.ChartPoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		u := float64(i) / float64(steps)
		out := ComputeScenario2(domain.Scenario2Inputs{
			TargetBorrowRate90: targetBorrowRate90,
			BaseRate:           baseRate,
			Utilization:        u,
		})
		points = append(points, domain.ChartPoint{
			Utilization: u,
			SupplyPD:    out.SupplyRatePD,
			SupplyNoPD:  out.SupplyRateNoPD,
			BorrowPD:    Float(out.BorrowRatePD),
			BorrowNoPD:  Float(out.BorrowRateNoPD),
		})
	}
	return points
}
