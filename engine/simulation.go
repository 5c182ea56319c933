package engine

import (
	"lotus-engine/domain"
)

// SimulateInterestAccrual accrues interest on every tranche's borrow for the
// given period and distributes it with the supply-rate cascade. Everything
// generated is received somewhere in the stack.
func SimulateInterestAccrual(tranches []domain.TrancheData, period domain.TimePeriod) domain.InterestSimulationResult {
	years := PeriodYears(period)
	n := len(tranches)

	results := make([]domain.InterestAccrualResult, n)
	cascading := 0.0
	totalGenerated := 0.0
	totalReceived := 0.0

	for i, t := range tranches {
		generated := t.BorrowAssets * t.BorrowRate * years
		total := cascading + generated
		u := cascadeUtilization(t.SupplyUtilization, i, n)
		received := total * u
		cascaded := total * (1 - u)
		cascading = cascaded

		var implied *float64
		if t.SupplyAssets > 0 {
			implied = Float(received / t.SupplyAssets / years)
		}

		results[i] = domain.InterestAccrualResult{
			Index:             i,
			LLTV:              t.LLTV,
			InterestGenerated: generated,
			InterestReceived:  received,
			InterestCascaded:  cascaded,
			NetPosition:       received - generated,
			ImpliedSupplyRate: implied,
		}
		totalGenerated += generated
		totalReceived += received
	}

	return domain.InterestSimulationResult{
		TimePeriod:             period,
		TimeInYears:            years,
		Tranches:               results,
		TotalInterestGenerated: totalGenerated,
		TotalInterestReceived:  totalReceived,
	}
}

// SimulateBadDebt spreads realised losses through the stack. Losses are
// placed at their tranche, then each tranche absorbs its utilization share of
// what reaches it and passes the remainder to the junior tranches. Events
// outside the stack still count toward TotalBadDebt, so they show up as
// unabsorbed.
func SimulateBadDebt(tranches []domain.TrancheData, events ...domain.BadDebtEvent) domain.BadDebtSimulationResult {
	n := len(tranches)

	local := make([]float64, n)
	totalBadDebt := 0.0
	for _, e := range events {
		totalBadDebt += e.Amount
		if e.TrancheIndex >= 0 && e.TrancheIndex < n {
			local[e.TrancheIndex] += e.Amount
		}
	}

	results := make([]domain.BadDebtTrancheResult, n)
	cascadedIn := 0.0
	totalAbsorbed := 0.0

	for i, t := range tranches {
		u := cascadeUtilization(t.SupplyUtilization, i, n)
		total := cascadedIn + local[i]
		absorbed := total * u
		out := total * (1 - u)
		remaining := t.SupplyAssets - absorbed

		results[i] = domain.BadDebtTrancheResult{
			Index:              i,
			LLTV:               t.LLTV,
			OriginalSupply:     t.SupplyAssets,
			SupplyUtilization:  u,
			BadDebtCascadedIn:  cascadedIn,
			BadDebtLocal:       local[i],
			BadDebtAbsorbed:    absorbed,
			BadDebtCascadedOut: out,
			RemainingSupply:    remaining,
			WipedOut:           remaining <= 0 && absorbed > 0,
		}
		totalAbsorbed += absorbed
		cascadedIn = out
	}

	recorded := make([]domain.BadDebtEvent, len(events))
	copy(recorded, events)

	return domain.BadDebtSimulationResult{
		BadDebtEvents:     recorded,
		TotalBadDebt:      totalBadDebt,
		Tranches:          results,
		TotalAbsorbed:     totalAbsorbed,
		UnabsorbedBadDebt: totalBadDebt - totalAbsorbed,
	}
}

// SimulateBadDebtAt is SimulateBadDebt with a single event.
func SimulateBadDebtAt(tranches []domain.TrancheData, index int, amount float64) domain.BadDebtSimulationResult {
	return SimulateBadDebt(tranches, domain.BadDebtEvent{TrancheIndex: index, Amount: amount})
}
