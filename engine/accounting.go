// Package engine implements tranche accounting for a stack of lending
// tranches ordered from most senior to most junior. Every function is pure:
// inputs are never mutated and each call returns freshly allocated values.
package engine

import (
	"math"

	"lotus-engine/domain"
)

func supplies(tranches []domain.TrancheInput, includePendingInterest bool) []float64 {
	out := make([]float64, len(tranches))
	for i, t := range tranches {
		out[i] = t.Supply(includePendingInterest)
	}
	return out
}

// ComputeJrSupply returns, for each tranche, the supply of that tranche and
// every tranche junior to it.
func ComputeJrSupply(tranches []domain.TrancheInput, includePendingInterest bool) []float64 {
	out := make([]float64, len(tranches))
	running := 0.0
	for i := len(tranches) - 1; i >= 0; i-- {
		running += tranches[i].Supply(includePendingInterest)
		out[i] = running
	}
	return out
}

// ComputeJrBorrow returns, for each tranche, the borrow of that tranche and
// every tranche junior to it.
func ComputeJrBorrow(tranches []domain.TrancheInput) []float64 {
	out := make([]float64, len(tranches))
	running := 0.0
	for i := len(tranches) - 1; i >= 0; i-- {
		running += tranches[i].BorrowAssets
		out[i] = running
	}
	return out
}

// ComputeJrNetSupply floors jrSupply - jrBorrow at zero.
func ComputeJrNetSupply(jrSupply, jrBorrow []float64) []float64 {
	out := make([]float64, len(jrSupply))
	for i := range jrSupply {
		out[i] = math.Max(0, jrSupply[i]-jrBorrow[i])
	}
	return out
}

// ComputeFreeSupply is the running minimum of jrNetSupply from the most
// senior tranche down. The returned binding indices hold the most senior
// index at which the final minimum is reached, or nothing for an empty stack.
func ComputeFreeSupply(jrNetSupply []float64) ([]float64, []int) {
	if len(jrNetSupply) == 0 {
		return []float64{}, []int{}
	}

	out := make([]float64, len(jrNetSupply))
	minValue := math.Inf(1)
	minIndex := 0
	for i, v := range jrNetSupply {
		if v < minValue {
			minValue = v
			minIndex = i
		}
		out[i] = minValue
	}
	return out, []int{minIndex}
}

// ComputeAvailableSupply is the liquidity a tranche can lend: its junior
// net supply plus what it has already lent out.
func ComputeAvailableSupply(tranches []domain.TrancheInput, jrNetSupply []float64) []float64 {
	out := make([]float64, len(tranches))
	for i, t := range tranches {
		out[i] = jrNetSupply[i] + t.BorrowAssets
	}
	return out
}

// ComputeSupplyUtilization is supply / availableSupply, nil where nothing is
// available.
func ComputeSupplyUtilization(tranches []domain.TrancheInput, availableSupply []float64, includePendingInterest bool) []*float64 {
	out := make([]*float64, len(tranches))
	for i, t := range tranches {
		if availableSupply[i] == 0 {
			continue
		}
		out[i] = Float(t.Supply(includePendingInterest) / availableSupply[i])
	}
	return out
}

// ComputeBorrowUtilization is the share of junior supply that is not free,
// nil where there is no junior supply.
func ComputeBorrowUtilization(jrSupply, freeSupply []float64) []*float64 {
	out := make([]*float64, len(jrSupply))
	for i := range jrSupply {
		if jrSupply[i] == 0 {
			continue
		}
		out[i] = Float((jrSupply[i] - freeSupply[i]) / jrSupply[i])
	}
	return out
}

// cascadeUtilization is the share of the amount reaching tranche i that the
// tranche keeps. The most junior tranche keeps everything.
func cascadeUtilization(utilization *float64, i, n int) float64 {
	if utilization == nil || i == n-1 {
		return 1
	}
	return *utilization
}

// ComputeSupplyRates walks the stack from senior to junior. Each tranche
// keeps its utilization share of the interest reaching it and passes the rest
// down. Rates are nil for tranches without supply.
func ComputeSupplyRates(tranches []domain.TrancheInput, supplyUtilization []*float64, includePendingInterest bool) []*float64 {
	out := make([]*float64, len(tranches))
	cascading := 0.0
	for i, t := range tranches {
		total := cascading + t.BorrowAssets*t.BorrowRate
		u := cascadeUtilization(supplyUtilization[i], i, len(tranches))
		allocated := total * u
		cascading = total * (1 - u)

		if supply := t.Supply(includePendingInterest); supply != 0 {
			out[i] = Float(allocated / supply)
		}
	}
	return out
}

// ComputeAllTranches runs every accounting stage over the stack.
func ComputeAllTranches(tranches []domain.TrancheInput, includePendingInterest bool) []domain.TrancheData {
	jrSupply := ComputeJrSupply(tranches, includePendingInterest)
	jrBorrow := ComputeJrBorrow(tranches)
	jrNetSupply := ComputeJrNetSupply(jrSupply, jrBorrow)
	freeSupply, binding := ComputeFreeSupply(jrNetSupply)
	available := ComputeAvailableSupply(tranches, jrNetSupply)
	supplyUtil := ComputeSupplyUtilization(tranches, available, includePendingInterest)
	borrowUtil := ComputeBorrowUtilization(jrSupply, freeSupply)
	rates := ComputeSupplyRates(tranches, supplyUtil, includePendingInterest)

	isBinding := make(map[int]bool, len(binding))
	for _, idx := range binding {
		isBinding[idx] = true
	}

	out := make([]domain.TrancheData, len(tranches))
	for i, t := range tranches {
		out[i] = domain.TrancheData{
			TrancheInput:        t,
			JrSupply:            jrSupply[i],
			JrBorrow:            jrBorrow[i],
			JrNetSupply:         jrNetSupply[i],
			FreeSupply:          freeSupply[i],
			AvailableSupply:     available[i],
			IsBindingConstraint: isBinding[i],
			SupplyUtilization:   supplyUtil[i],
			BorrowUtilization:   borrowUtil[i],
			SupplyRate:          rates[i],
		}
	}
	return out
}

// BindingIndices lists the tranches flagged as binding constraints.
func BindingIndices(tranches []domain.TrancheData) []int {
	out := []int{}
	for i, t := range tranches {
		if t.IsBindingConstraint {
			out = append(out, i)
		}
	}
	return out
}
