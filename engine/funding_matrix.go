package engine

import (
	"math"

	"lotus-engine/domain"
)

// FundingMatrixDisclaimer accompanies any rendering of the funding matrix.
const FundingMatrixDisclaimer = "This visualization shows the Dynamic Loan Mix: how each lender tranche's supply " +
	"is allocated across borrower tranches. Junior tranche supply can fund borrowers " +
	"in their own tranche and all more senior tranches. The allocation follows the " +
	"cascading logic where unutilized liquidity flows to more senior tranches."

// ComputeFundingMatrix attributes each lender tranche's supply to the
// borrower tranches at or above it. Capital cascades from the lender upward;
// at every borrower it is split in proportion borrow / availableSupply and
// the unallocated remainder keeps moving toward the senior end.
func ComputeFundingMatrix(tranches []domain.TrancheInput, includePendingInterest bool) domain.FundingMatrix {
	n := len(tranches)
	jrSupply := ComputeJrSupply(tranches, includePendingInterest)
	jrBorrow := ComputeJrBorrow(tranches)
	available := ComputeAvailableSupply(tranches, ComputeJrNetSupply(jrSupply, jrBorrow))
	lenderSupply := supplies(tranches, includePendingInterest)

	matrix := make([][]float64, n)
	for b := range matrix {
		matrix[b] = make([]float64, n)
	}
	capitalAllocated := make([]float64, n)

	for l := 0; l < n; l++ {
		if lenderSupply[l] == 0 {
			continue
		}
		cascading := lenderSupply[l]
		for b := l; b >= 0; b-- {
			if cascading <= 0 {
				break
			}
			borrow := tranches[b].BorrowAssets
			if available[b] <= 0 || borrow <= 0 {
				continue
			}
			allocated := cascading / available[b] * borrow
			matrix[b][l] = allocated / lenderSupply[l]
			capitalAllocated[l] += matrix[b][l]
			cascading -= allocated
		}
	}

	entries := []domain.FundingMatrixEntry{}
	total := 0.0
	for l := 0; l < n; l++ {
		for b := 0; b < n; b++ {
			pct := matrix[b][l]
			if pct <= 0 {
				continue
			}
			amount := pct * lenderSupply[l]
			ofBorrow := 0.0
			if tranches[b].BorrowAssets > 0 {
				ofBorrow = amount / tranches[b].BorrowAssets
			}
			entries = append(entries, domain.FundingMatrixEntry{
				LenderIndex:             l,
				BorrowerIndex:           b,
				Amount:                  amount,
				PercentOfLenderSupply:   pct,
				PercentOfBorrowerBorrow: ofBorrow,
			})
			total += amount
		}
	}

	return domain.FundingMatrix{
		Matrix:           matrix,
		Entries:          entries,
		TotalFunded:      total,
		CapitalAllocated: capitalAllocated,
	}
}

// IsValidFundingRelationship reports whether a lender tranche can fund a
// borrower tranche. Lenders only reach borrowers at the same or a more
// senior position.
func IsValidFundingRelationship(lenderIndex, borrowerIndex int) bool {
	return borrowerIndex <= lenderIndex
}

// FundingIntensity maps a funding share to a display intensity in [0, 1].
// The square root keeps small shares visible next to large ones.
func FundingIntensity(pct float64) float64 {
	if pct <= 0 {
		return 0
	}
	return math.Sqrt(pct)
}

// MatrixMax returns the largest cell of the matrix, 0 when empty.
func MatrixMax(matrix [][]float64) float64 {
	maxValue := 0.0
	for _, row := range matrix {
		for _, v := range row {
			if v > maxValue {
				maxValue = v
			}
		}
	}
	return maxValue
}

// IdleCapital returns 1 - capitalAllocated for every lender.
func IdleCapital(fm domain.FundingMatrix) []float64 {
	out := make([]float64, len(fm.CapitalAllocated))
	for i, c := range fm.CapitalAllocated {
		out[i] = 1 - c
	}
	return out
}
