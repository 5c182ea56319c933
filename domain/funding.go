package domain

// FundingMatrixEntry describes one non-zero lender -> borrower flow.
type FundingMatrixEntry struct {
	LenderIndex             int     `json:"lenderIndex"`
	BorrowerIndex           int     `json:"borrowerIndex"`
	Amount                  float64 `json:"amount"`
	PercentOfLenderSupply   float64 `json:"percentOfLenderSupply"`
	PercentOfBorrowerBorrow float64 `json:"percentOfBorrowerBorrow"`
}

// FundingMatrix is the Dynamic Loan Mix: Matrix[borrower][lender] is the
// fraction of the lender tranche's supply that funds the borrower tranche.
type FundingMatrix struct {
	Matrix           [][]float64          `json:"matrix"`
	Entries          []FundingMatrixEntry `json:"entries"`
	TotalFunded      float64              `json:"totalFunded"`
	CapitalAllocated []float64            `json:"capitalAllocated"`
}
