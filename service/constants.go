package service

const (
	MaxTranches      = 50
	MaxAssetAmount   = 1e15 // per tranche, in loan-asset units
	MaxBorrowRate    = 10.0 // 1000% APR
	MaxBadDebtEvents = 100
	MaxChartSteps    = 1000

	DefaultChartSteps = 100
)

// Operation names used for metrics and cache keys.
const (
	opComputeTranches = "compute_all_tranches"
	opFundingMatrix   = "funding_matrix"
	opInterest        = "interest_simulation"
	opBadDebt         = "bad_debt_simulation"
	opScenario1       = "scenario1"
	opScenario2       = "scenario2"
)
