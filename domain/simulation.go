package domain

// TimePeriod is the accrual window used by the interest simulation.
type TimePeriod string

const (
	Period1Week   TimePeriod = "1week"
	Period1Month  TimePeriod = "1month"
	Period3Months TimePeriod = "3months"
	Period1Year   TimePeriod = "1year"
)

// InterestAccrualResult is the per-tranche interest flow.
type InterestAccrualResult struct {
	Index             int      `json:"index"`
	LLTV              float64  `json:"lltv"`
	InterestGenerated float64  `json:"interestGenerated"`
	InterestReceived  float64  `json:"interestReceived"`
	InterestCascaded  float64  `json:"interestCascaded"`
	NetPosition       float64  `json:"netPosition"`
	ImpliedSupplyRate *float64 `json:"impliedSupplyRate"`
}

type InterestSimulationResult struct {
	TimePeriod             TimePeriod              `json:"timePeriod"`
	TimeInYears            float64                 `json:"timeInYears"`
	Tranches               []InterestAccrualResult `json:"tranches"`
	TotalInterestGenerated float64                 `json:"totalInterestGenerated"`
	TotalInterestReceived  float64                 `json:"totalInterestReceived"`
}

// BadDebtEvent is an exogenous loss realised at one tranche.
type BadDebtEvent struct {
	TrancheIndex int     `json:"trancheIndex" validate:"gte=0"`
	Amount       float64 `json:"amount" validate:"gte=0"`
}

// BadDebtTrancheResult is the per-tranche loss flow.
type BadDebtTrancheResult struct {
	Index              int     `json:"index"`
	LLTV               float64 `json:"lltv"`
	OriginalSupply     float64 `json:"originalSupply"`
	SupplyUtilization  float64 `json:"supplyUtilization"`
	BadDebtCascadedIn  float64 `json:"badDebtCascadedIn"`
	BadDebtLocal       float64 `json:"badDebtLocal"`
	BadDebtAbsorbed    float64 `json:"badDebtAbsorbed"`
	BadDebtCascadedOut float64 `json:"badDebtCascadedOut"`
	RemainingSupply    float64 `json:"remainingSupply"`
	WipedOut           bool    `json:"wipedOut"`
}

type BadDebtSimulationResult struct {
	BadDebtEvents     []BadDebtEvent         `json:"badDebtEvents"`
	TotalBadDebt      float64                `json:"totalBadDebt"`
	Tranches          []BadDebtTrancheResult `json:"tranches"`
	TotalAbsorbed     float64                `json:"totalAbsorbed"`
	UnabsorbedBadDebt float64                `json:"unabsorbedBadDebt"`
}

// InterestSimulationRequest runs the tranche engine and then the interest
// simulation over Period.
type InterestSimulationRequest struct {
	TrancheRequest
	Period TimePeriod `json:"period" validate:"required,oneof=1week 1month 3months 1year"`
}

// BadDebtSimulationRequest accepts either Events or the single-event pair
// TrancheIndex/Amount.
type BadDebtSimulationRequest struct {
	TrancheRequest
	Events       []BadDebtEvent `json:"events,omitempty" validate:"omitempty,dive"`
	TrancheIndex *int           `json:"trancheIndex,omitempty"`
	Amount       *float64       `json:"amount,omitempty"`
}
