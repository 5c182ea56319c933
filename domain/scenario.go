package domain

// Scenario1Inputs drive the linear spread-compression model.
type Scenario1Inputs struct {
	BorrowRate  float64 `json:"borrowRate" validate:"gte=0,lte=1"`
	BaseRate    float64 `json:"baseRate" validate:"gte=0,lte=1"`
	Utilization float64 `json:"utilization" validate:"gte=0,lte=1"`
}

type Scenario1Outputs struct {
	Spread            float64 `json:"spread"`
	BorrowRate        float64 `json:"borrowRate"`
	SupplyRatePD      float64 `json:"supplyRatePD"`
	SupplyRateNoPD    float64 `json:"supplyRateNoPD"`
	WedgePD           float64 `json:"wedgePD"`
	WedgeNoPD         float64 `json:"wedgeNoPD"`
	WedgeReduction    float64 `json:"wedgeReduction"`
	BaseExceedsBorrow bool    `json:"baseExceedsBorrow"`
}

// Scenario2Inputs drive the kinked-curve volatility model.
type Scenario2Inputs struct {
	TargetBorrowRate90 float64 `json:"targetBorrowRate90" validate:"gte=0,lte=1"`
	BaseRate           float64 `json:"baseRate" validate:"gte=0,lte=1"`
	Utilization        float64 `json:"utilization" validate:"gte=0,lte=1"`
}

type Scenario2Outputs struct {
	Spread90            float64  `json:"spread90"`
	SpreadAtU           float64  `json:"spreadAtU"`
	BorrowRatePD        float64  `json:"borrowRatePD"`
	BorrowRateNoPD      float64  `json:"borrowRateNoPD"`
	SupplyRatePD        float64  `json:"supplyRatePD"`
	SupplyRateNoPD      float64  `json:"supplyRateNoPD"`
	TargetBorrow90      float64  `json:"targetBorrow90"`
	TargetSupplyPD90    float64  `json:"targetSupplyPD90"`
	TargetSupplyNoPD90  float64  `json:"targetSupplyNoPD90"`
	BorrowDeviationPD   *float64 `json:"borrowDeviationPD"`
	BorrowDeviationNoPD *float64 `json:"borrowDeviationNoPD"`
	SupplyDeviationPD   *float64 `json:"supplyDeviationPD"`
	SupplyDeviationNoPD *float64 `json:"supplyDeviationNoPD"`
	SpreadIsZero        bool     `json:"spreadIsZero"`
}

// ChartPoint is one sample of a scenario curve. Borrow fields are only set
// by the kinked model.
type ChartPoint struct {
	Utilization float64  `json:"utilization"`
	SupplyPD    float64  `json:"supplyPD"`
	SupplyNoPD  float64  `json:"supplyNoPD"`
	BorrowPD    *float64 `json:"borrowPD,omitempty"`
	BorrowNoPD  *float64 `json:"borrowNoPD,omitempty"`
}

// ScenarioState is the shareable slider state of the scenario page.
type ScenarioState struct {
	Scenario           int     `json:"scenario"`
	BorrowRate         float64 `json:"borrowRate"`
	TargetBorrowRate90 float64 `json:"targetBorrowRate90"`
	BaseRate           float64 `json:"baseRate"`
	Utilization        float64 `json:"utilization"`
}
