package domain

// TrancheInput is the raw state of one tranche. Slices of TrancheInput are
// ordered by seniority: index 0 is the most senior (lowest LLTV) tranche.
type TrancheInput struct {
	ID              int     `json:"id"`
	LLTV            float64 `json:"lltv" validate:"gte=0,lte=100"`
	SupplyAssets    float64 `json:"supplyAssets" validate:"gte=0"`
	BorrowAssets    float64 `json:"borrowAssets" validate:"gte=0"`
	PendingInterest float64 `json:"pendingInterest" validate:"gte=0"`
	BorrowRate      float64 `json:"borrowRate" validate:"gte=0"`
}

// Supply returns the tranche's lender supply, optionally including interest
// that has accrued but not yet been distributed.
func (t TrancheInput) Supply(includePendingInterest bool) float64 {
	if includePendingInterest {
		return t.SupplyAssets + t.PendingInterest
	}
	return t.SupplyAssets
}

// TrancheData is a TrancheInput together with every value derived from the
// whole tranche stack. Nil pointers mean the ratio is undefined.
type TrancheData struct {
	TrancheInput

	JrSupply            float64  `json:"jrSupply"`
	JrBorrow            float64  `json:"jrBorrow"`
	JrNetSupply         float64  `json:"jrNetSupply"`
	FreeSupply          float64  `json:"freeSupply"`
	AvailableSupply     float64  `json:"availableSupply"`
	IsBindingConstraint bool     `json:"isBindingConstraint"`
	SupplyUtilization   *float64 `json:"supplyUtilization"`
	BorrowUtilization   *float64 `json:"borrowUtilization"`
	SupplyRate          *float64 `json:"supplyRate"`
}

// TrancheRequest is the payload accepted by the tranche endpoints.
type TrancheRequest struct {
	Tranches               []TrancheInput `json:"tranches" validate:"required,min=1,dive"`
	IncludePendingInterest bool           `json:"includePendingInterest"`
}

// TrancheResponse wraps the computed stack with a few summary fields.
type TrancheResponse struct {
	SnapshotID     string        `json:"snapshotId,omitempty"`
	Tranches       []TrancheData `json:"tranches"`
	BindingIndices []int         `json:"bindingIndices"`
	TotalSupply    float64       `json:"totalSupply"`
	TotalBorrow    float64       `json:"totalBorrow"`
	TotalInterest  float64       `json:"totalInterest"`
	Insight        string        `json:"insight,omitempty"`
	Cached         bool          `json:"cached"`
}
