package domain

import (
	"encoding/json"
	"time"
)

// SnapshotKind names the computation a snapshot was recorded for.
type SnapshotKind string

const (
	SnapshotTranches      SnapshotKind = "tranches"
	SnapshotFundingMatrix SnapshotKind = "funding_matrix"
	SnapshotInterest      SnapshotKind = "interest_simulation"
	SnapshotBadDebt       SnapshotKind = "bad_debt_simulation"
)

// Snapshot is a stored request/result pair, kept so a UI state can be
// reopened or shared by ID.
type Snapshot struct {
	ID        string          `json:"id"`
	Kind      SnapshotKind    `json:"kind"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PresetSummary describes a named tranche configuration.
type PresetSummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
