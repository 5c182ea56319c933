package repository

import (
	"context"
	"errors"

	"lotus-engine/domain"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository persists computation snapshots. Save assigns an ID and
// creation time when they are missing.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot *domain.Snapshot) error
	Get(ctx context.Context, id string) (domain.Snapshot, error)
}
