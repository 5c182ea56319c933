package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"lotus-engine/domain"
)

// SnapshotRepositoryMemory is an in-memory implementation of SnapshotRepository.
type SnapshotRepositoryMemory struct {
	mu   sync.RWMutex
	data map[string]domain.Snapshot
}

// NewSnapshotRepositoryMemory creates a new in-memory snapshot repository.
func NewSnapshotRepositoryMemory() *SnapshotRepositoryMemory {
	return &SnapshotRepositoryMemory{
		data: make(map[string]domain.Snapshot),
	}
}

// Save stores the snapshot in memory.
func (r *SnapshotRepositoryMemory) Save(_ context.Context, snapshot *domain.Snapshot) error {
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	if snapshot.CreatedAt.IsZero() {
		snapshot.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	r.data[snapshot.ID] = *snapshot
	r.mu.Unlock()
	return nil
}

func (r *SnapshotRepositoryMemory) Get(_ context.Context, id string) (domain.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.data[id]
	if !ok {
		return domain.Snapshot{}, ErrSnapshotNotFound
	}
	return s, nil
}

func (r *SnapshotRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
