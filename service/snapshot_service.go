package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lotus-engine/domain"
	"lotus-engine/repository"
)

type SnapshotService struct {
	repo repository.SnapshotRepository
}

func NewSnapshotService(repo repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{repo: repo}
}

func (s *SnapshotService) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Snapshot{}, invalidf("snapshot id is required")
	}
	snap, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSnapshotNotFound) {
			return domain.Snapshot{}, fmt.Errorf("%w: snapshot %q", ErrNotFound, id)
		}
		return domain.Snapshot{}, fmt.Errorf("get snapshot: %w", err)
	}
	return snap, nil
}
