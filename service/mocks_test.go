package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"lotus-engine/domain"
)

type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotRepository) Get(ctx context.Context, id string) (domain.Snapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (string, bool) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func docExampleRequest() domain.TrancheRequest {
	borrows := []float64{100, 250, 200, 150, 100}
	rates := []float64{0.03, 0.04, 0.05, 0.07, 0.10}
	lltvs := []float64{75, 80, 85, 90, 95}
	req := domain.TrancheRequest{Tranches: make([]domain.TrancheInput, len(borrows))}
	for i := range borrows {
		req.Tranches[i] = domain.TrancheInput{
			ID:           i,
			LLTV:         lltvs[i],
			SupplyAssets: 200,
			BorrowAssets: borrows[i],
			BorrowRate:   rates[i],
		}
	}
	return req
}
