package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lotus-engine/domain"
	"lotus-engine/repository"
)

func newSimulationService(repo repository.SnapshotRepository) *SimulationService {
	return NewSimulationService(NewTrancheService(repo, nil, WithLogger(discardLogger())))
}

func TestInterestAccrual(t *testing.T) {
	repo := new(MockSnapshotRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
		return s.Kind == domain.SnapshotInterest
	})).Return(nil)

	svc := newSimulationService(repo)
	res, err := svc.InterestAccrual(context.Background(), domain.InterestSimulationRequest{
		TrancheRequest: docExampleRequest(),
		Period:         domain.Period1Month,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.Period1Month, res.TimePeriod)
	assert.InDelta(t, 1.0/12, res.TimeInYears, 1e-12)
	assert.InDelta(t, 43.5/12, res.TotalInterestGenerated, 1e-9)
	assert.InDelta(t, res.TotalInterestGenerated, res.TotalInterestReceived, 1e-9)
	repo.AssertExpectations(t)
}

func TestInterestAccrualRejectsUnknownPeriod(t *testing.T) {
	svc := newSimulationService(nil)

	for _, period := range []domain.TimePeriod{"", "2weeks"} {
		_, err := svc.InterestAccrual(context.Background(), domain.InterestSimulationRequest{
			TrancheRequest: docExampleRequest(),
			Period:         period,
		})
		assert.ErrorIs(t, err, ErrInvalidInput, "period %q", period)
	}
}

func TestBadDebtWithEvents(t *testing.T) {
	repo := new(MockSnapshotRepository)
	repo.On("Save", mock.Anything, mock.MatchedBy(func(s *domain.Snapshot) bool {
		return s.Kind == domain.SnapshotBadDebt
	})).Return(nil)

	svc := newSimulationService(repo)
	res, err := svc.BadDebt(context.Background(), domain.BadDebtSimulationRequest{
		TrancheRequest: docExampleRequest(),
		Events: []domain.BadDebtEvent{
			{TrancheIndex: 1, Amount: 30},
			{TrancheIndex: 3, Amount: 20},
		},
	})

	require.NoError(t, err)
	assert.InDelta(t, 50, res.TotalBadDebt, 1e-9)
	assert.InDelta(t, res.TotalBadDebt, res.TotalAbsorbed+res.UnabsorbedBadDebt, 1e-9)
	require.Len(t, res.Tranches, 5)
	assert.InDelta(t, 30, res.Tranches[1].BadDebtLocal, 1e-9)
	assert.InDelta(t, 20, res.Tranches[3].BadDebtLocal, 1e-9)
	repo.AssertExpectations(t)
}

func TestBadDebtWithSingleEventFields(t *testing.T) {
	idx, amount := 4, 40.0
	svc := newSimulationService(nil)

	res, err := svc.BadDebt(context.Background(), domain.BadDebtSimulationRequest{
		TrancheRequest: docExampleRequest(),
		TrancheIndex:   &idx,
		Amount:         &amount,
	})

	require.NoError(t, err)
	require.Len(t, res.BadDebtEvents, 1)
	assert.Equal(t, domain.BadDebtEvent{TrancheIndex: 4, Amount: 40}, res.BadDebtEvents[0])
	assert.InDelta(t, 40, res.Tranches[4].BadDebtAbsorbed, 1e-9)
	assert.Zero(t, res.UnabsorbedBadDebt)
}

func TestBadDebtRejectsInvalidEvents(t *testing.T) {
	negative := -1
	amount := 10.0
	tooMany := make([]domain.BadDebtEvent, MaxBadDebtEvents+1)

	tests := []struct {
		name string
		req  domain.BadDebtSimulationRequest
	}{
		{"no events", domain.BadDebtSimulationRequest{}},
		{"negative amount", domain.BadDebtSimulationRequest{Events: []domain.BadDebtEvent{{TrancheIndex: 0, Amount: -5}}}},
		{"negative index", domain.BadDebtSimulationRequest{TrancheIndex: &negative, Amount: &amount}},
		{"index without amount", domain.BadDebtSimulationRequest{TrancheIndex: &negative}},
		{"too many events", domain.BadDebtSimulationRequest{Events: tooMany}},
		{"amount too large", domain.BadDebtSimulationRequest{Events: []domain.BadDebtEvent{{TrancheIndex: 0, Amount: MaxAssetAmount * 10}}}},
	}

	svc := newSimulationService(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.TrancheRequest = docExampleRequest()
			_, err := svc.BadDebt(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
