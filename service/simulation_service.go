package service

import (
	"context"

	"lotus-engine/domain"
	"lotus-engine/engine"
)

// SimulationService runs the interest and bad-debt overlays on top of a
// freshly computed tranche stack.
type SimulationService struct {
	tranches *TrancheService
}

func NewSimulationService(tranches *TrancheService) *SimulationService {
	return &SimulationService{tranches: tranches}
}

// InterestAccrual simulates interest generated over req.Period and how it
// is distributed across the stack.
func (s *SimulationService) InterestAccrual(
	ctx context.Context,
	req domain.InterestSimulationRequest,
) (domain.InterestSimulationResult, error) {
	if err := s.tranches.validator.ValidateTrancheRequest(req.TrancheRequest); err != nil {
		return domain.InterestSimulationResult{}, err
	}
	period, err := engine.ParseTimePeriod(string(req.Period))
	if err != nil {
		return domain.InterestSimulationResult{}, invalidf("%v", err)
	}

	data := s.tranches.computeTranches(req.TrancheRequest)
	result := engine.SimulateInterestAccrual(data, period)
	s.tranches.metrics.Computation(opInterest)

	recordSnapshot(ctx, s.tranches.repo, s.tranches.logger, domain.SnapshotInterest, req, result)
	return result, nil
}

// BadDebt simulates realised losses. The request carries either a list of
// events or a single trancheIndex/amount pair.
func (s *SimulationService) BadDebt(
	ctx context.Context,
	req domain.BadDebtSimulationRequest,
) (domain.BadDebtSimulationResult, error) {
	if err := s.tranches.validator.ValidateTrancheRequest(req.TrancheRequest); err != nil {
		return domain.BadDebtSimulationResult{}, err
	}
	events, err := s.badDebtEvents(req)
	if err != nil {
		return domain.BadDebtSimulationResult{}, err
	}

	data := s.tranches.computeTranches(req.TrancheRequest)
	result := engine.SimulateBadDebt(data, events...)
	s.tranches.metrics.Computation(opBadDebt)

	recordSnapshot(ctx, s.tranches.repo, s.tranches.logger, domain.SnapshotBadDebt, req, result)
	return result, nil
}

func (s *SimulationService) badDebtEvents(req domain.BadDebtSimulationRequest) ([]domain.BadDebtEvent, error) {
	var events []domain.BadDebtEvent
	switch {
	case len(req.Events) > 0:
		if err := s.tranches.validator.Validate(req); err != nil {
			return nil, err
		}
		events = req.Events
	case req.TrancheIndex != nil && req.Amount != nil:
		events = []domain.BadDebtEvent{{TrancheIndex: *req.TrancheIndex, Amount: *req.Amount}}
		if err := s.tranches.validator.Validate(events[0]); err != nil {
			return nil, err
		}
	default:
		return nil, invalidf("either events or trancheIndex and amount are required")
	}

	if len(events) > MaxBadDebtEvents {
		return nil, invalidf("too many bad debt events: %d exceeds the maximum of %d", len(events), MaxBadDebtEvents)
	}
	for i, e := range events {
		if e.Amount > MaxAssetAmount {
			return nil, invalidf("event %d: amount exceeds the maximum of %.0f", i, MaxAssetAmount)
		}
	}
	return events, nil
}
