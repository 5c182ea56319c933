package service

import (
	"lotus-engine/domain"
	"lotus-engine/engine"
	"lotus-engine/metrics"
)

// ScenarioService exposes the two rate-compression models and their charts.
type ScenarioService struct {
	validator *Validator
	metrics   *metrics.Registry
}

func NewScenarioService(opts ...Option) *ScenarioService {
	o := buildOptions(opts)
	return &ScenarioService{validator: NewValidator(), metrics: o.metrics}
}

// Scenario1 compares supply rates with and without a base-rate floor under
// a fixed borrow rate.
func (s *ScenarioService) Scenario1(in domain.Scenario1Inputs) (domain.Scenario1Outputs, error) {
	if err := ValidateUnitInterval(
		NamedValue{"R", in.BorrowRate}, NamedValue{"Rb", in.BaseRate}, NamedValue{"u", in.Utilization},
	); err != nil {
		return domain.Scenario1Outputs{}, err
	}
	s.metrics.Computation(opScenario1)
	return engine.ComputeScenario1(in), nil
}

// Scenario2 evaluates the kinked curve at one utilization.
func (s *ScenarioService) Scenario2(in domain.Scenario2Inputs) (domain.Scenario2Outputs, error) {
	if err := ValidateUnitInterval(
		NamedValue{"R90", in.TargetBorrowRate90}, NamedValue{"Rb", in.BaseRate}, NamedValue{"u", in.Utilization},
	); err != nil {
		return domain.Scenario2Outputs{}, err
	}
	s.metrics.Computation(opScenario2)
	return engine.ComputeScenario2(in), nil
}

// Chart1 samples the scenario 1 curves over utilization.
func (s *ScenarioService) Chart1(borrowRate, baseRate float64, steps int) ([]domain.ChartPoint, error) {
	if err := ValidateUnitInterval(NamedValue{"R", borrowRate}, NamedValue{"Rb", baseRate}); err != nil {
		return nil, err
	}
	steps, err := chartSteps(steps)
	if err != nil {
		return nil, err
	}
	s.metrics.Computation(opScenario1)
	return engine.GenerateScenario1ChartData(borrowRate, baseRate, steps), nil
}

// Chart2 samples the scenario 2 curves over utilization.
func (s *ScenarioService) Chart2(targetBorrowRate90, baseRate float64, steps int) ([]domain.ChartPoint, error) {
	if err := ValidateUnitInterval(NamedValue{"R90", targetBorrowRate90}, NamedValue{"Rb", baseRate}); err != nil {
		return nil, err
	}
	steps, err := chartSteps(steps)
	if err != nil {
		return nil, err
	}
	s.metrics.Computation(opScenario2)
	return engine.GenerateScenario2ChartData(targetBorrowRate90, baseRate, steps), nil
}

// FromState evaluates whichever scenario the shared state selects.
func (s *ScenarioService) FromState(state domain.ScenarioState) (any, error) {
	if state.Scenario == 2 {
		return s.Scenario2(domain.Scenario2Inputs{
			TargetBorrowRate90: state.TargetBorrowRate90,
			BaseRate:           state.BaseRate,
			Utilization:        state.Utilization,
		})
	}
	return s.Scenario1(domain.Scenario1Inputs{
		BorrowRate:  state.BorrowRate,
		BaseRate:    state.BaseRate,
		Utilization: state.Utilization,
	})
}

func chartSteps(steps int) (int, error) {
	if steps == 0 {
		return DefaultChartSteps, nil
	}
	if steps < 1 || steps > MaxChartSteps {
		return 0, invalidf("steps must be between 1 and %d, got %d", MaxChartSteps, steps)
	}
	return steps, nil
}
