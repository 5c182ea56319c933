package service

import (
	"fmt"

	"lotus-engine/domain"
	"lotus-engine/presets"
)

type PresetService struct {
	catalog *presets.Catalog
}

func NewPresetService(catalog *presets.Catalog) *PresetService {
	return &PresetService{catalog: catalog}
}

func (s *PresetService) List() []domain.PresetSummary {
	return s.catalog.Summaries()
}

// Tranches returns the preset's tranches with IDs and LLTVs assigned.
func (s *PresetService) Tranches(name string) ([]domain.TrancheInput, error) {
	tranches, ok := s.catalog.Tranches(name)
	if !ok {
		return nil, fmt.Errorf("%w: preset %q", ErrNotFound, name)
	}
	return tranches, nil
}

// Default returns the reset configuration.
func (s *PresetService) Default() []domain.TrancheInput {
	return s.catalog.DefaultTranches()
}
