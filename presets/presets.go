// Package presets holds the named tranche configurations used to seed the
// calculator.
package presets

import (
	"embed"
	"fmt"
	"math"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"lotus-engine/domain"
)

var (
	//go:embed presets.yaml
	presetFS embed.FS

	builtinOnce sync.Once
	builtin     *Catalog
	builtinErr  error
)

// TrancheSeed is a tranche without its position-derived ID and LLTV.
type TrancheSeed struct {
	SupplyAssets    float64 `yaml:"supplyAssets"`
	BorrowAssets    float64 `yaml:"borrowAssets"`
	PendingInterest float64 `yaml:"pendingInterest"`
	BorrowRate      float64 `yaml:"borrowRate"`
}

type Preset struct {
	Key         string        `yaml:"key"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Tranches    []TrancheSeed `yaml:"tranches"`
}

// Catalog is an ordered set of presets plus the reset configuration.
type Catalog struct {
	LLTVs   []float64     `yaml:"lltvs"`
	Default []TrancheSeed `yaml:"default"`
	Presets []Preset      `yaml:"presets"`
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	builtinOnce.Do(func() {
		data, err := presetFS.ReadFile("presets.yaml")
		if err != nil {
			builtinErr = fmt.Errorf("read embedded presets: %w", err)
			return
		}
		builtin, builtinErr = Parse(data)
	})
	return builtin, builtinErr
}

// Parse decodes and checks a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode presets: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load returns the builtin catalog, or the catalog in path when it is set.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets %s: %w", path, err)
	}
	return Parse(data)
}

func (c *Catalog) validate() error {
	if len(c.LLTVs) == 0 {
		return fmt.Errorf("presets: lltvs must not be empty")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Key == "" {
			return fmt.Errorf("presets: preset without key")
		}
		if seen[p.Key] {
			return fmt.Errorf("presets: duplicate key %q", p.Key)
		}
		seen[p.Key] = true
		if len(p.Tranches) == 0 {
			return fmt.Errorf("presets: %q has no tranches", p.Key)
		}
	}
	return nil
}

// Summaries lists the presets in catalog order.
func (c *Catalog) Summaries() []domain.PresetSummary {
	out := make([]domain.PresetSummary, 0, len(c.Presets))
	for _, p := range c.Presets {
		out = append(out, domain.PresetSummary{Key: p.Key, Name: p.Name, Description: p.Description})
	}
	return out
}

// Get returns the preset stored under key.
func (c *Catalog) Get(key string) (Preset, bool) {
	for _, p := range c.Presets {
		if p.Key == key {
			return p, true
		}
	}
	return Preset{}, false
}

// Tranches expands the preset into engine input.
func (c *Catalog) Tranches(key string) ([]domain.TrancheInput, bool) {
	p, ok := c.Get(key)
	if !ok {
		return nil, false
	}
	return c.ToTranches(p.Tranches), true
}

// DefaultTranches expands the reset configuration.
func (c *Catalog) DefaultTranches() []domain.TrancheInput {
	return c.ToTranches(c.Default)
}

// ToTranches assigns IDs by position and LLTVs from the catalog. Positions
// past the configured LLTVs step up by 5 points, capped at 100.
func (c *Catalog) ToTranches(seeds []TrancheSeed) []domain.TrancheInput {
	out := make([]domain.TrancheInput, len(seeds))
	for i, s := range seeds {
		out[i] = domain.TrancheInput{
			ID:              i,
			LLTV:            c.LLTV(i),
			SupplyAssets:    s.SupplyAssets,
			BorrowAssets:    s.BorrowAssets,
			PendingInterest: s.PendingInterest,
			BorrowRate:      s.BorrowRate,
		}
	}
	return out
}

func (c *Catalog) LLTV(i int) float64 {
	if i < len(c.LLTVs) {
		return c.LLTVs[i]
	}
	last := 0.0
	if len(c.LLTVs) > 0 {
		last = c.LLTVs[len(c.LLTVs)-1]
	}
	return math.Min(last+5*float64(i-len(c.LLTVs)+1), 100)
}
