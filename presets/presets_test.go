package presets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	assert.Equal(t, []float64{75, 80, 85, 90, 95}, c.LLTVs)

	keys := make([]string, 0)
	for _, s := range c.Summaries() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"highSeniorDemand", "midTrancheBottleneck", "evenDistribution", "withdrawalStress", "docExample"}, keys)

	p, ok := c.Get("highSeniorDemand")
	require.True(t, ok)
	assert.Equal(t, "High Senior Demand", p.Name)
	assert.Equal(t, "High demand in senior tranches, deep junior liquidity", p.Description)
}

func TestTranchesAssignIDsAndLLTVs(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	tranches, ok := c.Tranches("docExample")
	require.True(t, ok)
	require.Len(t, tranches, 5)
	for i, tr := range tranches {
		assert.Equal(t, i, tr.ID)
		assert.Equal(t, c.LLTVs[i], tr.LLTV)
		assert.Equal(t, 200.0, tr.SupplyAssets)
	}
	assert.Equal(t, 250.0, tranches[1].BorrowAssets)
	assert.Equal(t, 0.10, tranches[4].BorrowRate)

	_, ok = c.Tranches("missing")
	assert.False(t, ok)
}

func TestDefaultTranches(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)

	d := c.DefaultTranches()
	require.Len(t, d, 5)
	assert.Equal(t, 2500.0, d[0].SupplyAssets)
	assert.Equal(t, 2000.0, d[2].BorrowAssets)
	assert.Equal(t, 0.14, d[4].BorrowRate)
}

func TestLLTVBeyondCatalog(t *testing.T) {
	c := &Catalog{LLTVs: []float64{75, 80, 85, 90, 95}}
	assert.Equal(t, 95.0, c.LLTV(4))
	assert.Equal(t, 100.0, c.LLTV(5))
	assert.Equal(t, 100.0, c.LLTV(9))

	short := &Catalog{LLTVs: []float64{50}}
	assert.Equal(t, 55.0, short.LLTV(1))
	assert.Equal(t, 60.0, short.LLTV(2))
}

func TestLoadOverrideFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	data := []byte(`lltvs: [60, 70]
presets:
  - key: tiny
    name: Tiny
    description: two tranches
    tranches:
      - { supplyAssets: 10, borrowAssets: 5, borrowRate: 0.02 }
      - { supplyAssets: 10, borrowAssets: 0, borrowRate: 0.05 }
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	tranches, ok := c.Tranches("tiny")
	require.True(t, ok)
	assert.Equal(t, 70.0, tranches[1].LLTV)

	builtin, err := Load("  ")
	require.NoError(t, err)
	_, ok = builtin.Get("docExample")
	assert.True(t, ok)
}

func TestParseRejectsBadCatalogs(t *testing.T) {
	tests := map[string]string{
		"not yaml":      "lltvs: [",
		"no lltvs":      "presets: []",
		"duplicate key": "lltvs: [75]\npresets:\n  - {key: a, tranches: [{supplyAssets: 1}]}\n  - {key: a, tranches: [{supplyAssets: 1}]}\n",
		"empty preset":  "lltvs: [75]\npresets:\n  - {key: a}\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
