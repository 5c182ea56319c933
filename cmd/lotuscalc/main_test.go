package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus-engine/domain"
)

func TestParseBadDebt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []domain.BadDebtEvent
		wantErr  bool
	}{
		{"empty", "", nil, false},
		{"single", "1:50", []domain.BadDebtEvent{{TrancheIndex: 1, Amount: 50}}, false},
		{"several with spaces", " 0:10.5 , 4:100 ", []domain.BadDebtEvent{{TrancheIndex: 0, Amount: 10.5}, {TrancheIndex: 4, Amount: 100}}, false},
		{"missing colon", "1-50", nil, true},
		{"bad index", "x:50", nil, true},
		{"bad amount", "1:lots", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := parseBadDebt(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, events)
		})
	}
}

func TestRunJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-preset", "docExample", "-json", "-bad-debt", "4:40"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	var rep report
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &rep))
	assert.Equal(t, []int{1}, rep.Tranches.BindingIndices)
	assert.InDelta(t, 43.5, rep.Interest.TotalInterestGenerated, 1e-9)
	require.NotNil(t, rep.BadDebt)
	assert.InDelta(t, 40, rep.BadDebt.TotalAbsorbed, 1e-9)
	assert.Len(t, rep.FundingMatrix.Matrix, 5)
}

func TestRunTables(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-preset", "default", "-period", "1month"}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Supply Rate")
	assert.Contains(t, out, "2,500.00")
	assert.Contains(t, out, "Interest over 1 Month")
	assert.Contains(t, out, "Binding constraint:")
	assert.NotContains(t, out, "Bad debt")
}

func TestRunScenario(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"-scenario", "1", "-R", "0.12", "-Rb", "0.05", "-u", "0.7"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "9.90%")
	assert.Contains(t, stdout.String(), "Share: ?scenario=1&R=0.1200&Rb=0.0500&u=0.7000")

	stdout.Reset()
	err = run([]string{"-scenario", "2", "-R", "0.12", "-u", "0.9", "-json"}, &stdout, &stderr)
	require.NoError(t, err)
	var out domain.Scenario2Outputs
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.InDelta(t, 0.12, out.BorrowRatePD, 1e-12)
}

func TestRunErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Error(t, run([]string{"-preset", "missing"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-period", "2years"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-scenario", "3"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-bad-debt", "oops"}, &stdout, &stderr))
	assert.Error(t, run([]string{"-scenario", "1", "-u", "1.5"}, &stdout, &stderr))
}
