package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotus-engine/domain"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		decimals int
		want     string
	}{
		{"grouping", Float(1000), 2, "1,000.00"},
		{"millions", Float(1234567.89), 2, "1,234,567.89"},
		{"no decimals", Float(100), 0, "100"},
		{"one decimal", Float(100.5), 1, "100.5"},
		{"half away from zero", Float(2.345), 2, "2.35"},
		{"inexact tie follows decimal form", Float(1.005), 2, "1.01"},
		{"exact tie", Float(0.125), 2, "0.13"},
		{"negative", Float(-1500.5), 1, "-1,500.5"},
		{"nil", nil, 2, "-"},
		{"nan", Float(math.NaN()), 2, "-"},
		{"inf", Float(math.Inf(1)), 2, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.value, tt.decimals))
		})
	}
	assert.Equal(t, "42.00", FormatNumberDefault(Float(42)))
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		name     string
		value    *float64
		decimals int
		want     string
	}{
		{"half", Float(0.5), 1, "50.0%"},
		{"fraction", Float(0.123), 1, "12.3%"},
		{"two decimals", Float(0.12345), 2, "12.35%"},
		{"zero decimals", Float(0.999), 0, "100%"},
		{"nil", nil, 1, "-"},
		{"neg inf", Float(math.Inf(-1)), 1, "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPercent(tt.value, tt.decimals))
		})
	}
	assert.Equal(t, "7.0%", FormatPercentDefault(Float(0.07)))
}

func TestTimePeriods(t *testing.T) {
	assert.InDelta(t, 1.0/52, PeriodYears(domain.Period1Week), 1e-15)
	assert.InDelta(t, 1.0/12, PeriodYears(domain.Period1Month), 1e-15)
	assert.Equal(t, 0.25, PeriodYears(domain.Period3Months))
	assert.Equal(t, 1.0, PeriodYears(domain.Period1Year))

	labels := make([]string, 0, len(TimePeriods))
	for _, p := range TimePeriods {
		labels = append(labels, PeriodLabel(p))
	}
	assert.Equal(t, []string{"1 Week", "1 Month", "3 Months", "1 Year"}, labels)

	p, err := ParseTimePeriod("3months")
	require.NoError(t, err)
	assert.Equal(t, domain.Period3Months, p)

	_, err = ParseTimePeriod("2years")
	assert.Error(t, err)
}
