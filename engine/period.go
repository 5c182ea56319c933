package engine

import (
	"fmt"

	"lotus-engine/domain"
)

var periodYears = map[domain.TimePeriod]float64{
	domain.Period1Week:   1.0 / 52.0,
	domain.Period1Month:  1.0 / 12.0,
	domain.Period3Months: 0.25,
	domain.Period1Year:   1.0,
}

var periodLabels = map[domain.TimePeriod]string{
	domain.Period1Week:   "1 Week",
	domain.Period1Month:  "1 Month",
	domain.Period3Months: "3 Months",
	domain.Period1Year:   "1 Year",
}

// TimePeriods lists the supported periods, shortest first.
var TimePeriods = []domain.TimePeriod{
	domain.Period1Week,
	domain.Period1Month,
	domain.Period3Months,
	domain.Period1Year,
}

// PeriodYears converts a period to a fraction of a year. Unknown periods
// count as one year.
func PeriodYears(p domain.TimePeriod) float64 {
	if y, ok := periodYears[p]; ok {
		return y
	}
	return 1
}

// PeriodLabel returns the display label of a period.
func PeriodLabel(p domain.TimePeriod) string {
	if l, ok := periodLabels[p]; ok {
		return l
	}
	return string(p)
}

// ParseTimePeriod accepts the period names in TimePeriods.
func ParseTimePeriod(s string) (domain.TimePeriod, error) {
	p := domain.TimePeriod(s)
	if _, ok := periodYears[p]; !ok {
		return "", fmt.Errorf("unknown time period %q", s)
	}
	return p, nil
}
