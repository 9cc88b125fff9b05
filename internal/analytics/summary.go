// Package analytics derives summary metrics from a validated record set.
package analytics

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// guard returns the divisor for a rate, never below one.
func guard(v float64) (divisor decimal.Decimal, guarded bool) {
	if v < 1 {
		return decimal.NewFromInt(1), true
	}
	return decimal.NewFromFloat(v), false
}

// TotalEarnings sums the earnings column.
func TotalEarnings(records []models.Record) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Earnings)
	}
	return total
}

// Summarize computes the headline metrics of rs. A nil or empty set yields
// zero totals with both rate guards set.
func Summarize(rs *models.RecordSet) models.Summary {
	var records []models.Record
	if rs != nil {
		records = rs.Records
	}

	s := models.Summary{
		TotalEarnings: TotalEarnings(records),
		TotalHours:    lo.SumBy(records, func(r models.Record) float64 { return r.Hours }),
		Jobs:          len(records),
		HasMiles:      rs != nil && rs.HasMiles,
	}

	hours, guarded := guard(s.TotalHours)
	s.HourlyRate = s.TotalEarnings.Div(hours)
	s.RateGuarded = guarded

	if s.HasMiles {
		s.TotalMiles = lo.SumBy(records, func(r models.Record) float64 { return r.Miles })
		miles, guarded := guard(s.TotalMiles)
		s.EarningsPerMile = s.TotalEarnings.Div(miles)
		s.MileGuarded = guarded
	}

	return s
}
