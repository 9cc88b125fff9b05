package analytics

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// ByPlatform groups rs by platform label, sorted by label. Labels are
// compared exactly; "Uber" and "uber" are distinct platforms.
func ByPlatform(rs *models.RecordSet) []models.PlatformStats {
	if rs.Empty() {
		return nil
	}

	groups := lo.GroupBy(rs.Records, func(r models.Record) string { return r.Platform })
	labels := lo.Keys(groups)
	sort.Strings(labels)

	out := make([]models.PlatformStats, 0, len(labels))
	for _, label := range labels {
		records := groups[label]
		n := len(records)

		sum := TotalEarnings(records)
		hours := lo.SumBy(records, func(r models.Record) float64 { return r.Hours })

		out = append(out, models.PlatformStats{
			Platform:     label,
			EarningsSum:  sum,
			EarningsMean: sum.Div(decimal.NewFromInt(int64(n))),
			HoursSum:     hours,
			HoursMean:    hours / float64(n),
			Count:        n,
		})
	}
	return out
}

// Share returns each platform's fraction of total earnings, in the order of
// stats. A zero total yields zero shares.
func Share(stats []models.PlatformStats) []float64 {
	total := decimal.Zero
	for _, s := range stats {
		total = total.Add(s.EarningsSum)
	}

	out := make([]float64, len(stats))
	if total.IsZero() {
		return out
	}
	for i, s := range stats {
		out[i] = s.EarningsSum.Div(total).InexactFloat64()
	}
	return out
}
