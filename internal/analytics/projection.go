package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

const (
	// DefaultProjectionDays is the horizon of the forecast shown on the overview.
	DefaultProjectionDays = 30

	// MinActiveDays is the number of active days below which a projection is
	// flagged as low confidence.
	MinActiveDays = 7
)

// Project estimates earnings over the next days by multiplying the mean
// earnings per active day. An active day is a distinct date with at least one
// record.
func Project(rs *models.RecordSet, days int) models.Projection {
	p := models.Projection{
		Days:         days,
		DailyAverage: decimal.Zero,
		Projected:    decimal.Zero,
	}
	if rs.Empty() || days <= 0 {
		return p
	}

	active := make(map[time.Time]struct{})
	for _, r := range rs.Records {
		active[civilDay(r.Date)] = struct{}{}
	}

	p.ActiveDays = len(active)
	p.DailyAverage = TotalEarnings(rs.Records).Div(decimal.NewFromInt(int64(p.ActiveDays)))
	p.Projected = p.DailyAverage.Mul(decimal.NewFromInt(int64(days))).Round(2)
	p.HasEnoughData = p.ActiveDays >= MinActiveDays
	return p
}
