package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// civilDay returns the calendar date of t, read in t's own zone, as
// midnight UTC. Equal dates always produce equal map keys.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekEnding returns the Sunday closing the week that contains t, at
// midnight UTC.
func WeekEnding(t time.Time) time.Time {
	day := civilDay(t)
	offset := (7 - int(day.Weekday())) % 7
	return day.AddDate(0, 0, offset)
}

// Weekly buckets earnings by week ending Sunday. Buckets are contiguous from
// the first to the last week, so weeks without records appear with zero sums.
func Weekly(rs *models.RecordSet) []models.WeeklyTotal {
	if rs.Empty() {
		return nil
	}

	buckets := make(map[time.Time]*models.WeeklyTotal)
	for _, r := range rs.Records {
		key := WeekEnding(r.Date)
		b, ok := buckets[key]
		if !ok {
			b = &models.WeeklyTotal{WeekEnding: key, Earnings: decimal.Zero}
			buckets[key] = b
		}
		b.Earnings = b.Earnings.Add(r.Earnings)
		b.Hours += r.Hours
		b.Miles += r.Miles
		b.Count++
	}

	first, last := rs.DateRange()
	start, end := WeekEnding(first), WeekEnding(last)

	var out []models.WeeklyTotal
	for week := start; !week.After(end); week = week.AddDate(0, 0, 7) {
		if b, ok := buckets[week]; ok {
			out = append(out, *b)
			continue
		}
		out = append(out, models.WeeklyTotal{WeekEnding: week, Earnings: decimal.Zero})
	}
	return out
}

// ByWeekday totals earnings per day of the week, Sunday first. Days counts
// the distinct dates that contributed to each weekday.
func ByWeekday(rs *models.RecordSet) [7]models.WeekdayTotal {
	var out [7]models.WeekdayTotal
	for i := range out {
		out[i] = models.WeekdayTotal{Day: time.Weekday(i), Earnings: decimal.Zero}
	}
	if rs.Empty() {
		return out
	}

	seen := make(map[time.Time]bool)
	for _, r := range rs.Records {
		day := civilDay(r.Date)
		wd := day.Weekday()
		out[wd].Earnings = out[wd].Earnings.Add(r.Earnings)

		if !seen[day] {
			seen[day] = true
			out[wd].Days++
		}
	}
	return out
}
