package ingest

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// FrameColumns is the column order of frames built by Frame.
var FrameColumns = []string{
	models.ColumnDate,
	models.ColumnEarnings,
	models.ColumnHours,
	models.ColumnPlatform,
	models.ColumnMiles,
}

// Frame converts records back into a string-typed data frame with ISO dates.
func Frame(records []models.Record) dataframe.DataFrame {
	n := len(records)
	dates := make([]string, n)
	earnings := make([]string, n)
	hours := make([]string, n)
	platforms := make([]string, n)
	miles := make([]string, n)

	for i, r := range records {
		dates[i] = r.Date.Format("2006-01-02")
		earnings[i] = r.Earnings.String()
		hours[i] = strconv.FormatFloat(r.Hours, 'f', -1, 64)
		platforms[i] = r.Platform
		miles[i] = strconv.FormatFloat(r.Miles, 'f', 1, 64)
	}

	return dataframe.New(
		series.New(dates, series.String, models.ColumnDate),
		series.New(earnings, series.String, models.ColumnEarnings),
		series.New(hours, series.String, models.ColumnHours),
		series.New(platforms, series.String, models.ColumnPlatform),
		series.New(miles, series.String, models.ColumnMiles),
	)
}
