// Package ingest turns raw tabular input into validated record sets.
package ingest

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// Table is raw tabular input: a header row and string cells.
type Table struct {
	Header []string
	Rows   [][]string
}

// dateLayouts are tried in order for every date cell.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"20060102",
}

// ParseDate parses a date cell into the calendar date it names, at midnight
// UTC. Any time of day or offset in the cell is dropped so records from
// different zones compare as plain dates. The boolean is false for
// unparseable input, which is the invalid-date sentinel used by Validate.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// Validate normalizes the header, checks the required schema, coerces dates
// and numbers and returns the record set. Any failure rejects the whole table.
func Validate(t Table) (*models.RecordSet, error) {
	columns := dedupeColumns(NormalizeColumns(t.Header))

	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, seen := index[c]; !seen {
			index[c] = i
		}
	}

	if missing := missingColumns(index); len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	dates, err := coerceDates(t.Rows, index[models.ColumnDate])
	if err != nil {
		return nil, err
	}

	milesIdx, hasMiles := index[models.ColumnMiles]

	records := make([]models.Record, len(t.Rows))
	for i, row := range t.Rows {
		rowNum := i + 1

		earningsCell := cell(row, index[models.ColumnEarnings])
		earnings, err := decimal.NewFromString(strings.TrimSpace(earningsCell))
		if err != nil {
			return nil, &InvalidNumberError{Column: models.ColumnEarnings, Row: rowNum, Value: earningsCell}
		}

		hoursCell := cell(row, index[models.ColumnHours])
		hours, err := strconv.ParseFloat(strings.TrimSpace(hoursCell), 64)
		if err != nil {
			return nil, &InvalidNumberError{Column: models.ColumnHours, Row: rowNum, Value: hoursCell}
		}

		var miles float64
		if hasMiles {
			milesCell := strings.TrimSpace(cell(row, milesIdx))
			if milesCell != "" {
				miles, err = strconv.ParseFloat(milesCell, 64)
				if err != nil {
					return nil, &InvalidNumberError{Column: models.ColumnMiles, Row: rowNum, Value: milesCell}
				}
			}
		}

		records[i] = models.Record{
			Date:     dates[i],
			Platform: strings.TrimSpace(cell(row, index[models.ColumnPlatform])),
			Earnings: earnings,
			Hours:    hours,
			Miles:    miles,
		}
	}

	return &models.RecordSet{
		Columns:  columns,
		Records:  records,
		HasMiles: hasMiles,
	}, nil
}

// dedupeColumns keeps the first occurrence of a repeated name and suffixes
// later ones with ".1", ".2" and so on, skipping suffixes already taken.
func dedupeColumns(names []string) []string {
	taken := make(map[string]bool, len(names))
	for _, n := range names {
		taken[n] = true
	}

	out := make([]string, len(names))
	seen := make(map[string]int, len(names))
	for i, n := range names {
		count := seen[n]
		seen[n]++
		if count == 0 {
			out[i] = n
			continue
		}
		name := n + "." + strconv.Itoa(count)
		for taken[name] {
			count++
			name = n + "." + strconv.Itoa(count)
		}
		seen[n] = count + 1
		taken[name] = true
		out[i] = name
	}
	return out
}

func missingColumns(index map[string]int) []string {
	var missing []string
	for _, req := range models.RequiredColumns {
		if _, ok := index[req]; !ok {
			missing = append(missing, req)
		}
	}
	sort.Strings(missing)
	return missing
}

// coerceDates parses every date cell; one bad cell fails the batch.
func coerceDates(rows [][]string, col int) ([]time.Time, error) {
	dates := make([]time.Time, len(rows))
	var bad *InvalidDateError

	for i, row := range rows {
		d, ok := ParseDate(cell(row, col))
		if !ok {
			if bad == nil {
				bad = &InvalidDateError{Row: i + 1, Value: cell(row, col)}
			}
			bad.Count++
			continue
		}
		dates[i] = d
	}

	if bad != nil {
		return nil, bad
	}
	return dates, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
