// Package models defines data structures and domain types.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Canonical column names of a record set.
const (
	ColumnDate     = "date"
	ColumnPlatform = "platform"
	ColumnHours    = "hours"
	ColumnEarnings = "earnings"
	ColumnMiles    = "miles"
)

// RequiredColumns lists the columns every record set must carry.
var RequiredColumns = []string{ColumnDate, ColumnPlatform, ColumnHours, ColumnEarnings}

// Record is a single gig-work entry.
type Record struct {
	Date     time.Time
	Platform string
	Earnings decimal.Decimal
	Hours    float64
	Miles    float64
}

// RecordSet is a validated, ordered collection of records.
// It is replaced as a whole on every load and never edited in place.
type RecordSet struct {
	LoadedAt time.Time
	Source   string
	Columns  []string
	Records  []Record
	HasMiles bool
}

// Len returns the number of records.
func (rs *RecordSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Records)
}

// Empty reports whether the set has no rows.
func (rs *RecordSet) Empty() bool {
	return rs.Len() == 0
}

// Head returns up to n leading records.
func (rs *RecordSet) Head(n int) []Record {
	if rs == nil || n <= 0 {
		return nil
	}
	if n > len(rs.Records) {
		n = len(rs.Records)
	}
	return rs.Records[:n]
}

// DateRange returns the earliest and latest record dates.
func (rs *RecordSet) DateRange() (first, last time.Time) {
	if rs.Empty() {
		return time.Time{}, time.Time{}
	}
	first, last = rs.Records[0].Date, rs.Records[0].Date
	for _, r := range rs.Records[1:] {
		if r.Date.Before(first) {
			first = r.Date
		}
		if r.Date.After(last) {
			last = r.Date
		}
	}
	return first, last
}
