package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Summary holds the headline metrics of a record set.
type Summary struct {
	TotalEarnings   decimal.Decimal
	HourlyRate      decimal.Decimal
	EarningsPerMile decimal.Decimal
	TotalHours      float64
	TotalMiles      float64
	Jobs            int
	HasMiles        bool

	// RateGuarded is set when total hours were below one and the hourly rate
	// was computed against a divisor of one.
	RateGuarded bool

	// MileGuarded is the same for total miles.
	MileGuarded bool
}

// WeeklyTotal is one week-ending bucket of the weekly resample.
type WeeklyTotal struct {
	WeekEnding time.Time
	Earnings   decimal.Decimal
	Hours      float64
	Miles      float64
	Count      int
}

// PlatformStats are the grouped statistics for a single platform label.
type PlatformStats struct {
	Platform     string
	EarningsSum  decimal.Decimal
	EarningsMean decimal.Decimal
	HoursSum     float64
	HoursMean    float64
	Count        int
}

// WeekdayTotal is the earnings total for one day of the week.
type WeekdayTotal struct {
	Day      time.Weekday
	Earnings decimal.Decimal
	Days     int
}

// Projection is a naive forward estimate of earnings.
type Projection struct {
	Days          int
	DailyAverage  decimal.Decimal
	Projected     decimal.Decimal
	ActiveDays    int
	HasEnoughData bool
}
