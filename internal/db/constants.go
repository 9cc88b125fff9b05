package db

const (
	// timeLayout is how timestamps are written, so SQLite date functions can
	// read them back.
	timeLayout = "2006-01-02 15:04:05"

	// DefaultRetentionDays is how long journal rows are kept by Prune.
	DefaultRetentionDays = 90
)
