package db

import (
	"context"
	"fmt"
	"time"
)

// Prune deletes journal rows older than the given number of days and
// returns how many were removed.
func (db *DB) Prune(days int) (int64, error) {
	if days <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(timeLayout)

	var removed int64
	for _, table := range []string{"advisory_calls", "data_loads"} {
		// #nosec G202 -- table names are constants
		res, err := db.ExecContext(context.Background(),
			"DELETE FROM "+table+" WHERE timestamp < ?", cutoff)
		if err != nil {
			return removed, fmt.Errorf("failed to prune %s: %w", table, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += n
		}
	}

	return removed, nil
}
