package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// InsertAdvisoryCall journals one advisory round-trip.
func (db *DB) InsertAdvisoryCall(call *models.AdvisoryCall) error {
	query := `
		INSERT INTO advisory_calls (
			timestamp, session_id, kind, model, prompt_chars,
			response_chars, duration_ms, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := call.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format(timeLayout),
		call.SessionID,
		string(call.Kind),
		call.Model,
		call.PromptChars,
		call.ResponseChars,
		call.DurationMs,
		nullString(call.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert advisory call: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		call.ID = id
	}

	return nil
}

// GetRecentAdvisoryCalls returns the most recent advisory calls, newest first.
func (db *DB) GetRecentAdvisoryCalls(limit int) ([]models.AdvisoryCall, error) {
	query := `
		SELECT id, timestamp, session_id, kind, model, prompt_chars,
			   response_chars, duration_ms, error
		FROM advisory_calls
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent advisory calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calls []models.AdvisoryCall
	for rows.Next() {
		var (
			call   models.AdvisoryCall
			kind   string
			errStr sql.NullString
		)

		err := rows.Scan(
			&call.ID,
			&call.Timestamp,
			&call.SessionID,
			&kind,
			&call.Model,
			&call.PromptChars,
			&call.ResponseChars,
			&call.DurationMs,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advisory call: %w", err)
		}

		call.Kind = models.AdvisoryKind(kind)
		call.Error = errStr.String
		calls = append(calls, call)
	}

	return calls, rows.Err()
}

// InsertDataLoad journals one attempt to load a record set.
func (db *DB) InsertDataLoad(load *models.DataLoad) error {
	query := `
		INSERT INTO data_loads (timestamp, session_id, source, row_count, error)
		VALUES (?, ?, ?, ?, ?)
	`

	timestamp := load.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		timestamp.UTC().Format(timeLayout),
		load.SessionID,
		load.Source,
		load.Rows,
		nullString(load.Error),
	)
	if err != nil {
		return fmt.Errorf("failed to insert data load: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		load.ID = id
	}

	return nil
}

// GetStats summarizes the whole journal.
func (db *DB) GetStats() (*models.JournalStats, error) {
	stats := &models.JournalStats{}

	var lastCall sql.NullString
	err := db.QueryRowContext(context.Background(), `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(AVG(duration_ms), 0),
			MAX(timestamp)
		FROM advisory_calls
	`).Scan(&stats.AdvisoryCalls, &stats.FailedCalls, &stats.AvgDurationMs, &lastCall)
	if err != nil {
		return nil, fmt.Errorf("failed to query advisory stats: %w", err)
	}

	if lastCall.Valid {
		if t, err := parseTimestamp(lastCall.String); err == nil {
			stats.LastCall = t
		} else {
			logger.Warn("unparseable journal timestamp", "value", lastCall.String, "error", err)
		}
	}

	err = db.QueryRowContext(context.Background(), `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN error IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM data_loads
	`).Scan(&stats.DataLoads, &stats.FailedLoads)
	if err != nil {
		return nil, fmt.Errorf("failed to query load stats: %w", err)
	}

	return stats, nil
}

// parseTimestamp reads a timestamp produced by the driver for an aggregate
// column, which comes back as text rather than a typed DATETIME.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unknown timestamp format %q", s)
}

// nullString returns a sql.NullString from a string.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
