package models

import "time"

// AdvisoryKind identifies which advisory operation produced a call.
type AdvisoryKind string

const (
	AdvisoryRecommendations AdvisoryKind = "recommendations"
	AdvisoryQuestion        AdvisoryKind = "question"
)

// AdvisoryCall is a journal entry for one round-trip to the text-generation service.
// Prompt and response contents are never stored, only their sizes.
type AdvisoryCall struct {
	Timestamp     time.Time
	SessionID     string
	Kind          AdvisoryKind
	Model         string
	Error         string
	ID            int64
	PromptChars   int
	ResponseChars int
	DurationMs    int64
}

// DataLoad is a journal entry for one attempt to load a record set.
type DataLoad struct {
	Timestamp time.Time
	SessionID string
	Source    string
	Error     string
	ID        int64
	Rows      int
}

// JournalStats summarizes the journal.
type JournalStats struct {
	LastCall      time.Time
	AdvisoryCalls int
	FailedCalls   int
	AvgDurationMs float64
	DataLoads     int
	FailedLoads   int
}
