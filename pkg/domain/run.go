package domain

import "time"

// PollRunResult is the outcome of one poll cycle for a source
type PollRunResult struct {
	RunID      string    `json:"runId"`
	SourceKey  string    `json:"sourceKey"`
	StartedAt  time.Time `json:"startedAt"`
	Fetched    int       `json:"fetched"`
	Inserted   int       `json:"inserted"`
	Updated    int       `json:"updated"`
	Deduped    int       `json:"deduped"`
	Failed     int       `json:"failed"`
	DurationMs int64     `json:"durationMs"`
	Status     RunStatus `json:"status"`
	Errors     []string  `json:"errors,omitempty"`
}

// RunRecord is the entry written to the run log for each poll cycle
type RunRecord struct {
	RunID      string    `db:"run_id" json:"runId"`
	SourceKey  string    `db:"source_key" json:"sourceKey"`
	StartedAt  time.Time `db:"started_at" json:"startedAt"`
	DurationMs int64     `db:"duration_ms" json:"durationMs"`
	Fetched    int       `db:"fetched" json:"fetched"`
	Inserted   int       `db:"inserted" json:"inserted"`
	Updated    int       `db:"updated" json:"updated"`
	Deduped    int       `db:"deduped" json:"deduped"`
	Failed     int       `db:"failed" json:"failed"`
	Status     RunStatus `db:"status" json:"status"`
	Errors     []string  `db:"-" json:"errors,omitempty"`
}

// maxLoggedErrors limits error sample stored with a run record
const maxLoggedErrors = 5

// NewRunRecord makes run log record from poll result, keeping a small error sample
func NewRunRecord(res PollRunResult) RunRecord {
	errs := res.Errors
	if len(errs) > maxLoggedErrors {
		errs = errs[:maxLoggedErrors]
	}
	return RunRecord{
		RunID:      res.RunID,
		SourceKey:  res.SourceKey,
		StartedAt:  res.StartedAt,
		DurationMs: res.DurationMs,
		Fetched:    res.Fetched,
		Inserted:   res.Inserted,
		Updated:    res.Updated,
		Deduped:    res.Deduped,
		Failed:     res.Failed,
		Status:     res.Status,
		Errors:     errs,
	}
}

// TriggerResult is returned by single source admin trigger
type TriggerResult struct {
	Scheduled bool   `json:"scheduled"`
	SourceKey string `json:"sourceKey"`
}

// TriggerAllResult is returned by all-sources admin trigger
type TriggerAllResult struct {
	Scheduled int   `json:"scheduled"`
	DelayMs   int64 `json:"delayMs"`
}
