package domain

import (
	"errors"
	"time"
)

// ErrVersionConflict is returned by health storage when the record changed since it was read
var ErrVersionConflict = errors.New("health record version conflict")

// RunStatus is the outcome of a poll cycle
type RunStatus string

// enum of run statuses
const (
	RunStatusOK      RunStatus = "ok"
	RunStatusPartial RunStatus = "partial"
	RunStatusError   RunStatus = "error"
)

// SourceHealth is the persisted health record of one source, created on the first run.
// ConsecutiveFailures is zero iff LastStatus is ok. DegradedSince is pinned to the run
// that first crossed the threshold and kept until a success clears the streak.
type SourceHealth struct {
	SourceKey           string
	TotalRuns           int
	TotalFailures       int
	ConsecutiveFailures int
	LastRunAt           time.Time
	LastStatus          RunStatus
	LastError           string
	LastSuccessAt       *time.Time
	Degraded            bool
	DegradedSince       *time.Time
	UpdatedAt           time.Time
	Version             int64 // optimistic concurrency counter, 0 for a record not stored yet
}

// HealthReport is one row of the health report, joined from source registry and stored health
type HealthReport struct {
	SourceKey           string     `json:"sourceKey"`
	Name                string     `json:"name"`
	Enabled             bool       `json:"enabled"`
	PollMinutes         int        `json:"pollMinutes"`
	DegradeThreshold    int        `json:"degradeThreshold"`
	TotalRuns           int        `json:"totalRuns"`
	TotalFailures       int        `json:"totalFailures"`
	ConsecutiveFailures int        `json:"consecutiveFailures"`
	Degraded            bool       `json:"degraded"`
	DegradedSince       *time.Time `json:"degradedSince,omitempty"`
	LastRunAt           *time.Time `json:"lastRunAt,omitempty"`
	LastStatus          RunStatus  `json:"lastStatus,omitempty"`
	LastError           string     `json:"lastError,omitempty"`
	LastSuccessAt       *time.Time `json:"lastSuccessAt,omitempty"`
}
