package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hanstudy/ingest/pkg/domain"
)

// HealthRepository stores source health records with optimistic concurrency on version column
type HealthRepository struct {
	db *sqlx.DB
}

// NewHealthRepository creates a new health repository
func NewHealthRepository(db *sqlx.DB) *HealthRepository {
	return &HealthRepository{db: db}
}

// healthRow is the database shape of domain.SourceHealth
type healthRow struct {
	SourceKey           string     `db:"source_key"`
	TotalRuns           int        `db:"total_runs"`
	TotalFailures       int        `db:"total_failures"`
	ConsecutiveFailures int        `db:"consecutive_failures"`
	LastRunAt           *time.Time `db:"last_run_at"`
	LastStatus          string     `db:"last_status"`
	LastError           string     `db:"last_error"`
	LastSuccessAt       *time.Time `db:"last_success_at"`
	Degraded            bool       `db:"degraded"`
	DegradedSince       *time.Time `db:"degraded_since"`
	UpdatedAt           time.Time  `db:"updated_at"`
	Version             int64      `db:"version"`
}

const healthColumns = `source_key, total_runs, total_failures, consecutive_failures, last_run_at, last_status,
	last_error, last_success_at, degraded, degraded_since, updated_at, version`

// GetHealth returns the health record of the source, false if it never ran
func (r *HealthRepository) GetHealth(ctx context.Context, key string) (domain.SourceHealth, bool, error) {
	var row healthRow
	err := r.db.GetContext(ctx, &row, "SELECT "+healthColumns+" FROM source_health WHERE source_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.SourceHealth{}, false, nil
	}
	if err != nil {
		return domain.SourceHealth{}, false, fmt.Errorf("get health: %w", err)
	}
	return row.toDomain(), true, nil
}

// ListHealth returns all stored health records ordered by source key
func (r *HealthRepository) ListHealth(ctx context.Context) ([]domain.SourceHealth, error) {
	var rows []healthRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+healthColumns+" FROM source_health ORDER BY source_key"); err != nil {
		return nil, fmt.Errorf("list health: %w", err)
	}
	res := make([]domain.SourceHealth, len(rows))
	for i, row := range rows {
		res[i] = row.toDomain()
	}
	return res, nil
}

// SaveHealth inserts the record if h.Version is zero, otherwise updates the stored record
// only if its version is still h.Version. Returns domain.ErrVersionConflict if the record
// was written by someone else since it was read.
func (r *HealthRepository) SaveHealth(ctx context.Context, h domain.SourceHealth) error {
	row := toHealthRow(h)
	err := newRetrier().Do(ctx, func() error {
		var res sql.Result
		var err error
		if row.Version == 0 {
			res, err = r.db.NamedExecContext(ctx, `
				INSERT INTO source_health (`+healthColumns+`)
				VALUES (:source_key, :total_runs, :total_failures, :consecutive_failures, :last_run_at, :last_status,
					:last_error, :last_success_at, :degraded, :degraded_since, :updated_at, 1)
				ON CONFLICT(source_key) DO NOTHING`, row)
		} else {
			res, err = r.db.NamedExecContext(ctx, `
				UPDATE source_health
				SET total_runs = :total_runs,
				    total_failures = :total_failures,
				    consecutive_failures = :consecutive_failures,
				    last_run_at = :last_run_at,
				    last_status = :last_status,
				    last_error = :last_error,
				    last_success_at = :last_success_at,
				    degraded = :degraded,
				    degraded_since = :degraded_since,
				    updated_at = :updated_at,
				    version = version + 1
				WHERE source_key = :source_key AND version = :version`, row)
		}
		if err != nil {
			return lockOrCritical(fmt.Errorf("save health: %w", err))
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return &criticalError{err: fmt.Errorf("save health rows affected: %w", err)}
		}
		if affected == 0 {
			return &criticalError{err: domain.ErrVersionConflict}
		}
		return nil
	}, errCritical)
	return unwrapCritical(err)
}

func (row healthRow) toDomain() domain.SourceHealth {
	h := domain.SourceHealth{
		SourceKey:           row.SourceKey,
		TotalRuns:           row.TotalRuns,
		TotalFailures:       row.TotalFailures,
		ConsecutiveFailures: row.ConsecutiveFailures,
		LastStatus:          domain.RunStatus(row.LastStatus),
		LastError:           row.LastError,
		LastSuccessAt:       utcPtr(row.LastSuccessAt),
		Degraded:            row.Degraded,
		DegradedSince:       utcPtr(row.DegradedSince),
		UpdatedAt:           row.UpdatedAt.UTC(),
		Version:             row.Version,
	}
	if row.LastRunAt != nil {
		h.LastRunAt = row.LastRunAt.UTC()
	}
	return h
}

func toHealthRow(h domain.SourceHealth) healthRow {
	row := healthRow{
		SourceKey:           h.SourceKey,
		TotalRuns:           h.TotalRuns,
		TotalFailures:       h.TotalFailures,
		ConsecutiveFailures: h.ConsecutiveFailures,
		LastStatus:          string(h.LastStatus),
		LastError:           h.LastError,
		LastSuccessAt:       utcPtr(h.LastSuccessAt),
		Degraded:            h.Degraded,
		DegradedSince:       utcPtr(h.DegradedSince),
		UpdatedAt:           h.UpdatedAt.UTC(),
		Version:             h.Version,
	}
	if !h.LastRunAt.IsZero() {
		lastRun := h.LastRunAt.UTC()
		row.LastRunAt = &lastRun
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = time.Now().UTC()
	}
	return row
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
