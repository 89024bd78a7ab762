package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/hanstudy/ingest/pkg/domain"
)

// defaultRunsLimit caps RecentRuns when no limit given
const defaultRunsLimit = 50

// RunRepository is the poll run log
type RunRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new run log repository
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// runRow adds json encoded errors to the run record
type runRow struct {
	domain.RunRecord
	ErrorsJSON string `db:"errors"`
}

// LogRun appends a run record
func (r *RunRepository) LogRun(ctx context.Context, rec domain.RunRecord) error {
	errs := rec.Errors
	if errs == nil {
		errs = []string{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return fmt.Errorf("marshal run errors: %w", err)
	}
	rec.StartedAt = rec.StartedAt.UTC()
	row := runRow{RunRecord: rec, ErrorsJSON: string(errsJSON)}

	err = newRetrier().Do(ctx, func() error {
		_, err := r.db.NamedExecContext(ctx, `
			INSERT INTO poll_runs (run_id, source_key, started_at, duration_ms, fetched, inserted, updated, deduped, failed, status, errors)
			VALUES (:run_id, :source_key, :started_at, :duration_ms, :fetched, :inserted, :updated, :deduped, :failed, :status, :errors)`,
			row)
		if err != nil {
			return lockOrCritical(fmt.Errorf("log run: %w", err))
		}
		return nil
	}, errCritical)
	return unwrapCritical(err)
}

// RecentRuns returns latest runs first, of one source or of all sources if key is empty
func (r *RunRepository) RecentRuns(ctx context.Context, key string, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = defaultRunsLimit
	}
	query := `SELECT run_id, source_key, started_at, duration_ms, fetched, inserted, updated, deduped, failed, status, errors
		FROM poll_runs`
	args := []any{}
	if key != "" {
		query += " WHERE source_key = ?"
		args = append(args, key)
	}
	query += " ORDER BY started_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}

	res := make([]domain.RunRecord, 0, len(rows))
	for _, row := range rows {
		rec := row.RunRecord
		rec.StartedAt = rec.StartedAt.UTC()
		if row.ErrorsJSON != "" {
			if err := json.Unmarshal([]byte(row.ErrorsJSON), &rec.Errors); err != nil {
				return nil, fmt.Errorf("unmarshal errors of run %s: %w", rec.RunID, err)
			}
		}
		if len(rec.Errors) == 0 {
			rec.Errors = nil
		}
		res = append(res, rec)
	}
	return res, nil
}
