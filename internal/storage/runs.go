package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/domain"
)

// ErrBatchRunNotFound is returned when no batch run has been recorded yet.
var ErrBatchRunNotFound = errors.New("batch run not found")

// RecordBatchRun persists an audit record for one batch invocation.
func (db *DB) RecordBatchRun(ctx context.Context, run *domain.BatchRun) error {
	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO batch_runs (id, week_start_date, trigger, processed, success, failed, skipped_invalid_emails, started_at, finished_at)
		VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9)
	`,
		toUUID(run.ID),
		run.WeekStartDate,
		toText(run.Trigger),
		run.Report.Processed,
		run.Report.Success,
		run.Report.Failed,
		run.Report.SkippedInvalidEmails,
		toTimestamptz(run.StartedAt),
		toTimestamptz(run.FinishedAt),
	); err != nil {
		return fmt.Errorf("insert batch run: %w", err)
	}

	return nil
}

// LastBatchRun returns the most recently started batch run, or
// ErrBatchRunNotFound when none has ever been recorded.
func (db *DB) LastBatchRun(ctx context.Context) (*domain.BatchRun, error) {
	row := db.Pool.QueryRow(ctx, `
		SELECT id,
		       week_start_date,
		       trigger,
		       processed,
		       success,
		       failed,
		       skipped_invalid_emails,
		       started_at,
		       finished_at
		FROM batch_runs
		ORDER BY started_at DESC
		LIMIT 1
	`)

	var (
		id         pgtype.UUID
		week       pgtype.Date
		trigger    pgtype.Text
		startedAt  pgtype.Timestamptz
		finishedAt pgtype.Timestamptz
	)

	var run domain.BatchRun

	err := row.Scan(
		&id,
		&week,
		&trigger,
		&run.Report.Processed,
		&run.Report.Success,
		&run.Report.Failed,
		&run.Report.SkippedInvalidEmails,
		&startedAt,
		&finishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBatchRunNotFound
		}

		return nil, fmt.Errorf("get last batch run: %w", err)
	}

	run.ID = fromUUID(id)
	run.WeekStartDate = fromDate(week).Format(domain.WeekDateFormat)
	run.Trigger = fromText(trigger)
	run.StartedAt = fromTimestamptz(startedAt)
	run.FinishedAt = fromTimestamptz(finishedAt)

	return &run, nil
}
