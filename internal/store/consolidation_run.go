package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type RunStore struct {
	db *sqlx.DB
}

var (
	SourceTypeAPI = "api"
	SourceTypeCSV = "csv"
)

var (
	TriggerTypeManual    = "manual"
	TriggerTypeScheduled = "scheduled"
)

var (
	StatusInProgress = "in_progress"
	StatusSuccess    = "success"
	StatusPartial    = "partial"
	StatusFailure    = "failure"
)

func (rs *RunStore) InsertRun(ctx context.Context, run *ConsolidationRun) error {
	query := `INSERT INTO consolidation_runs (
		reference_year,
		favored_code,
		trigger_type,
		source_type,
		status,
		commitments_count,
		settlements_count,
		payments_count,
		rejects_count,
		orphans_count,
		notes
	) VALUES (
		:reference_year,
		:favored_code,
		:trigger_type,
		:source_type,
		:status,
		:commitments_count,
		:settlements_count,
		:payments_count,
		:rejects_count,
		:orphans_count,
		:notes
	) RETURNING id, processed_at`

	rows, err := rs.db.NamedQueryContext(ctx, query, run)
	if err != nil {
		return fmt.Errorf("failed to insert consolidation run: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&run.ID, &run.ProcessedAt); err != nil {
			return fmt.Errorf("failed to scan consolidation run id: %w", err)
		}
	}

	return rows.Err()
}

func (rs *RunStore) GetLatest(ctx context.Context, limit int) ([]ConsolidationRun, error) {
	query := `
	SELECT
		id,
		reference_year,
		favored_code,
		trigger_type,
		source_type,
		status,
		commitments_count,
		settlements_count,
		payments_count,
		rejects_count,
		orphans_count,
		processed_at,
		notes
	FROM
		consolidation_runs
	ORDER BY
		processed_at DESC
	LIMIT $1;
	`

	var runs []ConsolidationRun
	if err := rs.db.SelectContext(ctx, &runs, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query consolidation runs: %w", err)
	}

	return runs, nil
}

func (rs *RunStore) UpdateRunStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE consolidation_runs SET status = $1 WHERE id = $2`

	result, err := rs.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update run %d status: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("consolidation run %d not found", id)
	}

	return nil
}
