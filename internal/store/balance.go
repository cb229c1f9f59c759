package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type BalanceStore struct {
	db *sqlx.DB
}

type BalanceFilter struct {
	RunID       int64
	FiscalYear  int
	FavoredCode string
	Statuses    []string
	Limit       int
}

type BalanceSummaryRow struct {
	Status         string          `db:"status" json:"status"`
	Count          int             `db:"commitments_count" json:"commitments_count"`
	TotalNominal   decimal.Decimal `db:"total_nominal" json:"total_nominal"`
	TotalPaid      decimal.Decimal `db:"total_paid" json:"total_paid"`
	TotalRemaining decimal.Decimal `db:"total_remaining" json:"total_remaining"`
}

type BalanceSummary struct {
	Rows []BalanceSummaryRow `json:"rows"`
}

func (bs *BalanceStore) InsertBalanceRecord(ctx context.Context, record *BalanceRecord) error {
	query := `INSERT INTO balance_records (
		run_id,
		commitment_code,
		nominal_value,
		total_paid,
		total_settled,
		remaining_value,
		status,
		inserted_at
	) VALUES (
		:run_id,
		:commitment_code,
		:nominal_value,
		:total_paid,
		:total_settled,
		:remaining_value,
		:status,
		:inserted_at
	)`

	if _, err := bs.db.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("failed to insert balance record %s: %w", record.CommitmentCode, err)
	}
	return nil
}

/*
GetReport returns the consolidated balance table for the most recent run
matching the filter (or an explicit run id), ordered the same way the engine
assembles it: lowest remaining balance first, commitment code as tiebreaker.
*/
func (bs *BalanceStore) GetReport(ctx context.Context, filter BalanceFilter) ([]BalanceRecord, error) {
	query := `
	SELECT
		br.run_id,
		br.commitment_code,
		br.nominal_value,
		br.total_paid,
		br.total_settled,
		br.remaining_value,
		br.status,
		br.inserted_at
	FROM
		balance_records br
	JOIN
		consolidation_runs cr ON cr.id = br.run_id
	WHERE
		($1 = 0 OR br.run_id = $1)
		AND ($2 = 0 OR cr.reference_year = $2)
		AND ($3 = '' OR cr.favored_code = $3)
		AND (cardinality($4::text[]) = 0 OR br.status = ANY($4))
		AND br.run_id = (
			SELECT MAX(br2.run_id) FROM balance_records br2
			JOIN consolidation_runs cr2 ON cr2.id = br2.run_id
			WHERE ($1 = 0 OR br2.run_id = $1)
			AND ($2 = 0 OR cr2.reference_year = $2)
			AND ($3 = '' OR cr2.favored_code = $3)
		)
	ORDER BY
		br.remaining_value ASC,
		br.commitment_code ASC
	LIMIT $5;
	`

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	statuses := filter.Statuses
	if statuses == nil {
		statuses = []string{}
	}

	var rows []BalanceRecord
	err := bs.db.SelectContext(ctx, &rows, query, filter.RunID, filter.FiscalYear, filter.FavoredCode, pq.Array(statuses), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query balance report: %w", err)
	}

	return rows, nil
}

func (bs *BalanceStore) GetSummary(ctx context.Context, filter BalanceFilter) (BalanceSummary, error) {
	query := `
	SELECT
		br.status,
		COUNT(br.id) AS commitments_count,
		COALESCE(SUM(br.nominal_value), 0) AS total_nominal,
		COALESCE(SUM(br.total_paid), 0) AS total_paid,
		COALESCE(SUM(br.remaining_value), 0) AS total_remaining
	FROM
		balance_records br
	JOIN
		consolidation_runs cr ON cr.id = br.run_id
	WHERE
		($1 = 0 OR br.run_id = $1)
		AND ($2 = 0 OR cr.reference_year = $2)
		AND ($3 = '' OR cr.favored_code = $3)
		AND br.run_id = (
			SELECT MAX(br2.run_id) FROM balance_records br2
			JOIN consolidation_runs cr2 ON cr2.id = br2.run_id
			WHERE ($1 = 0 OR br2.run_id = $1)
			AND ($2 = 0 OR cr2.reference_year = $2)
			AND ($3 = '' OR cr2.favored_code = $3)
		)
	GROUP BY
		br.status
	ORDER BY
		total_remaining ASC;
	`

	var rows []BalanceSummaryRow
	err := bs.db.SelectContext(ctx, &rows, query, filter.RunID, filter.FiscalYear, filter.FavoredCode)
	if err != nil {
		return BalanceSummary{}, fmt.Errorf("failed to query balance summary: %w", err)
	}

	return BalanceSummary{Rows: rows}, nil
}
