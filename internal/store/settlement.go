package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type SettlementStore struct {
	db *sqlx.DB
}

func (ss *SettlementStore) InsertSettlement(ctx context.Context, settlement *Settlement) error {
	query := `INSERT INTO settlements (
		settlement_code,
		commitment_code,
		settled_value,
		emission_date,
		run_id,
		inserted_at
	) VALUES (
		:settlement_code,
		:commitment_code,
		:settled_value,
		:emission_date,
		:run_id,
		:inserted_at
	)`

	if _, err := ss.db.NamedExecContext(ctx, query, settlement); err != nil {
		return fmt.Errorf("failed to insert settlement %s: %w", settlement.Code, err)
	}
	return nil
}
