package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type CommitmentStore struct {
	db *sqlx.DB
}

func (cs *CommitmentStore) InsertCommitment(ctx context.Context, commitment *Commitment) error {
	query := `INSERT INTO commitments (
		commitment_code,
		favored_code,
		nominal_value,
		phase,
		fiscal_year,
		run_id,
		inserted_at
	) VALUES (
		:commitment_code,
		:favored_code,
		:nominal_value,
		:phase,
		:fiscal_year,
		:run_id,
		:inserted_at
	)`

	if _, err := cs.db.NamedExecContext(ctx, query, commitment); err != nil {
		return fmt.Errorf("failed to insert commitment %s: %w", commitment.Code, err)
	}
	return nil
}
