package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type PaymentStore struct {
	db *sqlx.DB
}

func (ps *PaymentStore) InsertPayment(ctx context.Context, payment *Payment) error {
	query := `INSERT INTO payments (
		payment_code,
		commitment_code,
		paid_value,
		emission_date,
		run_id,
		inserted_at
	) VALUES (
		:payment_code,
		:commitment_code,
		:paid_value,
		:emission_date,
		:run_id,
		:inserted_at
	)`

	if _, err := ps.db.NamedExecContext(ctx, query, payment); err != nil {
		return fmt.Errorf("failed to insert payment %s: %w", payment.Code, err)
	}
	return nil
}
