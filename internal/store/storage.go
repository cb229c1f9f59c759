package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Commitment interface {
		InsertCommitment(ctx context.Context, commitment *Commitment) error
	}

	Settlement interface {
		InsertSettlement(ctx context.Context, settlement *Settlement) error
	}

	Payment interface {
		InsertPayment(ctx context.Context, payment *Payment) error
	}

	Balance interface {
		InsertBalanceRecord(ctx context.Context, record *BalanceRecord) error
		GetReport(ctx context.Context, filter BalanceFilter) ([]BalanceRecord, error)
		GetSummary(ctx context.Context, filter BalanceFilter) (BalanceSummary, error)
	}

	Runs interface {
		InsertRun(ctx context.Context, run *ConsolidationRun) error
		GetLatest(ctx context.Context, limit int) ([]ConsolidationRun, error)
		UpdateRunStatus(ctx context.Context, id int64, status string) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Commitment: &CommitmentStore{db: db},
		Settlement: &SettlementStore{db: db},
		Payment:    &PaymentStore{db: db},
		Balance:    &BalanceStore{db: db},
		Runs:       &RunStore{db: db},
	}
}
