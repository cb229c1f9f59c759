package main

import (
	"context"
	"time"

	"github.com/farxc/saldo-empenhos/internal/balance"
	"github.com/farxc/saldo-empenhos/internal/logger"
	"github.com/farxc/saldo-empenhos/internal/store"
)

// persistResult writes the normalized entities and the derived balance table
// of one run. Inserts are per row so one bad record does not abort the run;
// the last error is reported so the run can be flagged.
func persistResult(ctx context.Context, storage *store.Storage, runID int64, result balance.Result, appLogger *logger.Logger) error {
	const component = "Loader"
	var lastErr error

	appLogger.Info(component, "Starting data load: runID=%d", runID)

	now := time.Now()

	for _, c := range result.Commitments {
		row := &store.Commitment{
			Code:         c.Code,
			FavoredCode:  c.FavoredCode,
			NominalValue: c.Nominal,
			Phase:        c.Phase,
			FiscalYear:   c.FiscalYear,
			RunID:        runID,
			InsertedAt:   now,
		}
		if err := storage.Commitment.InsertCommitment(ctx, row); err != nil {
			appLogger.Warn(component, "Failed to insert commitment: code=%s error=%v", c.Code, err)
			lastErr = err
		}
	}

	for _, s := range result.Settlements {
		row := &store.Settlement{
			Code:           s.Code,
			CommitmentCode: s.CommitmentCode,
			SettledValue:   s.Value,
			EmissionDate:   s.Date,
			RunID:          runID,
			InsertedAt:     now,
		}
		if err := storage.Settlement.InsertSettlement(ctx, row); err != nil {
			appLogger.Warn(component, "Failed to insert settlement: code=%s error=%v", s.Code, err)
			lastErr = err
		}
	}

	for _, p := range result.Payments {
		row := &store.Payment{
			Code:           p.Code,
			CommitmentCode: p.CommitmentCode,
			PaidValue:      p.Value,
			EmissionDate:   p.Date,
			RunID:          runID,
			InsertedAt:     now,
		}
		if err := storage.Payment.InsertPayment(ctx, row); err != nil {
			appLogger.Warn(component, "Failed to insert payment: code=%s error=%v", p.Code, err)
			lastErr = err
		}
	}

	for _, b := range result.Balances {
		row := &store.BalanceRecord{
			RunID:          runID,
			CommitmentCode: b.CommitmentCode,
			NominalValue:   b.Nominal,
			TotalPaid:      b.TotalPaid,
			TotalSettled:   b.TotalSettled,
			RemainingValue: b.Remaining,
			Status:         b.Status.String(),
			InsertedAt:     now,
		}
		if err := storage.Balance.InsertBalanceRecord(ctx, row); err != nil {
			appLogger.Warn(component, "Failed to insert balance record: commitment=%s error=%v", b.CommitmentCode, err)
			lastErr = err
		}
	}

	appLogger.Info(component, "Data load finished: runID=%d commitments=%d settlements=%d payments=%d balances=%d",
		runID, len(result.Commitments), len(result.Settlements), len(result.Payments), len(result.Balances))

	return lastErr
}
