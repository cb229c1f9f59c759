package store

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Commitment represents the 'commitments' table.
type Commitment struct {
	ID           int64           `db:"id"`
	Code         string          `db:"commitment_code"`
	FavoredCode  string          `db:"favored_code"`
	NominalValue decimal.Decimal `db:"nominal_value"`
	Phase        string          `db:"phase"`
	FiscalYear   int             `db:"fiscal_year"`
	RunID        int64           `db:"run_id"`
	InsertedAt   time.Time       `db:"inserted_at"`
}

// Settlement represents the 'settlements' table.
type Settlement struct {
	ID             int64           `db:"id"`
	Code           string          `db:"settlement_code"`
	CommitmentCode string          `db:"commitment_code"`
	SettledValue   decimal.Decimal `db:"settled_value"`
	EmissionDate   time.Time       `db:"emission_date"`
	RunID          int64           `db:"run_id"`
	InsertedAt     time.Time       `db:"inserted_at"`
}

// Payment represents the 'payments' table.
type Payment struct {
	ID             int64           `db:"id"`
	Code           string          `db:"payment_code"`
	CommitmentCode string          `db:"commitment_code"`
	PaidValue      decimal.Decimal `db:"paid_value"`
	EmissionDate   time.Time       `db:"emission_date"`
	RunID          int64           `db:"run_id"`
	InsertedAt     time.Time       `db:"inserted_at"`
}

// BalanceRecord represents the 'balance_records' table, one row per
// commitment per consolidation run.
type BalanceRecord struct {
	ID             int64           `db:"id" json:"-"`
	RunID          int64           `db:"run_id" json:"run_id"`
	CommitmentCode string          `db:"commitment_code" json:"commitment_code"`
	NominalValue   decimal.Decimal `db:"nominal_value" json:"nominal_value"`
	TotalPaid      decimal.Decimal `db:"total_paid" json:"total_paid"`
	TotalSettled   decimal.Decimal `db:"total_settled" json:"total_settled"`
	RemainingValue decimal.Decimal `db:"remaining_value" json:"remaining_value"`
	Status         string          `db:"status" json:"status"`
	InsertedAt     time.Time       `db:"inserted_at" json:"inserted_at"`
}

// ConsolidationRun represents the 'consolidation_runs' table.
type ConsolidationRun struct {
	ID               int64         `db:"id" json:"id"`
	ReferenceYear    int           `db:"reference_year" json:"reference_year"`
	FavoredCode      string        `db:"favored_code" json:"favored_code"`
	TriggerType      string        `db:"trigger_type" json:"trigger_type"`
	SourceType       string        `db:"source_type" json:"source_type"`
	Status           string        `db:"status" json:"status"`
	CommitmentsCount int           `db:"commitments_count" json:"commitments_count"`
	SettlementsCount int           `db:"settlements_count" json:"settlements_count"`
	PaymentsCount    int           `db:"payments_count" json:"payments_count"`
	RejectsCount     int           `db:"rejects_count" json:"rejects_count"`
	OrphansCount     int           `db:"orphans_count" json:"orphans_count"`
	ProcessedAt      time.Time     `db:"processed_at" json:"processed_at"`
	Notes            pq.StringArray `db:"notes" json:"notes,omitempty"`
}
