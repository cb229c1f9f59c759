package balance

import "github.com/shopspring/decimal"

// OrphanReference reports aggregated values whose commitment code is absent
// from the loaded commitment set. These are surfaced to the caller as
// structured warnings and excluded from the balance output, since there is no
// nominal value to anchor a balance on.
type OrphanReference struct {
	CommitmentCode string
	TotalPaid      decimal.Decimal
	TotalSettled   decimal.Decimal
}

/*
Calculate combines each commitment's nominal value with its aggregated totals
into a BalanceRecord. A commitment with no aggregate is fully available.
Remaining balance is nominal minus total paid and may be negative
(over-payment); that is a business signal, not an error, and is preserved.
*/
func Calculate(commitments []Commitment, aggs *Aggregates) ([]BalanceRecord, []OrphanReference) {
	records := make([]BalanceRecord, 0, len(commitments))
	known := make(map[string]bool, len(commitments))

	for _, c := range commitments {
		known[c.Code] = true
		totals, _ := aggs.Lookup(c.Code)

		records = append(records, BalanceRecord{
			CommitmentCode: c.Code,
			Nominal:        c.Nominal,
			TotalPaid:      totals.TotalPaid,
			TotalSettled:   totals.TotalSettled,
			Remaining:      c.Nominal.Sub(totals.TotalPaid),
			Status:         Classify(totals.TotalPaid, c.Nominal),
		})
	}

	var orphans []OrphanReference
	for _, code := range aggs.Codes() {
		if known[code] {
			continue
		}
		totals, _ := aggs.Lookup(code)
		orphans = append(orphans, OrphanReference{
			CommitmentCode: code,
			TotalPaid:      totals.TotalPaid,
			TotalSettled:   totals.TotalSettled,
		})
	}

	return records, orphans
}
