package balance

import "sort"

// Assemble orders balance records by ascending remaining balance, so the
// most urgent (lowest balance) commitments come first, with ties broken by
// commitment code for deterministic output. The input slice is not modified.
func Assemble(records []BalanceRecord) []BalanceRecord {
	out := make([]BalanceRecord, len(records))
	copy(out, records)

	sort.SliceStable(out, func(i, j int) bool {
		cmp := out[i].Remaining.Cmp(out[j].Remaining)
		if cmp != 0 {
			return cmp < 0
		}
		return out[i].CommitmentCode < out[j].CommitmentCode
	})

	return out
}
