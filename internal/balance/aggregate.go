package balance

import "github.com/shopspring/decimal"

// Totals accumulates paid and settled values for one commitment code.
type Totals struct {
	TotalPaid    decimal.Decimal
	TotalSettled decimal.Decimal
}

// Aggregates maps commitment codes to their totals while preserving a
// deterministic iteration order: first appearance in the payments sequence,
// then codes seen only in settlements, in settlement input order.
type Aggregates struct {
	order  []string
	totals map[string]Totals
}

/*
Aggregate groups payments and settlements by their parent commitment code and
sums the values with exact arithmetic. Codes without a matching loaded
commitment are still aggregated here; the balance calculator reports them as
orphan references. The sums are independent of input ordering.
*/
func Aggregate(payments []Payment, settlements []Settlement) *Aggregates {
	a := &Aggregates{totals: make(map[string]Totals)}

	for _, p := range payments {
		t := a.entry(p.CommitmentCode)
		t.TotalPaid = t.TotalPaid.Add(p.Value)
		a.totals[p.CommitmentCode] = t
	}

	for _, s := range settlements {
		t := a.entry(s.CommitmentCode)
		t.TotalSettled = t.TotalSettled.Add(s.Value)
		a.totals[s.CommitmentCode] = t
	}

	return a
}

func (a *Aggregates) entry(code string) Totals {
	t, ok := a.totals[code]
	if !ok {
		a.order = append(a.order, code)
		t = Totals{TotalPaid: decimal.Zero, TotalSettled: decimal.Zero}
	}
	return t
}

// Codes returns the commitment codes in insertion order.
func (a *Aggregates) Codes() []string {
	return a.order
}

// Lookup returns the totals for a commitment code, reporting whether any
// payment or settlement referenced it.
func (a *Aggregates) Lookup(code string) (Totals, bool) {
	t, ok := a.totals[code]
	if !ok {
		return Totals{TotalPaid: decimal.Zero, TotalSettled: decimal.Zero}, false
	}
	return t, true
}

// Len reports how many distinct commitment codes were aggregated.
func (a *Aggregates) Len() int {
	return len(a.order)
}
