package balance

import "fmt"

// Options configures a consolidation pipeline. FiscalYear, when non-zero,
// scopes the run: commitments outside that fiscal year and settlements or
// payments dated outside it are dropped before aggregation. Zero means no
// date filtering at all.
type Options struct {
	FiscalYear int
}

// Input carries the three caller-tagged raw batches of one run.
type Input struct {
	Commitments []RawRow
	Settlements []RawRow
	Payments    []RawRow
}

// Result is the full outcome of one consolidation pass: the assembled
// balance table plus everything the engine could not use, so the caller can
// decide whether to alert or block.
type Result struct {
	Balances    []BalanceRecord
	Commitments []Commitment
	Settlements []Settlement
	Payments    []Payment
	Rejects     []Reject
	Orphans     []OrphanReference
}

// Pipeline runs the normalize → aggregate → calculate → assemble stages over
// in-memory record sets. Each run is independent; no state is shared between
// concurrent pipelines.
type Pipeline struct {
	fiscalYear int
}

// NewPipeline validates options up front. Incompatible configuration is the
// only fatal condition; everything row-level is recovered during Run.
func NewPipeline(opts Options) (*Pipeline, error) {
	if opts.FiscalYear < 0 {
		return nil, fmt.Errorf("fiscal year must be positive, got %d", opts.FiscalYear)
	}
	return &Pipeline{fiscalYear: opts.FiscalYear}, nil
}

/*
Run derives fresh balances from the supplied raw batches. It never aborts on
row-level issues: malformed rows land in Result.Rejects, aggregates without a
loaded commitment in Result.Orphans. Zero commitments is a valid input and
produces an empty balance table.
*/
func (p *Pipeline) Run(in Input) Result {
	commitments := Normalize(KindCommitment, in.Commitments)
	settlements := Normalize(KindSettlement, in.Settlements)
	payments := Normalize(KindPayment, in.Payments)

	result := Result{
		Commitments: p.scopeCommitments(commitments.Commitments),
		Settlements: p.scopeSettlements(settlements.Settlements),
		Payments:    p.scopePayments(payments.Payments),
	}

	result.Rejects = append(result.Rejects, commitments.Rejects...)
	result.Rejects = append(result.Rejects, settlements.Rejects...)
	result.Rejects = append(result.Rejects, payments.Rejects...)

	aggs := Aggregate(result.Payments, result.Settlements)
	records, orphans := Calculate(result.Commitments, aggs)

	result.Balances = Assemble(records)
	result.Orphans = orphans
	return result
}

func (p *Pipeline) scopeCommitments(in []Commitment) []Commitment {
	out := make([]Commitment, 0, len(in))
	for _, c := range in {
		if p.fiscalYear != 0 && c.FiscalYear != p.fiscalYear {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (p *Pipeline) scopeSettlements(in []Settlement) []Settlement {
	out := make([]Settlement, 0, len(in))
	for _, s := range in {
		if p.fiscalYear != 0 && s.Date.Year() != p.fiscalYear {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (p *Pipeline) scopePayments(in []Payment) []Payment {
	out := make([]Payment, 0, len(in))
	for _, pay := range in {
		if p.fiscalYear != 0 && pay.Date.Year() != p.fiscalYear {
			continue
		}
		out = append(out, pay)
	}
	return out
}
