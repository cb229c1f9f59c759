package balance

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Operation types served by the portal's commitment item history. A
// commitment's effective nominal value is the net of these operations, not
// the raw value on the by-favored listing.
const (
	OperationInclusion     = "INCLUSAO"
	OperationReinforcement = "REFORCO"
	OperationAnnulment     = "ANULACAO"
)

/*
UpdatedNominal folds a commitment's item history into its effective nominal
value: inclusions plus reinforcements minus annulments. Rows whose operation
value cannot be parsed are routed to rejects; rows with an operation type
outside the three known kinds are ignored, since they do not move the
committed value. An empty history yields zero, which callers treat as "no
history available, keep the listed value".
*/
func UpdatedNominal(rows []RawRow) (decimal.Decimal, []Reject) {
	total := decimal.Zero
	var rejects []Reject

	for _, row := range rows {
		raw, ok := row[FieldOperationValue]
		if !ok || raw == "" {
			rejects = append(rejects, Reject{
				Kind:   KindCommitment,
				Row:    row,
				Reason: fmt.Sprintf("missing field %q", FieldOperationValue),
			})
			continue
		}

		val, err := ParseMoney(raw)
		if err != nil {
			rejects = append(rejects, Reject{
				Kind:   KindCommitment,
				Row:    row,
				Reason: fmt.Sprintf("field %q: %v", FieldOperationValue, err),
			})
			continue
		}

		switch row[FieldOperationType] {
		case OperationInclusion, OperationReinforcement:
			total = total.Add(val)
		case OperationAnnulment:
			total = total.Sub(val)
		}
	}

	return total, rejects
}
