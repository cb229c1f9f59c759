package balance

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Reject is a raw row the normalizer could not turn into a typed record,
// paired with a human-readable reason. Rejects never halt a run.
type Reject struct {
	Kind   Kind
	Row    RawRow
	Reason string
}

// Batch holds the typed records produced from one caller-tagged raw batch.
// Only the slice matching the batch kind is populated.
type Batch struct {
	Kind        Kind
	Commitments []Commitment
	Settlements []Settlement
	Payments    []Payment
	Rejects     []Reject
}

/*
Normalize converts raw rows of the given kind into typed records. Invalid
rows are routed to the batch's Rejects in input order instead of failing the
run. Re-running on the same input yields identical records and rejects.
*/
func Normalize(kind Kind, rows []RawRow) Batch {
	batch := Batch{Kind: kind}

	for _, row := range rows {
		var err error
		switch kind {
		case KindCommitment:
			var c Commitment
			if c, err = rowToCommitment(row); err == nil {
				batch.Commitments = append(batch.Commitments, c)
			}
		case KindSettlement:
			var s Settlement
			if s, err = rowToSettlement(row); err == nil {
				batch.Settlements = append(batch.Settlements, s)
			}
		case KindPayment:
			var p Payment
			if p, err = rowToPayment(row); err == nil {
				batch.Payments = append(batch.Payments, p)
			}
		}

		if err != nil {
			batch.Rejects = append(batch.Rejects, Reject{Kind: kind, Row: row, Reason: err.Error()})
		}
	}

	return batch
}

func requireField(row RawRow, key string) (string, error) {
	val, ok := row[key]
	if !ok || val == "" {
		return "", fmt.Errorf("missing field %q", key)
	}
	return val, nil
}

func moneyField(row RawRow, key string) (decimal.Decimal, error) {
	raw, err := requireField(row, key)
	if err != nil {
		return decimal.Zero, err
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("field %q: %v", key, err)
	}
	if parsed.IsNegative() {
		return decimal.Zero, fmt.Errorf("field %q: negative monetary value %q", key, raw)
	}
	return parsed, nil
}

func dateField(row RawRow, key string) (time.Time, error) {
	raw, err := requireField(row, key)
	if err != nil {
		return time.Time{}, err
	}
	// Portal exports use dd/mm/yyyy, API responses yyyy-mm-dd
	if t, perr := time.Parse("02/01/2006", raw); perr == nil {
		return t, nil
	}
	if t, perr := time.Parse("2006-01-02", raw); perr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("field %q: unparseable date %q", key, raw)
}

func rowToCommitment(row RawRow) (Commitment, error) {
	code, err := requireField(row, FieldDocument)
	if err != nil {
		return Commitment{}, err
	}

	nominal, err := moneyField(row, FieldValue)
	if err != nil {
		return Commitment{}, err
	}

	yearStr, err := requireField(row, FieldYear)
	if err != nil {
		return Commitment{}, err
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year <= 0 {
		return Commitment{}, fmt.Errorf("field %q: invalid fiscal year %q", FieldYear, yearStr)
	}

	return Commitment{
		Code:        code,
		FavoredCode: row[FieldFavoredCode],
		Nominal:     nominal,
		Phase:       row[FieldPhase],
		FiscalYear:  year,
	}, nil
}

func rowToSettlement(row RawRow) (Settlement, error) {
	code, err := requireField(row, FieldDocument)
	if err != nil {
		return Settlement{}, err
	}

	commitmentCode, err := requireField(row, FieldCommitmentCode)
	if err != nil {
		return Settlement{}, err
	}

	value, err := moneyField(row, FieldValue)
	if err != nil {
		return Settlement{}, err
	}

	date, err := dateField(row, FieldDate)
	if err != nil {
		return Settlement{}, err
	}

	return Settlement{
		Code:           code,
		CommitmentCode: commitmentCode,
		Value:          value,
		Date:           date,
	}, nil
}

func rowToPayment(row RawRow) (Payment, error) {
	code, err := requireField(row, FieldDocument)
	if err != nil {
		return Payment{}, err
	}

	commitmentCode, err := requireField(row, FieldCommitmentCode)
	if err != nil {
		return Payment{}, err
	}

	value, err := moneyField(row, FieldValue)
	if err != nil {
		return Payment{}, err
	}

	date, err := dateField(row, FieldDate)
	if err != nil {
		return Payment{}, err
	}

	return Payment{
		Code:           code,
		CommitmentCode: commitmentCode,
		Value:          value,
		Date:           date,
	}, nil
}
