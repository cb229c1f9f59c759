package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitment(code, nominal string) Commitment {
	return Commitment{
		Code:        code,
		FavoredCode: "03045711000170",
		Nominal:     decimal.RequireFromString(nominal),
		Phase:       "Empenho",
		FiscalYear:  2024,
	}
}

func TestCalculateScenarios(t *testing.T) {
	commitments := []Commitment{
		commitment("C1", "1000.00"),
		commitment("C2", "500.00"),
		commitment("C3", "200.00"),
	}
	aggs := Aggregate(
		[]Payment{
			pay("P1", "C1", "300.00"),
			pay("P2", "C1", "200.00"),
			pay("P3", "C2", "500.00"),
			pay("P4", "C3", "250.00"),
		},
		nil,
	)

	records, orphans := Calculate(commitments, aggs)
	require.Len(t, records, 3)
	assert.Empty(t, orphans)

	c1 := records[0]
	assert.Equal(t, "500", c1.TotalPaid.String())
	assert.Equal(t, "500", c1.Remaining.String())
	assert.Equal(t, StatusPartial, c1.Status)

	c2 := records[1]
	assert.Equal(t, "0", c2.Remaining.String())
	assert.Equal(t, StatusExhausted, c2.Status)

	c3 := records[2]
	assert.Equal(t, "-50", c3.Remaining.String())
	assert.Equal(t, StatusOverdrawn, c3.Status)
}

func TestCalculateNoPaymentsMeansFullyAvailable(t *testing.T) {
	records, orphans := Calculate([]Commitment{commitment("C1", "1000.00")}, Aggregate(nil, nil))

	require.Len(t, records, 1)
	assert.Empty(t, orphans)
	assert.True(t, records[0].Remaining.Equal(records[0].Nominal))
	assert.Equal(t, StatusFull, records[0].Status)
}

func TestCalculateRemainingPlusPaidEqualsNominal(t *testing.T) {
	commitments := []Commitment{commitment("C1", "1000.00"), commitment("C2", "333.33")}
	aggs := Aggregate(
		[]Payment{
			pay("P1", "C1", "0.10"),
			pay("P2", "C1", "0.20"),
			pay("P3", "C2", "111.11"),
			pay("P4", "C2", "333.33"),
		},
		nil,
	)

	records, _ := Calculate(commitments, aggs)
	for _, r := range records {
		assert.True(t, r.Remaining.Add(r.TotalPaid).Equal(r.Nominal), "commitment %s", r.CommitmentCode)
	}
}

func TestCalculateReportsOrphansAndExcludesThem(t *testing.T) {
	aggs := Aggregate(
		[]Payment{pay("P1", "C1", "100.00"), pay("P2", "C99", "40.00")},
		[]Settlement{settle("L1", "C99", "40.00")},
	)

	records, orphans := Calculate([]Commitment{commitment("C1", "1000.00")}, aggs)

	require.Len(t, records, 1)
	assert.Equal(t, "C1", records[0].CommitmentCode)

	require.Len(t, orphans, 1)
	assert.Equal(t, "C99", orphans[0].CommitmentCode)
	assert.Equal(t, "40", orphans[0].TotalPaid.String())
	assert.Equal(t, "40", orphans[0].TotalSettled.String())
}

func TestCalculateEmptyInput(t *testing.T) {
	records, orphans := Calculate(nil, Aggregate(nil, nil))
	assert.Empty(t, records)
	assert.Empty(t, orphans)
}
